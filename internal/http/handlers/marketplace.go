package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/http/response"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
	"github.com/yungbote/experience-marketplace/internal/services"
	"github.com/yungbote/experience-marketplace/internal/validation"
)

type MarketplaceHandler struct {
	marketplaces services.MarketplaceService
}

func NewMarketplaceHandler(marketplaces services.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaces: marketplaces}
}

// marketplaceChange is the body returned by the admin mutations.
type marketplaceChange struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	TakeRate  float64   `json:"takeRate"`
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newMarketplaceChange(m *types.Marketplace) marketplaceChange {
	return marketplaceChange{
		ID:        m.ID,
		Title:     m.Title,
		TakeRate:  m.TakeRate,
		Active:    m.Visible(),
		UpdatedAt: m.UpdatedAt,
	}
}

// GET /api/experiences/:experienceId/marketplaces
func (h *MarketplaceHandler) List(c *gin.Context) {
	list, err := h.marketplaces.List(dbctx.Context{Ctx: c.Request.Context()}, c.Param("experienceId"))
	if err != nil {
		response.RespondServiceError(c, "Marketplace", err)
		return
	}
	response.RespondOK(c, gin.H{"marketplaces": list})
}

// POST /api/experiences/:experienceId/marketplaces
// body: { "title": "...", "takeRate": 10 }
func (h *MarketplaceHandler) Create(c *gin.Context) {
	var req validation.MarketplaceCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, "Marketplace", validation.DecodeError(err))
		return
	}
	m, err := h.marketplaces.Create(dbctx.Context{Ctx: c.Request.Context()}, c.Param("experienceId"), req)
	if err != nil {
		response.RespondServiceError(c, "Marketplace", err)
		return
	}
	response.RespondCreated(c, gin.H{"marketplace": m})
}

// GET /api/experiences/:experienceId/marketplaces/:marketplaceId
func (h *MarketplaceHandler) Get(c *gin.Context) {
	m, err := h.marketplaces.Get(dbctx.Context{Ctx: c.Request.Context()}, c.Param("marketplaceId"), c.Param("experienceId"))
	if err != nil {
		response.RespondServiceError(c, "Marketplace", err)
		return
	}
	response.RespondOK(c, gin.H{"marketplace": m})
}

// PATCH /api/marketplaces/:marketplaceId/edit
// body: { "title": "..." }
func (h *MarketplaceHandler) Edit(c *gin.Context) {
	caller := callerIdentity(c)
	var req validation.MarketplaceUpdateInput
	decodeErr := bindOptionalJSON(c, &req)
	if decodeErr != nil {
		req = validation.MarketplaceUpdateInput{}
	}
	m, err := h.marketplaces.Rename(dbctx.Context{Ctx: c.Request.Context()}, c.Param("marketplaceId"), req, caller)
	if err != nil {
		response.RespondServiceError(c, "Marketplace", preferDecodeError(err, decodeErr))
		return
	}
	response.RespondOK(c, newMarketplaceChange(m))
}

// PATCH /api/marketplaces/:marketplaceId/status
// body: { "active": true }
func (h *MarketplaceHandler) SetStatus(c *gin.Context) {
	caller := callerIdentity(c)
	var req validation.MarketplaceStatusInput
	decodeErr := bindOptionalJSON(c, &req)
	if decodeErr != nil {
		req = validation.MarketplaceStatusInput{}
	}
	m, err := h.marketplaces.SetActive(dbctx.Context{Ctx: c.Request.Context()}, c.Param("marketplaceId"), req, caller)
	if err != nil {
		response.RespondServiceError(c, "Marketplace", preferDecodeError(err, decodeErr))
		return
	}
	response.RespondOK(c, newMarketplaceChange(m))
}

// DELETE /api/marketplaces/:marketplaceId
func (h *MarketplaceHandler) Archive(c *gin.Context) {
	m, err := h.marketplaces.Archive(dbctx.Context{Ctx: c.Request.Context()}, c.Param("marketplaceId"), callerIdentity(c))
	if err != nil {
		response.RespondServiceError(c, "Marketplace", err)
		return
	}
	response.RespondOK(c, gin.H{
		"success":     true,
		"marketplace": gin.H{"id": m.ID, "title": m.Title},
	})
}
