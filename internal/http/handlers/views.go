package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/experience-marketplace/internal/http/response"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
	"github.com/yungbote/experience-marketplace/internal/services"
	"github.com/yungbote/experience-marketplace/internal/validation"
)

type ViewHandler struct {
	views services.ViewService
}

func NewViewHandler(views services.ViewService) *ViewHandler {
	return &ViewHandler{views: views}
}

// GET /api/views/experiences/:experienceId
func (h *ViewHandler) ExperienceHome(c *gin.Context) {
	view, err := h.views.ExperienceHome(dbctx.Context{Ctx: c.Request.Context()}, c.Param("experienceId"), optionalCaller(c))
	if err != nil {
		response.RespondServiceError(c, "Experience", err)
		return
	}
	response.RespondOK(c, view)
}

// GET /api/views/experiences/:experienceId/marketplaces/:marketplaceId?limit=10&skip=0
func (h *ViewHandler) MarketplacePage(c *gin.Context) {
	page, err := validation.Page(c.Query("limit"), c.Query("skip"))
	if err != nil {
		response.RespondServiceError(c, "Marketplace", err)
		return
	}
	view, err := h.views.MarketplacePage(dbctx.Context{Ctx: c.Request.Context()}, c.Param("experienceId"), c.Param("marketplaceId"), page, optionalCaller(c))
	if err != nil {
		response.RespondServiceError(c, "Marketplace", err)
		return
	}
	response.RespondOK(c, view)
}

// GET /api/views/experiences/:experienceId/marketplaces/:marketplaceId/items/:itemId
func (h *ViewHandler) ItemDetail(c *gin.Context) {
	view, err := h.views.ItemDetail(dbctx.Context{Ctx: c.Request.Context()}, c.Param("experienceId"), c.Param("marketplaceId"), c.Param("itemId"), optionalCaller(c))
	if err != nil {
		response.RespondServiceError(c, "Item", err)
		return
	}
	response.RespondOK(c, view)
}
