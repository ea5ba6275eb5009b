package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/experience-marketplace/internal/http/response"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
	"github.com/yungbote/experience-marketplace/internal/services"
	"github.com/yungbote/experience-marketplace/internal/validation"
)

type ItemHandler struct {
	items services.ItemService
}

func NewItemHandler(items services.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// GET /api/marketplaces/:marketplaceId/items?limit=10&skip=0
func (h *ItemHandler) List(c *gin.Context) {
	page, err := validation.Page(c.Query("limit"), c.Query("skip"))
	if err != nil {
		response.RespondServiceError(c, "Marketplace", err)
		return
	}
	out, err := h.items.List(dbctx.Context{Ctx: c.Request.Context()}, c.Param("marketplaceId"), page)
	if err != nil {
		response.RespondServiceError(c, "Marketplace", err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/marketplaces/:marketplaceId/items
// body: { "title": "...", "description": "...", "priceInCents": 2500, "postedBy": "user_..." }
func (h *ItemHandler) Create(c *gin.Context) {
	var req validation.ItemCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, "Marketplace", validation.DecodeError(err))
		return
	}
	item, err := h.items.Create(dbctx.Context{Ctx: c.Request.Context()}, c.Param("marketplaceId"), req)
	if err != nil {
		response.RespondServiceError(c, "Marketplace", err)
		return
	}
	response.RespondCreated(c, gin.H{"item": item})
}

// GET /api/marketplaces/:marketplaceId/items/:itemId
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.items.Get(dbctx.Context{Ctx: c.Request.Context()}, c.Param("marketplaceId"), c.Param("itemId"))
	if err != nil {
		response.RespondServiceError(c, "Item", err)
		return
	}
	response.RespondOK(c, gin.H{"item": item})
}

// DELETE /api/marketplaces/:marketplaceId/items/:itemId
func (h *ItemHandler) Delete(c *gin.Context) {
	item, err := h.items.Delete(dbctx.Context{Ctx: c.Request.Context()}, c.Param("marketplaceId"), c.Param("itemId"))
	if err != nil {
		response.RespondServiceError(c, "Item", err)
		return
	}
	response.RespondOK(c, gin.H{
		"success": true,
		"message": "Item deleted successfully",
		"item":    gin.H{"id": item.ID, "title": item.Title},
	})
}

// POST /api/marketplaces/:marketplaceId/items/:itemId/images
// multipart form field "image"
func (h *ItemHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxImageBytes+1<<20)
	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		msg := "Image is required"
		if errors.As(err, &tooLarge) {
			msg = "Image is too large"
		}
		response.RespondServiceError(c, "Item", &validation.ValidationError{Fields: map[string]string{"image": msg}})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondServiceError(c, "Item", err)
		return
	}
	defer f.Close()

	img, err := h.items.AddImage(dbctx.Context{Ctx: c.Request.Context()}, c.Param("marketplaceId"), c.Param("itemId"), services.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		response.RespondServiceError(c, "Item", err)
		return
	}
	response.RespondCreated(c, gin.H{"image": img})
}
