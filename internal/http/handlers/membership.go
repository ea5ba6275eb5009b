package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/experience-marketplace/internal/http/response"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
	"github.com/yungbote/experience-marketplace/internal/services"
)

type MembershipHandler struct {
	memberships services.MembershipService
}

func NewMembershipHandler(memberships services.MembershipService) *MembershipHandler {
	return &MembershipHandler{memberships: memberships}
}

// GET /api/experiences/:experienceId/memberships
func (h *MembershipHandler) List(c *gin.Context) {
	rows, err := h.memberships.List(dbctx.Context{Ctx: c.Request.Context()}, c.Param("experienceId"))
	if err != nil {
		response.RespondServiceError(c, "Membership", err)
		return
	}
	response.RespondOK(c, gin.H{"memberships": rows})
}
