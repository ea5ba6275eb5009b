package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/experience-marketplace/internal/http/response"
	"github.com/yungbote/experience-marketplace/internal/services/access"
	"github.com/yungbote/experience-marketplace/internal/validation"
)

type AccessHandler struct {
	verifier access.Verifier
}

func NewAccessHandler(verifier access.Verifier) *AccessHandler {
	return &AccessHandler{verifier: verifier}
}

// GET /api/experiences/:experienceId/access
func (h *AccessHandler) Check(c *gin.Context) {
	expID, err := validation.ExperienceID(c.Param("experienceId"))
	if err != nil {
		response.RespondServiceError(c, "Experience", err)
		return
	}
	caller := callerIdentity(c)
	tier, err := h.verifier.CheckAccess(c.Request.Context(), caller.UserID, expID)
	if err != nil {
		response.RespondServiceError(c, "Experience", err)
		return
	}
	response.RespondOK(c, gin.H{"userId": caller.UserID, "accessLevel": tier})
}
