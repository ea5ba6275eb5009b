package response

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/yungbote/experience-marketplace/internal/pkg/errors"
	"github.com/yungbote/experience-marketplace/internal/platform/apierr"
	"github.com/yungbote/experience-marketplace/internal/validation"
)

const internalMessage = "internal server error"

// Classify maps a service error onto the HTTP status, code and caller-facing
// message. subject names the resource in not-found messages ("Marketplace").
func Classify(subject string, err error) *apierr.Error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae
	}

	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		if len(ve.Fields) == 1 {
			if msg, ok := ve.Fields["experienceId"]; ok {
				return apierr.New(http.StatusBadRequest, "validation_failed", errors.New(msg)).WithDetails(ve.Fields)
			}
		}
		return apierr.New(http.StatusBadRequest, "validation_failed", errors.New("Validation failed")).WithDetails(ve.Fields)
	}

	var ide *validation.InvalidIdentifierError
	switch {
	case errors.As(err, &ide):
		return apierr.New(http.StatusBadRequest, "invalid_id", errors.New(capitalize(ide.Error())))
	case errors.Is(err, pkgerrors.ErrInvalidIdentifier):
		return apierr.New(http.StatusBadRequest, "invalid_id", errors.New("Invalid ID format"))
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		return apierr.New(http.StatusUnauthorized, "unauthorized", errors.New("Unauthorized"))
	case errors.Is(err, pkgerrors.ErrForbidden):
		return apierr.New(http.StatusForbidden, "forbidden", errors.New("Forbidden - Admin access required"))
	case errors.Is(err, pkgerrors.ErrNotFound):
		if subject == "" {
			subject = "Resource"
		}
		return apierr.New(http.StatusNotFound, "not_found", errors.New(subject+" not found"))
	case errors.Is(err, pkgerrors.ErrStorageDisabled):
		return apierr.New(http.StatusServiceUnavailable, "storage_disabled", errors.New("Image storage is not configured"))
	default:
		return apierr.New(http.StatusInternalServerError, "internal_error", err)
	}
}

// RespondServiceError writes the error envelope for err. The raw error is
// attached to the gin context so the request logger records it; internal
// errors never leak their text to the caller.
func RespondServiceError(c *gin.Context, subject string, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	ae := Classify(subject, err)
	msg := internalMessage
	if ae.Status < http.StatusInternalServerError && ae.Err != nil {
		msg = ae.Err.Error()
	}
	c.JSON(ae.Status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    ae.Code,
			Details: ae.Details,
		},
	})
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
