package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/platform/ctxutil"
	"github.com/yungbote/experience-marketplace/internal/validation"
)

// callerIdentity returns the identity attached by the auth middleware, or
// the zero identity for anonymous requests.
func callerIdentity(c *gin.Context) types.Identity {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		return types.Identity{}
	}
	return types.Identity{UserID: rd.UserID}
}

func optionalCaller(c *gin.Context) *types.Identity {
	id := callerIdentity(c)
	if id.IsZero() {
		return nil
	}
	return &id
}

// bindOptionalJSON decodes the body into dst, treating an empty body as an
// empty object so that field validation reports what is missing.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return validation.DecodeError(err)
	}
	return nil
}

// preferDecodeError reports a body decoding failure in place of the field
// validation error it caused. Authorization failures still win.
func preferDecodeError(err, decodeErr error) error {
	var ve *validation.ValidationError
	if decodeErr != nil && errors.As(err, &ve) {
		return decodeErr
	}
	return err
}
