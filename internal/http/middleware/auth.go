package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/experience-marketplace/internal/http/response"
	"github.com/yungbote/experience-marketplace/internal/platform/ctxutil"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
	"github.com/yungbote/experience-marketplace/internal/services/access"
)

type AuthMiddleware struct {
	log      *logger.Logger
	verifier access.Verifier
}

func NewAuthMiddleware(log *logger.Logger, verifier access.Verifier) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, verifier: verifier}
}

// RequireIdentity rejects requests without a verifiable user token.
func (am *AuthMiddleware) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := am.verifier.Verify(c.Request.Context(), c.Request.Header)
		if err != nil {
			am.log.Debug("User token rejected", "path", c.FullPath(), "error", err)
			response.RespondServiceError(c, "", err)
			c.Abort()
			return
		}
		am.attach(c, identity.UserID)
		c.Next()
	}
}

// AttachIdentity resolves the caller when a token is present and otherwise
// lets the request through anonymously.
func (am *AuthMiddleware) AttachIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if access.TokenFromHeaders(c.Request.Header) == "" {
			c.Next()
			return
		}
		identity, err := am.verifier.Verify(c.Request.Context(), c.Request.Header)
		if err != nil {
			am.log.Debug("Ignoring unverifiable user token", "path", c.FullPath(), "error", err)
			c.Next()
			return
		}
		am.attach(c, identity.UserID)
		c.Next()
	}
}

func (am *AuthMiddleware) attach(c *gin.Context, userID string) {
	userID = strings.TrimSpace(userID)
	ctx := c.Request.Context()
	if rd := ctxutil.GetRequestData(ctx); rd != nil {
		rd.UserID = userID
	} else {
		ctx = ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: userID})
		c.Request = c.Request.WithContext(ctx)
	}
	c.Set("user_id", userID)
}
