// Package access resolves who is calling and what they may do inside an
// experience. Identity comes from the platform user token; the access tier
// comes from the platform API, optionally cached in Redis.
package access

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	pkgerrors "github.com/yungbote/experience-marketplace/internal/pkg/errors"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

// UserTokenHeader carries the platform-issued user token.
const UserTokenHeader = "X-Whop-User-Token"

type Verifier interface {
	// Verify resolves the caller from request headers. A missing or invalid
	// credential yields an error wrapping ErrUnauthorized.
	Verify(ctx context.Context, headers http.Header) (types.Identity, error)
	CheckAccess(ctx context.Context, userID, experienceID string) (types.AccessTier, error)
}

// TierSource is anything that can answer an access-tier lookup.
type TierSource interface {
	AccessLevel(ctx context.Context, userID, experienceID string) (types.AccessTier, error)
}

// TokenFromHeaders prefers the platform header and falls back to a bearer token.
func TokenFromHeaders(h http.Header) string {
	if h == nil {
		return ""
	}
	if tok := strings.TrimSpace(h.Get(UserTokenHeader)); tok != "" {
		return tok
	}
	auth := strings.TrimSpace(h.Get("Authorization"))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

type verifier struct {
	tokens *TokenVerifier
	source TierSource
	cache  TierCache
	ttl    time.Duration
	log    *logger.Logger
}

// NewVerifier combines token verification with a tier source. cache may be nil.
func NewVerifier(tokens *TokenVerifier, source TierSource, cache TierCache, ttl time.Duration, baseLog *logger.Logger) (Verifier, error) {
	if tokens == nil {
		return nil, fmt.Errorf("token verifier required")
	}
	if source == nil {
		return nil, fmt.Errorf("tier source required")
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &verifier{
		tokens: tokens,
		source: source,
		cache:  cache,
		ttl:    ttl,
		log:    baseLog.With("service", "AccessVerifier"),
	}, nil
}

func (v *verifier) Verify(ctx context.Context, headers http.Header) (types.Identity, error) {
	raw := TokenFromHeaders(headers)
	if raw == "" {
		return types.Identity{}, fmt.Errorf("missing user token: %w", pkgerrors.ErrUnauthorized)
	}
	id, err := v.tokens.Verify(raw)
	if err != nil {
		v.log.Debug("User token rejected", "error", err)
		return types.Identity{}, err
	}
	return id, nil
}

func (v *verifier) CheckAccess(ctx context.Context, userID, experienceID string) (types.AccessTier, error) {
	if strings.TrimSpace(userID) == "" {
		return types.TierNoAccess, fmt.Errorf("no caller identity: %w", pkgerrors.ErrUnauthorized)
	}
	if strings.TrimSpace(experienceID) == "" {
		return types.TierNoAccess, nil
	}

	key := cacheKey(userID, experienceID)
	if v.cache != nil {
		tier, ok, err := v.cache.Get(ctx, key)
		if err != nil {
			v.log.Warn("Access cache read failed", "error", err, "experience_id", experienceID)
		} else if ok {
			return tier, nil
		}
	}

	tier, err := v.source.AccessLevel(ctx, userID, experienceID)
	if err != nil {
		return types.TierNoAccess, fmt.Errorf("check access: %w", err)
	}

	if v.cache != nil {
		if err := v.cache.Set(ctx, key, tier, v.ttl); err != nil {
			v.log.Warn("Access cache write failed", "error", err, "experience_id", experienceID)
		}
	}
	return tier, nil
}
