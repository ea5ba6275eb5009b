package access

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	pkgerrors "github.com/yungbote/experience-marketplace/internal/pkg/errors"
)

// StaticVerifier answers from fixed tables. It backs local development and tests.
type StaticVerifier struct {
	// Tokens maps a raw user token to a user id.
	Tokens map[string]string
	// TrustTokens treats any unknown non-empty token as the user id itself.
	TrustTokens bool
	// Tiers is keyed by "userID:experienceID", with "userID:*" as a fallback.
	Tiers       map[string]types.AccessTier
	DefaultTier types.AccessTier
}

func (s *StaticVerifier) Verify(ctx context.Context, headers http.Header) (types.Identity, error) {
	raw := TokenFromHeaders(headers)
	if raw == "" {
		return types.Identity{}, fmt.Errorf("missing user token: %w", pkgerrors.ErrUnauthorized)
	}
	if userID, ok := s.Tokens[raw]; ok && strings.TrimSpace(userID) != "" {
		return types.Identity{UserID: userID}, nil
	}
	if s.TrustTokens {
		return types.Identity{UserID: raw}, nil
	}
	return types.Identity{}, fmt.Errorf("unknown user token: %w", pkgerrors.ErrUnauthorized)
}

func (s *StaticVerifier) CheckAccess(ctx context.Context, userID, experienceID string) (types.AccessTier, error) {
	if strings.TrimSpace(userID) == "" {
		return types.TierNoAccess, fmt.Errorf("no caller identity: %w", pkgerrors.ErrUnauthorized)
	}
	if tier, ok := s.Tiers[cacheKey(userID, experienceID)]; ok {
		return tier, nil
	}
	if tier, ok := s.Tiers[cacheKey(userID, "*")]; ok {
		return tier, nil
	}
	if s.DefaultTier != "" {
		return s.DefaultTier, nil
	}
	return types.TierNoAccess, nil
}
