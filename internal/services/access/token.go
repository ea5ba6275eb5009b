package access

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/pkg/clock"
	pkgerrors "github.com/yungbote/experience-marketplace/internal/pkg/errors"
)

type TokenConfig struct {
	// Secret verifies HS256 tokens.
	Secret string
	// PublicKey is a PEM encoded EC or RSA key for ES256/RS256 tokens.
	PublicKey string
	Issuer    string
	Leeway    time.Duration
}

// TokenVerifier validates platform user tokens.
type TokenVerifier struct {
	key     any
	methods []string
	issuer  string
	leeway  time.Duration
	clock   clock.Clock
}

func NewTokenVerifier(cfg TokenConfig, clk clock.Clock) (*TokenVerifier, error) {
	if clk == nil {
		clk = clock.Real()
	}
	v := &TokenVerifier{
		issuer: strings.TrimSpace(cfg.Issuer),
		leeway: cfg.Leeway,
		clock:  clk,
	}

	pemKey := strings.TrimSpace(cfg.PublicKey)
	switch {
	case pemKey != "":
		pemKey = strings.ReplaceAll(pemKey, `\n`, "\n")
		if ec, err := jwt.ParseECPublicKeyFromPEM([]byte(pemKey)); err == nil {
			v.key = ec
			v.methods = []string{jwt.SigningMethodES256.Alg()}
			break
		}
		rsaKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemKey))
		if err != nil {
			return nil, fmt.Errorf("parse user token public key: %w", err)
		}
		v.key = rsaKey
		v.methods = []string{jwt.SigningMethodRS256.Alg()}
	case cfg.Secret != "":
		v.key = []byte(cfg.Secret)
		v.methods = []string{jwt.SigningMethodHS256.Alg()}
	default:
		return nil, fmt.Errorf("user token secret or public key is required")
	}
	return v, nil
}

func (v *TokenVerifier) Verify(raw string) (types.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Identity{}, fmt.Errorf("empty user token: %w", pkgerrors.ErrUnauthorized)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(v.methods),
		jwt.WithTimeFunc(v.clock.Now),
		jwt.WithIssuedAt(),
	}
	if v.leeway > 0 {
		opts = append(opts, jwt.WithLeeway(v.leeway))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := jwt.MapClaims{}
	tok, err := jwt.NewParser(opts...).ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return types.Identity{}, fmt.Errorf("invalid user token: %w", errors.Join(pkgerrors.ErrUnauthorized, err))
	}
	if tok == nil || !tok.Valid {
		return types.Identity{}, fmt.Errorf("invalid user token: %w", pkgerrors.ErrUnauthorized)
	}

	userID, _ := claims.GetSubject()
	if strings.TrimSpace(userID) == "" {
		userID, _ = claims["user_id"].(string)
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return types.Identity{}, fmt.Errorf("user token has no subject: %w", pkgerrors.ErrUnauthorized)
	}
	return types.Identity{UserID: userID}, nil
}
