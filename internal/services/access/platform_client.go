package access

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

const DefaultPlatformEndpoint = "https://api.whop.com/public-graphql"

const accessQuery = `query checkIfUserHasAccessToExperience($experienceId: ID!, $userId: ID) {
  hasAccessToExperience(experienceId: $experienceId, userId: $userId) {
    hasAccess
    accessLevel
  }
}`

type PlatformConfig struct {
	Endpoint    string
	APIKey      string
	AgentUserID string
	CompanyID   string
	Timeout     time.Duration
}

// PlatformClient asks the experience platform for a user's access level.
// Every lookup is a single POST with no retries.
type PlatformClient struct {
	httpClient *http.Client
	cfg        PlatformConfig
	log        *logger.Logger
}

func NewPlatformClient(cfg PlatformConfig, httpClient *http.Client, baseLog *logger.Logger) (*PlatformClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("PLATFORM_API_KEY is required")
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = DefaultPlatformEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &PlatformClient{
		httpClient: httpClient,
		cfg:        cfg,
		log:        baseLog.With("client", "PlatformClient"),
	}, nil
}

type graphQLRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type accessResponse struct {
	Data struct {
		HasAccessToExperience *struct {
			HasAccess   bool   `json:"hasAccess"`
			AccessLevel string `json:"accessLevel"`
		} `json:"hasAccessToExperience"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

func (c *PlatformClient) AccessLevel(ctx context.Context, userID, experienceID string) (types.AccessTier, error) {
	body, err := json.Marshal(graphQLRequest{
		OperationName: "checkIfUserHasAccessToExperience",
		Query:         accessQuery,
		Variables: map[string]any{
			"experienceId": experienceID,
			"userId":       userID,
		},
	})
	if err != nil {
		return types.TierNoAccess, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return types.TierNoAccess, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if c.cfg.AgentUserID != "" {
		req.Header.Set("x-on-behalf-of-user-id", c.cfg.AgentUserID)
	}
	if c.cfg.CompanyID != "" {
		req.Header.Set("x-company-id", c.cfg.CompanyID)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return types.TierNoAccess, fmt.Errorf("platform request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return types.TierNoAccess, fmt.Errorf("read platform response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		c.log.Warn("Platform access check failed", "status", res.StatusCode, "experience_id", experienceID)
		return types.TierNoAccess, fmt.Errorf("platform access check failed: %s", res.Status)
	}

	var out accessResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return types.TierNoAccess, fmt.Errorf("decode platform response: %w", err)
	}
	if len(out.Errors) > 0 {
		return types.TierNoAccess, fmt.Errorf("platform access check: %s", out.Errors[0].Message)
	}
	if out.Data.HasAccessToExperience == nil {
		return types.TierNoAccess, nil
	}
	return types.ParseAccessTier(out.Data.HasAccessToExperience.AccessLevel), nil
}
