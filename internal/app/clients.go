package app

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/platform/gcp"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
	"github.com/yungbote/experience-marketplace/internal/services/access"
)

type Clients struct {
	Redis    goredis.UniversalClient
	Store    gcp.ObjectStore
	Verifier access.Verifier
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	var rdb goredis.UniversalClient
	if strings.TrimSpace(cfg.Access.RedisAddr) != "" {
		rdb = goredis.NewUniversalClient(&goredis.UniversalOptions{
			Addrs:    strings.Split(cfg.Access.RedisAddr, ","),
			Password: cfg.Access.RedisPassword,
			DB:       cfg.Access.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			// the verifier falls back to direct lookups when the cache is down
			log.Warn("Redis ping failed", "addr", cfg.Access.RedisAddr, "error", err)
		}
	}

	// Gcs
	store, err := wireObjectStore(ctx, log, cfg.Storage)
	if err != nil {
		closeRedis(rdb)
		return Clients{}, err
	}

	// Access
	verifier, err := wireVerifier(log, cfg.Access, rdb)
	if err != nil {
		closeRedis(rdb)
		return Clients{}, fmt.Errorf("init access verifier: %w", err)
	}

	return Clients{
		Redis:    rdb,
		Store:    store,
		Verifier: verifier,
	}, nil
}

func wireObjectStore(ctx context.Context, log *logger.Logger, cfg StorageConfig) (gcp.ObjectStore, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		log.Warn("LISTING_GCS_BUCKET_NAME not set; image uploads disabled")
		return nil, nil
	}
	storageCfg, err := gcp.ResolveObjectStorageConfig(cfg.Mode, cfg.EmulatorHost, cfg.PublicBaseURL)
	if err != nil {
		log.Error("Object storage configuration rejected", "mode", cfg.Mode, "emulator_host", cfg.EmulatorHost, "error", err)
		return nil, fmt.Errorf("object storage config: %w", err)
	}
	store, err := gcp.NewBucketService(ctx, gcp.BucketConfig{
		Bucket:      cfg.Bucket,
		CDNDomain:   cfg.CDNDomain,
		Credentials: cfg.Credentials,
		Storage:     storageCfg,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("init bucket client: %w", err)
	}
	return store, nil
}

func wireVerifier(log *logger.Logger, cfg AccessConfig, rdb goredis.UniversalClient) (access.Verifier, error) {
	if cfg.Mode == AccessModeStatic {
		log.Warn("Using static access verifier; do not run this in production")
		return staticVerifier(cfg), nil
	}

	tokens, err := access.NewTokenVerifier(access.TokenConfig{
		Secret:    cfg.TokenSecret,
		PublicKey: cfg.TokenPublicKey,
		Issuer:    cfg.TokenIssuer,
		Leeway:    cfg.TokenLeeway,
	}, nil)
	if err != nil {
		return nil, err
	}
	platform, err := access.NewPlatformClient(access.PlatformConfig{
		Endpoint:    cfg.PlatformURL,
		APIKey:      cfg.APIKey,
		AgentUserID: cfg.AgentUserID,
		CompanyID:   cfg.CompanyID,
		Timeout:     cfg.Timeout,
	}, nil, log)
	if err != nil {
		return nil, err
	}
	var cache access.TierCache
	if rdb != nil {
		cache = access.NewRedisTierCache(rdb, "")
	}
	return access.NewVerifier(tokens, platform, cache, cfg.CacheTTL, log)
}

func staticVerifier(cfg AccessConfig) *access.StaticVerifier {
	tiers := make(map[string]types.AccessTier, len(cfg.StaticTiers))
	for key, raw := range cfg.StaticTiers {
		tiers[key] = types.ParseAccessTier(raw)
	}
	v := &access.StaticVerifier{
		Tokens:      cfg.StaticTokens,
		TrustTokens: cfg.StaticTrustTokens,
		Tiers:       tiers,
	}
	if cfg.StaticDefaultTier != "" {
		v.DefaultTier = types.ParseAccessTier(cfg.StaticDefaultTier)
	}
	return v
}

func closeRedis(rdb goredis.UniversalClient) {
	if rdb != nil {
		_ = rdb.Close()
	}
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	closeRedis(c.Redis)
}
