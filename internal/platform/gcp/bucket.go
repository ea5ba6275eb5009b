package gcp

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

// ObjectStore is the slice of object storage the listing images need.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, file io.Reader) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

type BucketConfig struct {
	Bucket      string
	CDNDomain   string
	Credentials string
	Storage     ObjectStorageConfig
}

type bucketService struct {
	log           *logger.Logger
	storageClient *storage.Client
	bucket        string
	cdnDomain     string
	storageMode   ObjectStorageMode
	publicBaseURL string
}

// NewBucketService returns nil, nil when no bucket is configured so callers
// can treat image uploads as disabled.
func NewBucketService(ctx context.Context, cfg BucketConfig, log *logger.Logger) (ObjectStore, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, nil
	}
	serviceLog := log.With("service", "BucketService")

	client, err := newStorageClientForMode(ctx, cfg.Storage, cfg.Credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	publicBase := cfg.Storage.PublicBaseURL
	if publicBase == "" && cfg.Storage.IsEmulatorMode() {
		publicBase = cfg.Storage.EmulatorHost
	}

	serviceLog.Info(
		"Object storage initialized",
		"mode", cfg.Storage.Mode,
		"bucket", cfg.Bucket,
		"public_base_url", publicBase,
	)

	return &bucketService{
		log:           serviceLog,
		storageClient: client,
		bucket:        cfg.Bucket,
		cdnDomain:     strings.TrimSpace(cfg.CDNDomain),
		storageMode:   cfg.Storage.Mode,
		publicBaseURL: publicBase,
	}, nil
}

func newStorageClientForMode(ctx context.Context, cfg ObjectStorageConfig, credentials string) (*storage.Client, error) {
	switch cfg.Mode {
	case ObjectStorageModeGCS, "":
		opts := ClientOptions(credentials)
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
		return storage.NewClient(ctx, opts...)
	case ObjectStorageModeGCSEmulator:
		// the storage client discovers the emulator through this variable
		_ = os.Setenv("STORAGE_EMULATOR_HOST", cfg.EmulatorHost)
		return storage.NewClient(ctx, option.WithoutAuthentication())
	default:
		return nil, &ObjectStorageConfigError{Field: "OBJECT_STORAGE_MODE", Value: string(cfg.Mode)}
	}
}

func (bs *bucketService) Upload(ctx context.Context, key, contentType string, file io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := bs.storageClient.Bucket(bs.bucket).Object(key).NewWriter(ctx)
	if contentType == "" {
		contentType = ContentTypeForKey(key)
	}
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (bs *bucketService) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := bs.storageClient.Bucket(bs.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, bs.bucket, err)
	}
	return nil
}

func (bs *bucketService) PublicURL(key string) string {
	return publicURL(bs.bucket, bs.cdnDomain, bs.storageMode, bs.publicBaseURL, key)
}

func publicURL(bucket, cdnDomain string, mode ObjectStorageMode, publicBaseURL, key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", cdnDomain, key)
	}
	if mode == ObjectStorageModeGCSEmulator && publicBaseURL != "" {
		return fmt.Sprintf(
			"%s/storage/v1/b/%s/o/%s?alt=media",
			publicBaseURL,
			url.PathEscape(bucket),
			url.PathEscape(key),
		)
	}
	if publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", publicBaseURL, bucket, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, key)
}

// ContentTypeForKey guesses an image content type from the key extension.
func ContentTypeForKey(key string) string {
	switch strings.ToLower(path.Ext(strings.TrimSpace(key))) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".avif":
		return "image/avif"
	default:
		return ""
	}
}

// ExtensionForContentType is the inverse of ContentTypeForKey.
func ExtensionForContentType(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])) {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "image/avif":
		return ".avif"
	default:
		return ""
	}
}
