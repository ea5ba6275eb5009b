package gcp

import (
	"context"
	"testing"

	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

func TestPublicURL(t *testing.T) {
	cases := []struct {
		name    string
		cdn     string
		mode    ObjectStorageMode
		base    string
		key     string
		wantURL string
	}{
		{"cdn wins", "cdn.example.com", ObjectStorageModeGCSEmulator, "http://localhost:4443", "/items/a.png", "https://cdn.example.com/items/a.png"},
		{"gcs default", "", ObjectStorageModeGCS, "", "items/a.png", "https://storage.googleapis.com/listing/items/a.png"},
		{"gcs with base", "", ObjectStorageModeGCS, "https://files.example.com", "items/a.png", "https://files.example.com/listing/items/a.png"},
		{"emulator", "", ObjectStorageModeGCSEmulator, "http://localhost:4443", "items/a b.png", "http://localhost:4443/storage/v1/b/listing/o/items%2Fa%20b.png?alt=media"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := publicURL("listing", tc.cdn, tc.mode, tc.base, tc.key)
			if got != tc.wantURL {
				t.Fatalf("want=%q got=%q", tc.wantURL, got)
			}
		})
	}
}

func TestContentTypeRoundTrip(t *testing.T) {
	for _, ct := range []string{"image/png", "image/jpeg", "image/webp", "image/gif"} {
		ext := ExtensionForContentType(ct)
		if ext == "" || ContentTypeForKey("x"+ext) != ct {
			t.Fatalf("round trip failed for %s (ext=%q)", ct, ext)
		}
	}
	if ExtensionForContentType("application/pdf") != "" {
		t.Fatalf("non-image types should have no extension")
	}
	if ExtensionForContentType("image/png; charset=binary") != ".png" {
		t.Fatalf("parameters should be ignored")
	}
}

func TestNewBucketServiceDisabledWithoutBucket(t *testing.T) {
	store, err := NewBucketService(context.Background(), BucketConfig{}, logger.NewNop())
	if err != nil || store != nil {
		t.Fatalf("expected disabled store, got %v %v", store, err)
	}
}
