package gcp

import (
	"errors"
	"testing"
)

func TestResolveObjectStorageConfigDefaults(t *testing.T) {
	cfg, err := ResolveObjectStorageConfig("", "", "")
	if err != nil {
		t.Fatalf("ResolveObjectStorageConfig: %v", err)
	}
	if cfg.Mode != ObjectStorageModeGCS {
		t.Fatalf("mode: want=%q got=%q", ObjectStorageModeGCS, cfg.Mode)
	}

	cfg, err = ResolveObjectStorageConfig("", "http://fake-gcs:4443/", "")
	if err != nil {
		t.Fatalf("ResolveObjectStorageConfig: %v", err)
	}
	if cfg.Mode != ObjectStorageModeGCSEmulator || cfg.EmulatorHost != "http://fake-gcs:4443" {
		t.Fatalf("emulator fallback: got %+v", cfg)
	}
}

func TestResolveObjectStorageConfigExplicit(t *testing.T) {
	cfg, err := ResolveObjectStorageConfig("GCS", "http://fake-gcs:4443", "")
	if err != nil || cfg.Mode != ObjectStorageModeGCS {
		t.Fatalf("explicit gcs: %+v %v", cfg, err)
	}
	cfg, err = ResolveObjectStorageConfig("gcs_emulator", "http://fake-gcs:4443", "http://localhost:4443/")
	if err != nil || !cfg.IsEmulatorMode() || cfg.PublicBaseURL != "http://localhost:4443" {
		t.Fatalf("explicit emulator: %+v %v", cfg, err)
	}
}

func TestResolveObjectStorageConfigErrors(t *testing.T) {
	cases := []struct {
		name  string
		mode  string
		host  string
		base  string
		field string
	}{
		{"bad mode", "s3", "", "", "OBJECT_STORAGE_MODE"},
		{"missing host", "gcs_emulator", "", "", "STORAGE_EMULATOR_HOST"},
		{"relative host", "gcs_emulator", "fake-gcs", "", "STORAGE_EMULATOR_HOST"},
		{"bad base", "gcs", "", "localhost", "OBJECT_STORAGE_PUBLIC_BASE_URL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveObjectStorageConfig(tc.mode, tc.host, tc.base)
			var cfgErr *ObjectStorageConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tc.field {
				t.Fatalf("want field %s, got %v", tc.field, err)
			}
		})
	}
}
