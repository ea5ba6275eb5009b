package gcp

import (
	"fmt"
	"net/url"
	"strings"
)

type ObjectStorageMode string

const (
	ObjectStorageModeGCS         ObjectStorageMode = "gcs"
	ObjectStorageModeGCSEmulator ObjectStorageMode = "gcs_emulator"
)

type ObjectStorageConfig struct {
	Mode         ObjectStorageMode
	EmulatorHost string
	// PublicBaseURL overrides the host used in public object URLs.
	PublicBaseURL string
}

func (cfg ObjectStorageConfig) IsEmulatorMode() bool {
	return cfg.Mode == ObjectStorageModeGCSEmulator
}

type ObjectStorageConfigError struct {
	Field string
	Value string
	Cause error
}

func (e *ObjectStorageConfigError) Error() string {
	switch e.Field {
	case "OBJECT_STORAGE_MODE":
		return fmt.Sprintf("invalid OBJECT_STORAGE_MODE=%q (allowed: %q, %q)", e.Value, ObjectStorageModeGCS, ObjectStorageModeGCSEmulator)
	case "STORAGE_EMULATOR_HOST":
		if e.Value == "" {
			return fmt.Sprintf("OBJECT_STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST to be set", ObjectStorageModeGCSEmulator)
		}
		return fmt.Sprintf("invalid STORAGE_EMULATOR_HOST=%q; expected absolute URL like http://fake-gcs:4443", e.Value)
	default:
		return fmt.Sprintf("invalid %s=%q", e.Field, e.Value)
	}
}

func (e *ObjectStorageConfigError) Unwrap() error { return e.Cause }

// ResolveObjectStorageConfig normalizes raw settings. An empty mode picks the
// emulator when an emulator host is present and real GCS otherwise.
func ResolveObjectStorageConfig(rawMode, emulatorHost, publicBaseURL string) (ObjectStorageConfig, error) {
	cfg := ObjectStorageConfig{
		EmulatorHost:  strings.TrimRight(strings.TrimSpace(emulatorHost), "/"),
		PublicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
	}

	switch mode := ObjectStorageMode(strings.ToLower(strings.TrimSpace(rawMode))); mode {
	case "":
		if cfg.EmulatorHost != "" {
			cfg.Mode = ObjectStorageModeGCSEmulator
		} else {
			cfg.Mode = ObjectStorageModeGCS
		}
	case ObjectStorageModeGCS, ObjectStorageModeGCSEmulator:
		cfg.Mode = mode
	default:
		return cfg, &ObjectStorageConfigError{Field: "OBJECT_STORAGE_MODE", Value: rawMode}
	}

	if cfg.IsEmulatorMode() {
		if err := requireAbsoluteURL("STORAGE_EMULATOR_HOST", cfg.EmulatorHost); err != nil {
			return cfg, err
		}
	}
	if cfg.PublicBaseURL != "" {
		if err := requireAbsoluteURL("OBJECT_STORAGE_PUBLIC_BASE_URL", cfg.PublicBaseURL); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func requireAbsoluteURL(field, raw string) error {
	if raw == "" {
		return &ObjectStorageConfigError{Field: field}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ObjectStorageConfigError{Field: field, Value: raw, Cause: err}
	}
	return nil
}
