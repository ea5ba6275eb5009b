package errors

import "errors"

var (
	// ErrNotFound covers missing, inactive and soft-deleted records alike.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized means no usable caller credential was presented.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is known but lacks the required access tier.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidIdentifier is returned for path identifiers that are not canonical UUIDs.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrStorageDisabled is returned when object storage is not configured.
	ErrStorageDisabled = errors.New("object storage disabled")
)
