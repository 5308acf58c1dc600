package models

import "errors"

// Common errors for library and download operations.
var (
	// Request errors
	ErrInvalidRequest = errors.New("invalid request")

	// Access errors
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
	ErrUserDisabled  = errors.New("user account is disabled")

	// Asset errors
	ErrAssetNotFound = errors.New("asset not found")

	// Album errors
	ErrAlbumNotFound  = errors.New("album not found")
	ErrDuplicateAlbum = errors.New("album already exists")
)
