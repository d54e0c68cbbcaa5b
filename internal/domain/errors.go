package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the marketplace backend is unreachable
	ErrServerOffline = errors.New("marketplace server is unreachable")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("api key is invalid")

	// ErrParentNotFound indicates the requested league or team does not exist
	ErrParentNotFound = errors.New("league or team not found")

	// ErrRateLimited indicates the backend asked us to slow down
	ErrRateLimited = errors.New("rate limited by marketplace server")
)
