package service

import "errors"

var (
	// Authentication: the caller could not be identified.
	ErrMissingCredentials   = errors.New("authorization header required")
	ErrMalformedCredentials = errors.New("malformed authorization header")
	ErrInvalidToken         = errors.New("invalid or expired token")

	// Authorization: the caller is identified but not allowed.
	ErrNotAdmin = errors.New("admin privileges required")

	// Validation and lookup failures.
	ErrMissingFields     = errors.New("waste type, description and pickup time are required")
	ErrComplaintNotFound = errors.New("complaint not found")
)
