package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrUpstream            = errors.New("upstream provider failure")
	ErrStorage             = errors.New("storage failure")
	ErrConfiguration       = errors.New("GEMINI_API_KEY is not configured")
)
