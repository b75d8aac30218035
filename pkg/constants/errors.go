package constants

import "errors"

// Errors
var (
	ErrNoBaseURL     = errors.New("portal url not set")
	ErrNoMarshaler   = errors.New("marshaler is not set")
	ErrNoUnmarshaler = errors.New("unmarshaler is not set")
	ErrNoSession     = errors.New("session is not set")
	ErrEmptyGroupID  = errors.New("group id must not be empty")
	ErrNoProfile     = errors.New("profile not found in config file")
)
