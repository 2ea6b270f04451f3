package accesstoken

import "errors"

// Access token domain errors
var (
	ErrTokenNotFound        = errors.New("access token not found")
	ErrTokenExpired         = errors.New("access token expired")
	ErrTokenAlreadyConsumed = errors.New("access token already consumed")
	ErrInvalidPurpose       = errors.New("invalid token purpose")
)
