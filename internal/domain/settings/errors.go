package settings

import "errors"

var (
	ErrInvalidPenaltyTiers = errors.New("invalid penalty tier configuration")
	ErrSettingsNotFound    = errors.New("attendance settings not found")
)
