package ledger

import "errors"

// Ledger domain errors
var (
	ErrEntryNotFound = errors.New("ledger entry not found")
	ErrDebtNotFound  = errors.New("debt not found")
	ErrInvalidKind   = errors.New("invalid ledger entry kind")
)
