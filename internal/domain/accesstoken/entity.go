package accesstoken

import "time"

type Purpose string

const (
	PurposeCheckIn    Purpose = "check_in"
	PurposeCheckOut   Purpose = "check_out"
	PurposeAttendance Purpose = "attendance"
)

func (p Purpose) Valid() bool {
	switch p {
	case PurposeCheckIn, PurposeCheckOut, PurposeAttendance:
		return true
	}
	return false
}

const (
	// TTL bounds for issued tokens, in seconds.
	MinTTLSeconds     = 5
	MaxTTLSeconds     = 300
	DefaultTTLSeconds = 60

	// ConsumeGraceWindow is how long after consumption a retry of the same
	// submission is still treated as a success. Kiosk clients retry on
	// flaky networks; without the grace window a delivered-but-unacked
	// consume would strand the employee.
	ConsumeGraceWindow = 20 * time.Second
)

type Token struct {
	ID            string
	Token         string
	Purpose       Purpose
	ExpiresAt     time.Time
	ConsumedAt    *time.Time
	ConsumedByPIN *string
	CreatedAt     time.Time
}

func (t Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t Token) Consumed() bool {
	return t.ConsumedAt != nil
}

// WithinGrace reports whether the token was consumed less than the grace
// window ago.
func (t Token) WithinGrace(now time.Time) bool {
	return t.ConsumedAt != nil && now.Sub(*t.ConsumedAt) <= ConsumeGraceWindow
}
