package domain

import "time"

// User moves through exactly one transition: unverified (code set) to
// verified (code cleared, terminal). Unverified rows past their TTL are
// removed by the cleanup sweep instead.
type User struct {
	ID               int64
	Username         string // unique
	Email            string // unique
	PasswordHash     string
	VerificationCode *string // non-nil only while unverified
	Verified         bool
	RegisteredAt     time.Time // UTC
}
