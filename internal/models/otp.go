package models

import (
	"time"
)

const (
	// OTPLength is the number of digits in a generated code.
	OTPLength = 6

	// OTPMaxAttempts is the verification attempt budget per record.
	OTPMaxAttempts = 5

	// OTPExpiry is how long a code stays verifiable after issuance.
	OTPExpiry = 10 * time.Minute
)

// OTPRecord represents a single issued one-time passcode. Only the salted
// digest of the code is persisted, never the plaintext.
type OTPRecord struct {
	ID          string     `json:"id"`
	PhoneNumber string     `json:"phone_number"`
	CodeHash    []byte     `json:"-"`
	Salt        []byte     `json:"-"`
	Attempts    int        `json:"attempts"`
	MaxAttempts int        `json:"max_attempts"`
	ExpiresAt   time.Time  `json:"expires_at"`
	ConsumedAt  *time.Time `json:"consumed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsExpired checks if the record has expired
func (o *OTPRecord) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

// IsConsumed checks if the record has already been spent
func (o *OTPRecord) IsConsumed() bool {
	return o.ConsumedAt != nil
}

// IsActive checks if the record can still be matched by verification
func (o *OTPRecord) IsActive() bool {
	return !o.IsExpired() && !o.IsConsumed()
}

// AttemptsExhausted checks if the attempt budget has been spent
func (o *OTPRecord) AttemptsExhausted() bool {
	return o.Attempts >= o.MaxAttempts
}
