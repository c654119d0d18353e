package domain

import (
	"math"
	"time"
)

// ExpiryWarningDays is the threshold at which a subscription shows a renewal warning.
const ExpiryWarningDays = 3

// ExpiryState classifies a subscription against the current time.
type ExpiryState string

const (
	ExpiryStateNever   ExpiryState = "never"
	ExpiryStateActive  ExpiryState = "active"
	ExpiryStateWarning ExpiryState = "warning"
	ExpiryStateExpired ExpiryState = "expired"
)

// ExpiryInfo is the expiry view attached to entitlement summaries.
type ExpiryInfo struct {
	ExpiresAt     *time.Time  `json:"expires_at"`
	DaysRemaining *int        `json:"days_remaining"`
	State         ExpiryState `json:"state"`
}

// IsExpired reports whether expiresAt lies strictly before now.
// A nil expiresAt never expires.
func IsExpired(expiresAt *time.Time, now time.Time) bool {
	if expiresAt == nil {
		return false
	}
	return expiresAt.Before(now)
}

// DaysRemaining returns the whole days left until expiresAt, rounded up and
// never negative. ok is false when there is no expiry.
func DaysRemaining(expiresAt *time.Time, now time.Time) (days int, ok bool) {
	if expiresAt == nil {
		return 0, false
	}
	d := int(math.Ceil(expiresAt.Sub(now).Hours() / 24))
	if d < 0 {
		d = 0
	}
	return d, true
}

// ClassifyExpiry returns the expiry state of a subscription.
func ClassifyExpiry(expiresAt *time.Time, now time.Time) ExpiryState {
	if expiresAt == nil {
		return ExpiryStateNever
	}
	if IsExpired(expiresAt, now) {
		return ExpiryStateExpired
	}
	if days, _ := DaysRemaining(expiresAt, now); days <= ExpiryWarningDays {
		return ExpiryStateWarning
	}
	return ExpiryStateActive
}

// DescribeExpiry builds the ExpiryInfo for expiresAt.
func DescribeExpiry(expiresAt *time.Time, now time.Time) ExpiryInfo {
	info := ExpiryInfo{
		ExpiresAt: expiresAt,
		State:     ClassifyExpiry(expiresAt, now),
	}
	if days, ok := DaysRemaining(expiresAt, now); ok {
		info.DaysRemaining = &days
	}
	return info
}
