package domain

import "time"

// UsageKind identifies what a usage record counts against.
type UsageKind string

const (
	UsageKindStatus  UsageKind = "status"
	UsageKindProduct UsageKind = "product"
)

// StatusLifetime is how long a status stays visible after it is posted.
const StatusLifetime = 24 * time.Hour

// UsageRecord is a timestamped creation event for an owner's card.
type UsageRecord struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Kind      UsageKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// DayWindow returns the half-open interval [start, end) covering the calendar
// day of now, in now's location.
func DayWindow(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end = start.Add(24 * time.Hour)
	return start, end
}

// CountCreatedToday counts the records created during now's local calendar day.
func CountCreatedToday(records []UsageRecord, now time.Time) int {
	start, end := DayWindow(now)
	count := 0
	for _, r := range records {
		if !r.CreatedAt.Before(start) && r.CreatedAt.Before(end) {
			count++
		}
	}
	return count
}

// CountKind is CountCreatedToday restricted to records of one kind.
func CountKind(records []UsageRecord, kind UsageKind, now time.Time) int {
	filtered := make([]UsageRecord, 0, len(records))
	for _, r := range records {
		if r.Kind == kind {
			filtered = append(filtered, r)
		}
	}
	return CountCreatedToday(filtered, now)
}

// StatusExpiresAt returns when a status posted at createdAt stops being shown.
func StatusExpiresAt(createdAt time.Time) time.Time {
	return createdAt.Add(StatusLifetime)
}

// IsStatusActive reports whether a status posted at createdAt is still live.
func IsStatusActive(createdAt time.Time, now time.Time) bool {
	expiresAt := StatusExpiresAt(createdAt)
	return !IsExpired(&expiresAt, now)
}
