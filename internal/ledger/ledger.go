// Package ledger persists which (day, slot) pairs have already been booked,
// so a scheduled run never re-attempts a slot it already won.
package ledger

import (
	"context"

	"github.com/example/courtsched/internal/booking"
)

// Key identifies one booked slot. Uniqueness holds over the pair; the ledger
// deliberately carries no calendar date — the system books one recurring
// weekly slot per pair and never revisits it.
type Key struct {
	Day  string
	Slot string
}

// Store is the idempotency record behind a booking run.
type Store interface {
	// Load reads the persisted set into memory. A missing backing record is
	// the normal first-run state, not an error.
	Load(ctx context.Context) error

	// Contains reports whether the pair has been recorded.
	Contains(day, slot string) bool

	// Record adds the pair to the set and persists it. Persistence failures
	// are returned so the caller can log them, but a failed Record must never
	// abort an otherwise-successful booking.
	Record(ctx context.Context, day, slot string) error

	// Keys returns the recorded pairs sorted by (day, slot).
	Keys() []Key

	// Clear forgets every recorded pair, in memory and in the backing store.
	Clear(ctx context.Context) error
}

// Pending returns the request's slots that are not yet in the store,
// preserving request order.
func Pending(s Store, req booking.Request) []string {
	var out []string
	for _, slot := range req.Slots {
		if !s.Contains(req.Day, slot) {
			out = append(out, slot)
		}
	}
	return out
}
