// Package report accumulates per-request booking outcomes and renders the
// single end-of-run summary.
package report

import (
	"fmt"
	"strings"
	"time"
)

type Kind int

const (
	KindBooked Kind = iota
	KindUnavailable
	KindAlreadyBooked
	KindFailed
)

// Outcome is the result of one booking request.
type Outcome struct {
	Kind  Kind
	Day   string
	Date  time.Time // resolved calendar date for the day token
	Slots []string
	Err   error // set for KindFailed
}

// Aggregator collects outcomes append-only over a run.
type Aggregator struct {
	outcomes []Outcome
}

func (a *Aggregator) Add(o Outcome) { a.outcomes = append(a.outcomes, o) }

func (a *Aggregator) Outcomes() []Outcome { return a.outcomes }

func (a *Aggregator) count(k Kind) int {
	n := 0
	for _, o := range a.outcomes {
		if o.Kind == k {
			n++
		}
	}
	return n
}

// Title picks the notification title from the dominant outcome: any booking
// counts as a success; otherwise any unavailable or failed day reads as no
// availability; a run that only skipped already-booked days says so.
func (a *Aggregator) Title() string {
	switch {
	case a.count(KindBooked) > 0:
		return "Success"
	case a.count(KindUnavailable) > 0 || a.count(KindFailed) > 0:
		return "No Availability"
	default:
		return "All Already Booked"
	}
}

// Render formats the run summary grouped by outcome kind.
func (a *Aggregator) Render() string {
	var lines []string

	appendGroup := func(k Kind, header string) {
		n := a.count(k)
		if n == 0 {
			return
		}
		lines = append(lines, fmt.Sprintf(header, n))
		for _, o := range a.outcomes {
			if o.Kind != k {
				continue
			}
			line := fmt.Sprintf("  - %s: %s", dayLabel(o), strings.Join(o.Slots, ", "))
			if o.Err != nil {
				line += fmt.Sprintf(" (%v)", o.Err)
			}
			lines = append(lines, line)
		}
	}

	appendGroup(KindBooked, "✓ Successfully booked %d day(s):")
	appendGroup(KindUnavailable, "✗ No available slots for %d day(s):")
	appendGroup(KindAlreadyBooked, "⊘ Skipped %d day(s) (already booked):")
	appendGroup(KindFailed, "! Booking failed for %d day(s):")

	if len(lines) == 0 {
		return "No bookings to process."
	}
	return strings.Join(lines, "\n")
}

func dayLabel(o Outcome) string {
	if o.Date.IsZero() {
		return o.Day
	}
	return fmt.Sprintf("%s %s", o.Day, o.Date.Format("Jan 2"))
}
