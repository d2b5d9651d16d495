// Package ui defines the automation surface the booking workflow drives.
// The workflow only ever selects elements by accessible role/name or by
// visible text; it never sees raw markup or selectors.
package ui

import "context"

// Role is the accessible role of an element, mirroring what the site exposes.
type Role string

const (
	RoleButton  Role = "button"
	RoleLink    Role = "link"
	RoleTextbox Role = "textbox"
)

// Query is a lazy reference to zero or more matching elements. Building a
// Query performs no I/O; Count is the existence probe the guard retries on.
type Query interface {
	Count(ctx context.Context) (int, error)
	Click(ctx context.Context) error
	Fill(ctx context.Context, text string) error
	Press(ctx context.Context, key string) error

	// Nth narrows the query to the i-th match (0-based).
	Nth(i int) Query
	// First narrows the query to the first match.
	First() Query
}

// Page is one browser tab on the booking site.
type Page interface {
	Navigate(ctx context.Context, url string) error

	// ByRole matches elements by accessible role and name. With exact set,
	// the name must match in full rather than as a substring.
	ByRole(role Role, name string, exact bool) Query

	// BySlotText matches bookable slot buttons whose visible label contains
	// the given text, excluding buttons the site marks unavailable.
	BySlotText(text string) Query
}

// Session is a scoped browser acquisition: one Session per booking attempt,
// closed on every exit path.
type Session interface {
	Page() Page
	Close()
}
