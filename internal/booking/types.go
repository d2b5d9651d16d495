package booking

// Request is one day's worth of desired court time.
type Request struct {
	// Day is a normalized three-letter weekday token, e.g. "Sat".
	Day string

	// Slots are the displayed end-time labels to book, in request order.
	// Order is preserved and duplicates are kept as configured.
	Slots []string
}
