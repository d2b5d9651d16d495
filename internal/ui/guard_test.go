package ui

import (
	"context"
	"errors"
	"testing"
	"time"
)

// countQuery counts probes and returns a scripted sequence of results.
type countQuery struct {
	counts []int
	errs   []error
	probes int
}

func (q *countQuery) Count(ctx context.Context) (int, error) {
	i := q.probes
	q.probes++
	var n int
	var err error
	if i < len(q.counts) {
		n = q.counts[i]
	}
	if i < len(q.errs) {
		err = q.errs[i]
	}
	return n, err
}

func (q *countQuery) Click(ctx context.Context) error           { return nil }
func (q *countQuery) Fill(ctx context.Context, _ string) error  { return nil }
func (q *countQuery) Press(ctx context.Context, _ string) error { return nil }
func (q *countQuery) Nth(i int) Query                           { return q }
func (q *countQuery) First() Query                              { return q }

func TestEnsureSucceedsImmediately(t *testing.T) {
	t.Parallel()

	q := &countQuery{counts: []int{2}}
	got, err := Ensure(context.Background(), q, "day button", RetryPolicy{MaxAttempts: 3, BaseDelay: 0})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if got != q {
		t.Fatal("Ensure did not return the query")
	}
	if q.probes != 1 {
		t.Fatalf("probes = %d, want 1", q.probes)
	}
}

func TestEnsureRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	q := &countQuery{counts: []int{0, 0, 1}}
	if _, err := Ensure(context.Background(), q, "slot button", RetryPolicy{MaxAttempts: 3, BaseDelay: 0}); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if q.probes != 3 {
		t.Fatalf("probes = %d, want 3", q.probes)
	}
}

func TestEnsureExhaustsBudget(t *testing.T) {
	t.Parallel()

	q := &countQuery{counts: []int{0, 0, 0, 1}}
	start := time.Now()
	_, err := Ensure(context.Background(), q, "day button", RetryPolicy{MaxAttempts: 3, BaseDelay: 0})
	if err == nil {
		t.Fatal("Ensure: expected error")
	}
	if !IsNotFound(err) {
		t.Fatalf("Ensure error = %v, want ElementNotFoundError", err)
	}
	var enf *ElementNotFoundError
	if !errors.As(err, &enf) || enf.Description != "day button" {
		t.Fatalf("error does not carry the description: %v", err)
	}
	if q.probes != 3 {
		t.Fatalf("probes = %d, want exactly 3", q.probes)
	}
	// Jitter tops out at 100ms per sleep and there is no sleep after the
	// final attempt, so two sleeps bound the wall time well under a second.
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Ensure took %v, suggesting a sleep after the final attempt", elapsed)
	}
}

func TestEnsureRetriesQueryErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("stale frame")
	q := &countQuery{counts: []int{0, 1}, errs: []error{boom, nil}}
	if _, err := Ensure(context.Background(), q, "next button", RetryPolicy{MaxAttempts: 2, BaseDelay: 0}); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if q.probes != 2 {
		t.Fatalf("probes = %d, want 2", q.probes)
	}
}

func TestEnsureHonorsContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q := &countQuery{counts: []int{0, 0}}
	_, err := Ensure(ctx, q, "book button", RetryPolicy{MaxAttempts: 2, BaseDelay: time.Minute})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Ensure error = %v, want context.Canceled", err)
	}
}
