// Package orchestrator runs one scheduled booking pass: filter requests
// against the ledger, drive the workflow per remaining request, record wins,
// and send the single end-of-run notification.
package orchestrator

import (
	"context"
	"log"
	"time"

	"github.com/example/courtsched/internal/booking"
	"github.com/example/courtsched/internal/config"
	"github.com/example/courtsched/internal/ledger"
	"github.com/example/courtsched/internal/report"
	"github.com/example/courtsched/internal/ui"
	"github.com/example/courtsched/internal/workflow"
)

// SessionFactory opens one browser session per booking attempt.
type SessionFactory func(ctx context.Context) (ui.Session, error)

// Notifier delivers the run summary. Delivery is best-effort.
type Notifier interface {
	Configured() bool
	Send(ctx context.Context, message, title string) error
}

type Runner struct {
	Config   config.Config
	Ledger   ledger.Store
	Sessions SessionFactory
	Notifier Notifier

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// Run processes every configured request in order. Requests are independent:
// a hard failure on one is recorded and the rest still run. The returned
// aggregator always reflects every request.
func (r *Runner) Run(ctx context.Context) *report.Aggregator {
	agg := &report.Aggregator{}

	for _, req := range r.Config.Requests {
		date := booking.NextDateForDay(req.Day, r.now())

		pending := ledger.Pending(r.Ledger, req)
		if len(pending) == 0 {
			log.Printf("orchestrator: all slots for %s already booked, skipping", req.Day)
			agg.Add(report.Outcome{Kind: report.KindAlreadyBooked, Day: req.Day, Date: date, Slots: req.Slots})
			continue
		}

		booked, err := r.attempt(ctx, req.Day, pending)
		switch {
		case err != nil:
			log.Printf("orchestrator: booking %s %v failed: %v", req.Day, pending, err)
			agg.Add(report.Outcome{Kind: report.KindFailed, Day: req.Day, Date: date, Slots: pending, Err: err})
		case booked:
			for _, slot := range pending {
				// A persistence failure only risks a harmless duplicate
				// attempt next run; it never undoes a successful booking.
				if err := r.Ledger.Record(ctx, req.Day, slot); err != nil {
					log.Printf("orchestrator: recording %s_%s: %v", req.Day, slot, err)
				}
			}
			agg.Add(report.Outcome{Kind: report.KindBooked, Day: req.Day, Date: date, Slots: pending})
		default:
			agg.Add(report.Outcome{Kind: report.KindUnavailable, Day: req.Day, Date: date, Slots: pending})
		}
	}

	r.notify(ctx, agg)
	return agg
}

// attempt runs the workflow inside a scoped browser session. The session is
// released on every exit path, including panics inside the automation stack.
func (r *Runner) attempt(ctx context.Context, day string, slots []string) (bool, error) {
	sess, err := r.Sessions(ctx)
	if err != nil {
		return false, err
	}
	defer sess.Close()

	flow := &workflow.Flow{
		Page:  sess.Page(),
		Retry: r.Config.Retry,
		Waits: workflow.Waits{Base: r.Config.Waits.Base, Jitter: r.Config.Waits.Jitter},
	}
	return flow.Book(ctx, workflow.Params{
		Email:        r.Config.Email,
		Password:     r.Config.Password,
		Day:          day,
		Slots:        slots,
		Categories:   r.Config.Categories,
		ExtraPlayers: r.Config.ExtraPlayers,
	})
}

func (r *Runner) notify(ctx context.Context, agg *report.Aggregator) {
	if r.Notifier == nil || !r.Notifier.Configured() {
		log.Printf("orchestrator: notifier not configured, skipping notification")
		return
	}
	if err := r.Notifier.Send(ctx, agg.Render(), agg.Title()); err != nil {
		log.Printf("orchestrator: %v", err)
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
