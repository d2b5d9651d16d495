// Package workflow drives the booking site's multi-step reservation flow:
// sign in, open the booking page, then for each category in fallback order
// select the day and every requested time slot, pick the player count and
// confirm. The first category that offers all requested slots wins.
package workflow

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/example/courtsched/internal/ui"
)

const signInURL = "https://app.playbypoint.com/users/sign_in"

// Waits paces interactions with freshly-loaded content so the flow behaves
// like a person, not a hammer. Zero values disable pacing (tests).
type Waits struct {
	Base   time.Duration
	Jitter time.Duration
}

// Params describes one booking attempt.
type Params struct {
	Email    string
	Password string

	Day   string   // normalized weekday token, e.g. "Sat"
	Slots []string // end-time labels, clicked in this order

	// Categories is the fixed fallback order of offering tabs to try.
	Categories []string

	// ExtraPlayers is how many participants to add beyond the account holder.
	ExtraPlayers int
}

// Flow runs booking attempts against a ui.Page.
type Flow struct {
	Page  ui.Page
	Retry ui.RetryPolicy
	Waits Waits
}

// Book runs the full flow for one request. It returns true once every
// requested slot is booked via a single category, false when no category
// offers all of them. Any error is a hard failure for this request; element
// absence inside the category loop is not an error, it drives fallback.
func (f *Flow) Book(ctx context.Context, p Params) (bool, error) {
	if err := f.login(ctx, p.Email, p.Password); err != nil {
		return false, err
	}
	if err := f.openBooking(ctx); err != nil {
		return false, err
	}

	for _, category := range p.Categories {
		ok, err := f.selectTimes(ctx, category, p.Day, p.Slots)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}

		if err := f.proceedNext(ctx); err != nil {
			return false, err
		}
		if err := f.selectPlayerCount(ctx, 1+p.ExtraPlayers); err != nil {
			return false, err
		}
		if p.ExtraPlayers > 0 {
			if err := f.addPlayers(ctx, p.ExtraPlayers); err != nil {
				return false, err
			}
		}
		if err := f.proceedNext(ctx); err != nil {
			return false, err
		}
		if err := f.confirm(ctx); err != nil {
			return false, err
		}

		log.Printf("workflow: booked %s %v via %q", p.Day, p.Slots, category)
		return true, nil
	}
	return false, nil
}

func (f *Flow) login(ctx context.Context, email, password string) error {
	if err := f.Page.Navigate(ctx, signInURL); err != nil {
		return fmt.Errorf("workflow: open sign-in page: %w", err)
	}

	emailBox, err := f.ensure(ctx, f.Page.ByRole(ui.RoleTextbox, "Email", false), "Email textbox")
	if err != nil {
		return fmt.Errorf("workflow: login: %w", err)
	}
	if err := emailBox.Fill(ctx, email); err != nil {
		return fmt.Errorf("workflow: fill email: %w", err)
	}
	if err := emailBox.Press(ctx, "Tab"); err != nil {
		return fmt.Errorf("workflow: leave email field: %w", err)
	}

	pwdBox, err := f.ensure(ctx, f.Page.ByRole(ui.RoleTextbox, "Password", false), "Password textbox")
	if err != nil {
		return fmt.Errorf("workflow: login: %w", err)
	}
	if err := pwdBox.Fill(ctx, password); err != nil {
		return fmt.Errorf("workflow: fill password: %w", err)
	}

	signIn, err := f.ensure(ctx, f.Page.ByRole(ui.RoleButton, "Sign in", false), "Sign in button")
	if err != nil {
		return fmt.Errorf("workflow: login: %w", err)
	}
	if err := signIn.Click(ctx); err != nil {
		return fmt.Errorf("workflow: sign in: %w", err)
	}
	return nil
}

func (f *Flow) openBooking(ctx context.Context) error {
	// Give the post-login redirect a moment to land.
	if err := f.pause(ctx); err != nil {
		return err
	}
	link, err := f.ensure(ctx, f.Page.ByRole(ui.RoleLink, "Book Now", false), "Book Now link")
	if err != nil {
		return fmt.Errorf("workflow: booking page: %w", err)
	}
	if err := link.Click(ctx); err != nil {
		return fmt.Errorf("workflow: open booking page: %w", err)
	}
	return nil
}

// selectTimes attempts one category. It returns (false, nil) when the
// category tab, the day button, or any requested slot is absent — that whole
// category is rejected, partial availability is never booked.
func (f *Flow) selectTimes(ctx context.Context, category, day string, slots []string) (bool, error) {
	tab, err := f.ensure(ctx, f.Page.ByRole(ui.RoleButton, category, true), fmt.Sprintf("category tab %q", category))
	if ui.IsNotFound(err) {
		log.Printf("workflow: category %q not offered", category)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := tab.Click(ctx); err != nil {
		return false, fmt.Errorf("workflow: select category %q: %w", category, err)
	}
	if err := f.pause(ctx); err != nil {
		return false, err
	}

	dayBtn, err := f.ensure(ctx, f.Page.ByRole(ui.RoleButton, day, false), fmt.Sprintf("day button %q", day))
	if ui.IsNotFound(err) {
		log.Printf("workflow: no %s offered under %q", day, category)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := dayBtn.Click(ctx); err != nil {
		return false, fmt.Errorf("workflow: select day %q: %w", day, err)
	}
	if err := f.pause(ctx); err != nil {
		return false, err
	}

	// All requested slots must be available before anything is clicked;
	// otherwise the next category gets its chance at the full set.
	buttons := make([]ui.Query, 0, len(slots))
	for _, end := range slots {
		btn, err := f.ensure(ctx, f.Page.BySlotText("-"+end), fmt.Sprintf("slot ending at %s", end))
		if ui.IsNotFound(err) {
			log.Printf("workflow: no available slot ending at %s under %q", end, category)
			return false, nil
		}
		if err != nil {
			return false, err
		}
		buttons = append(buttons, btn)
	}
	for i, btn := range buttons {
		if err := btn.First().Click(ctx); err != nil {
			return false, fmt.Errorf("workflow: click slot %s: %w", slots[i], err)
		}
	}
	return true, nil
}

func (f *Flow) proceedNext(ctx context.Context) error {
	if err := f.pause(ctx); err != nil {
		return err
	}
	btn, err := f.ensure(ctx, f.Page.ByRole(ui.RoleButton, "Next", false), "Next button")
	if err != nil {
		return fmt.Errorf("workflow: proceed: %w", err)
	}
	if err := btn.Click(ctx); err != nil {
		return fmt.Errorf("workflow: proceed: %w", err)
	}
	return nil
}

func (f *Flow) selectPlayerCount(ctx context.Context, count int) error {
	if err := f.pause(ctx); err != nil {
		return err
	}
	btn, err := f.ensure(ctx, f.Page.ByRole(ui.RoleButton, strconv.Itoa(count), false),
		fmt.Sprintf("player count button %d", count))
	if err != nil {
		return fmt.Errorf("workflow: player count: %w", err)
	}
	if err := btn.Click(ctx); err != nil {
		return fmt.Errorf("workflow: player count: %w", err)
	}
	return nil
}

// addPlayers adds count extra participants. The 0th Add affordance belongs to
// the account holder, so extras are indexed from 1.
func (f *Flow) addPlayers(ctx context.Context, count int) error {
	btn, err := f.ensure(ctx, f.Page.ByRole(ui.RoleButton, "Add Players", false), "Add Players button")
	if err != nil {
		return fmt.Errorf("workflow: add players: %w", err)
	}
	if err := btn.Click(ctx); err != nil {
		return fmt.Errorf("workflow: add players: %w", err)
	}
	for i := 1; i <= count; i++ {
		add, err := f.ensure(ctx, f.Page.ByRole(ui.RoleButton, "Add", false).Nth(i),
			fmt.Sprintf("Add button #%d", i))
		if err != nil {
			return fmt.Errorf("workflow: add player %d: %w", i, err)
		}
		if err := add.Click(ctx); err != nil {
			return fmt.Errorf("workflow: add player %d: %w", i, err)
		}
	}
	return nil
}

func (f *Flow) confirm(ctx context.Context) error {
	if err := f.pause(ctx); err != nil {
		return err
	}
	btn, err := f.ensure(ctx, f.Page.ByRole(ui.RoleButton, "Book", false), "Book button")
	if err != nil {
		return fmt.Errorf("workflow: confirm: %w", err)
	}
	if err := btn.Click(ctx); err != nil {
		return fmt.Errorf("workflow: confirm: %w", err)
	}
	return nil
}

func (f *Flow) ensure(ctx context.Context, q ui.Query, description string) (ui.Query, error) {
	policy := f.Retry
	if policy.MaxAttempts == 0 {
		policy = ui.DefaultRetryPolicy
	}
	return ui.Ensure(ctx, q, description, policy)
}

func (f *Flow) pause(ctx context.Context) error {
	d := f.Waits.Base
	if f.Waits.Jitter > 0 {
		d += time.Duration(rand.Int63n(int64(f.Waits.Jitter)))
	}
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
