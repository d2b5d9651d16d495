// Package config is the only place that reads the process environment.
// The resulting Config is built once at startup and passed down explicitly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/courtsched/internal/booking"
	"github.com/example/courtsched/internal/ui"
)

type Config struct {
	// Booking site credentials.
	Email    string
	Password string

	// Requests parsed from BOOKING_SLOTS.
	Requests []booking.Request

	// Category fallback order, e.g. Tennis then Free Play.
	Categories []string

	// ExtraPlayers beyond the account holder.
	ExtraPlayers int

	// Ledger backend: file path, or Redis when RedisAddr is set.
	LedgerPath    string
	RedisAddr     string
	RedisPassword string

	// Pushover credentials; empty disables notification.
	PushoverUserKey  string
	PushoverAPIToken string

	Headless bool
	Waits    struct {
		Base   time.Duration
		Jitter time.Duration
	}
	Retry ui.RetryPolicy
}

// FromEnv builds the configuration. Missing credentials or an empty or
// unparseable BOOKING_SLOTS are fatal: they are reported here, before any
// browser session opens.
func FromEnv() (Config, error) {
	cfg := Config{
		Email:            strings.TrimSpace(os.Getenv("PLAYBYPOINT_EMAIL")),
		Password:         os.Getenv("PLAYBYPOINT_PASSWORD"),
		LedgerPath:       strings.TrimSpace(os.Getenv("BOOKED_SLOTS_FILE")),
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		PushoverUserKey:  strings.TrimSpace(os.Getenv("PUSHOVER_USER_KEY")),
		PushoverAPIToken: strings.TrimSpace(os.Getenv("PUSHOVER_API_TOKEN")),
		Categories:       splitCSV(getenv("BOOKING_CATEGORIES", "Tennis,Free Play")),
		Headless:         getenv("HEADLESS", "1") != "0",
	}

	if cfg.Email == "" || cfg.Password == "" {
		return Config{}, fmt.Errorf("PLAYBYPOINT_EMAIL and PLAYBYPOINT_PASSWORD are required")
	}

	cfg.Requests = booking.ParseSlotSpec(os.Getenv("BOOKING_SLOTS"))
	if len(cfg.Requests) == 0 {
		return Config{}, fmt.Errorf("BOOKING_SLOTS is not set or has no valid groups (expected 'day1_slot1_slot2,day2_slot1')")
	}

	extra, err := strconv.Atoi(getenv("EXTRA_PLAYERS", "1"))
	if err != nil || extra < 0 {
		return Config{}, fmt.Errorf("invalid EXTRA_PLAYERS")
	}
	cfg.ExtraPlayers = extra

	cfg.Waits.Base, err = millis("WAIT_BASE_MS", 3000)
	if err != nil {
		return Config{}, err
	}
	cfg.Waits.Jitter, err = millis("WAIT_JITTER_MS", 2000)
	if err != nil {
		return Config{}, err
	}

	attempts, err := strconv.Atoi(getenv("GUARD_MAX_ATTEMPTS", "3"))
	if err != nil || attempts < 1 {
		return Config{}, fmt.Errorf("invalid GUARD_MAX_ATTEMPTS")
	}
	base, err := millis("GUARD_BASE_DELAY_MS", 1000)
	if err != nil {
		return Config{}, err
	}
	cfg.Retry = ui.RetryPolicy{MaxAttempts: attempts, BaseDelay: base}

	return cfg, nil
}

// LedgerFromEnv reads only the ledger-related variables, for commands that
// inspect the ledger without needing booking credentials.
func LedgerFromEnv() Config {
	return Config{
		LedgerPath:    strings.TrimSpace(os.Getenv("BOOKED_SLOTS_FILE")),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}
}

func millis(key string, def int) (time.Duration, error) {
	ms, err := strconv.Atoi(getenv(key, strconv.Itoa(def)))
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
