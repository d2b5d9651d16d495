package ledger

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/example/courtsched/internal/booking"
)

func TestFileLoadMissing(t *testing.T) {
	t.Parallel()

	f := NewFile(filepath.Join(t.TempDir(), "nope", "booked.txt"))
	if err := f.Load(context.Background()); err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(f.Keys()) != 0 {
		t.Fatalf("expected empty set, got %v", f.Keys())
	}
}

func TestFileRecordIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "booked.txt")
	f := NewFile(path)
	if err := f.Record(ctx, "Sat", "9am"); err != nil {
		t.Fatal(err)
	}
	if err := f.Record(ctx, "Sat", "9am"); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "Sat_9am" {
		t.Fatalf("file = %q, want a single Sat_9am line", b)
	}
}

func TestFileRoundTripSorted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "booked.txt")
	f := NewFile(path)
	for _, k := range []Key{{"Tue", "5pm"}, {"Sat", "9am"}, {"Sat", "8:30am"}} {
		if err := f.Record(ctx, k.Day, k.Slot); err != nil {
			t.Fatal(err)
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "Sat_8:30am\nSat_9am\nTue_5pm" {
		t.Fatalf("file = %q, want sorted day_slot lines", b)
	}

	reloaded := NewFile(path)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(reloaded.Keys(), f.Keys()) {
		t.Fatalf("reloaded keys %v != recorded keys %v", reloaded.Keys(), f.Keys())
	}
}

func TestFileHandlesColonTimes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "booked.txt")
	if err := os.WriteFile(path, []byte("Sun_8:30am\n\nTue_5pm\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := NewFile(path)
	if err := f.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if !f.Contains("Sun", "8:30am") || !f.Contains("Tue", "5pm") {
		t.Fatalf("unexpected keys %v", f.Keys())
	}
}

func TestPending(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := NewFile("")
	if err := f.Record(ctx, "Sat", "9am"); err != nil {
		t.Fatal(err)
	}

	got := Pending(f, booking.Request{Day: "Sat", Slots: []string{"9am", "9:30am"}})
	if !reflect.DeepEqual(got, []string{"9:30am"}) {
		t.Fatalf("Pending = %v, want [9:30am]", got)
	}

	if got := Pending(f, booking.Request{Day: "Sat", Slots: []string{"9am"}}); got != nil {
		t.Fatalf("Pending = %v, want nil for fully-booked request", got)
	}
}

func TestFileClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "booked.txt")
	f := NewFile(path)
	if err := f.Record(ctx, "Sat", "9am"); err != nil {
		t.Fatal(err)
	}
	if err := f.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if len(f.Keys()) != 0 {
		t.Fatalf("expected empty set after Clear, got %v", f.Keys())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected backing file removed, stat err = %v", err)
	}
}
