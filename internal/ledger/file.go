package ledger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File is the default Store: a newline-delimited UTF-8 text file with one
// "day_slot" line per booked pair, rewritten sorted on every record so diffs
// stay deterministic.
type File struct {
	path string
	set  map[Key]struct{}
}

// NewFile returns a file-backed store at path. An empty path disables
// persistence: the store still deduplicates within the run, it just never
// touches disk.
func NewFile(path string) *File {
	return &File{path: path, set: make(map[Key]struct{})}
}

func (f *File) Load(ctx context.Context) error {
	if f.path == "" {
		return nil
	}
	b, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("ledger: read %s: %w", f.path, err)
	}
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Split from the right: slot labels like "5:30pm" never contain
		// underscores, day tokens never do either, but only the last
		// underscore is the separator by contract.
		i := strings.LastIndex(line, "_")
		if i <= 0 || i == len(line)-1 {
			continue
		}
		f.set[Key{Day: strings.TrimSpace(line[:i]), Slot: strings.TrimSpace(line[i+1:])}] = struct{}{}
	}
	return nil
}

func (f *File) Contains(day, slot string) bool {
	_, ok := f.set[Key{Day: day, Slot: slot}]
	return ok
}

func (f *File) Record(ctx context.Context, day, slot string) error {
	f.set[Key{Day: day, Slot: slot}] = struct{}{}
	if f.path == "" {
		return nil
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ledger: mkdir %s: %w", dir, err)
		}
	}
	lines := make([]string, 0, len(f.set))
	for k := range f.set {
		lines = append(lines, k.Day+"_"+k.Slot)
	}
	sort.Strings(lines)
	if err := os.WriteFile(f.path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("ledger: write %s: %w", f.path, err)
	}
	return nil
}

// Keys returns the recorded pairs sorted by (day, slot).
func (f *File) Keys() []Key {
	out := make([]Key, 0, len(f.set))
	for k := range f.set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Slot < out[j].Slot
	})
	return out
}

// Clear forgets every recorded pair and removes the backing file.
func (f *File) Clear(ctx context.Context) error {
	f.set = make(map[Key]struct{})
	if f.path == "" {
		return nil
	}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ledger: remove %s: %w", f.path, err)
	}
	return nil
}
