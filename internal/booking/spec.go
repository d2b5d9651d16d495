package booking

import (
	"log"
	"strings"
)

// ParseSlotSpec parses the compact slot configuration string.
//
// Format: "day1_slot1_slot2,day2_slot1" — comma separates independent
// day-groups, underscore separates the day token from its time slots.
// Example: "Sun_8am_8:30am_9am,Tue_5pm_5:30pm".
//
// A group without at least one slot is dropped with a warning; a bad group
// never aborts the rest of the parse. Empty input yields nil.
func ParseSlotSpec(s string) []Request {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var out []Request
	for _, group := range strings.Split(s, ",") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		parts := strings.Split(group, "_")
		if len(parts) < 2 {
			log.Printf("booking: invalid slot group %q (expected day_slot1_slot2_...), skipping", group)
			continue
		}
		slots := make([]string, 0, len(parts)-1)
		for _, p := range parts[1:] {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			slots = append(slots, p)
		}
		if len(slots) == 0 {
			log.Printf("booking: slot group %q has no usable slots, skipping", group)
			continue
		}
		out = append(out, Request{Day: NormalizeDay(parts[0]), Slots: slots})
	}
	return out
}
