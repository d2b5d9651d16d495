package booking

import (
	"reflect"
	"testing"
	"time"
)

func TestParseSlotSpec(t *testing.T) {
	t.Parallel()

	got := ParseSlotSpec("Sun_8am_8:30am,Tue_5pm")
	want := []Request{
		{Day: "Sun", Slots: []string{"8am", "8:30am"}},
		{Day: "Tue", Slots: []string{"5pm"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseSlotSpec: got %+v, want %+v", got, want)
	}
}

func TestParseSlotSpecTrimsAndNormalizes(t *testing.T) {
	t.Parallel()

	got := ParseSlotSpec(" saturday_ 9am _9:30am , ")
	want := []Request{{Day: "Sat", Slots: []string{"9am", "9:30am"}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseSlotSpec: got %+v, want %+v", got, want)
	}
}

func TestParseSlotSpecEmpty(t *testing.T) {
	t.Parallel()

	if got := ParseSlotSpec(""); got != nil {
		t.Fatalf("ParseSlotSpec(\"\") = %+v, want nil", got)
	}
	if got := ParseSlotSpec("   "); got != nil {
		t.Fatalf("ParseSlotSpec(blank) = %+v, want nil", got)
	}
}

func TestParseSlotSpecDropsMalformedGroup(t *testing.T) {
	t.Parallel()

	// A day with no slots is skipped, the remaining groups still parse.
	got := ParseSlotSpec("Bad,Sun_8am")
	want := []Request{{Day: "Sun", Slots: []string{"8am"}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseSlotSpec: got %+v, want %+v", got, want)
	}

	if got := ParseSlotSpec("Bad"); got != nil {
		t.Fatalf("ParseSlotSpec(\"Bad\") = %+v, want nil", got)
	}
}

func TestParseSlotSpecKeepsDuplicates(t *testing.T) {
	t.Parallel()

	got := ParseSlotSpec("Sat_9am_9am")
	want := []Request{{Day: "Sat", Slots: []string{"9am", "9am"}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseSlotSpec: got %+v, want %+v", got, want)
	}
}

func TestNormalizeDay(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Sat":      "Sat",
		"saturday": "Sat",
		"SUN":      "Sun",
		"tuesday":  "Tue",
		"Xyz":      "Xyz",
		" Fri ":    "Fri",
	}
	for in, want := range cases {
		if got := NormalizeDay(in); got != want {
			t.Errorf("NormalizeDay(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNextDateForDay(t *testing.T) {
	t.Parallel()

	sat := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC) // a Saturday
	sun := sat.AddDate(0, 0, 1)

	if got := NextDateForDay("Sat", sat); !got.Equal(sat) {
		t.Fatalf("NextDateForDay(Sat, sat) = %v, want %v", got, sat)
	}
	if got, want := NextDateForDay("Sat", sun), sun.AddDate(0, 0, 6); !got.Equal(want) {
		t.Fatalf("NextDateForDay(Sat, sun) = %v, want %v", got, want)
	}
	if got := NextDateForDay("Xyz", sun); !got.Equal(sun) {
		t.Fatalf("NextDateForDay(Xyz, sun) = %v, want %v", got, sun)
	}
}
