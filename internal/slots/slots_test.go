package slots

import (
	"testing"
	"time"
)

func TestTimes(t *testing.T) {
	got := Times()

	if len(got) != 18 {
		t.Fatalf("expected 18 slots, got %d", len(got))
	}
	if got[0] != "09:00" {
		t.Errorf("first slot: got %s", got[0])
	}
	if got[len(got)-1] != "17:30" {
		t.Errorf("last slot: got %s", got[len(got)-1])
	}

	// every slot on the half-hour grid
	for i := 1; i < len(got); i++ {
		prev, _ := time.Parse("15:04", got[i-1])
		cur, _ := time.Parse("15:04", got[i])
		if cur.Sub(prev) != 30*time.Minute {
			t.Errorf("step %s -> %s is not 30 minutes", got[i-1], got[i])
		}
	}
}

func TestValidTime(t *testing.T) {
	tests := []struct {
		slot string
		want bool
	}{
		{"09:00", true},
		{"17:30", true},
		{"12:30", true},
		{"18:00", false},
		{"08:30", false},
		{"09:15", false},
		{"", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		if got := ValidTime(tt.slot); got != tt.want {
			t.Errorf("ValidTime(%q) = %v, want %v", tt.slot, got, tt.want)
		}
	}
}

func TestMinDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.Local)
	if got := MinDate(now); got != "2026-09-02" {
		t.Errorf("MinDate = %s, want 2026-09-02", got)
	}

	// month rollover
	now = time.Date(2026, 9, 30, 23, 0, 0, 0, time.Local)
	if got := MinDate(now); got != "2026-10-01" {
		t.Errorf("MinDate = %s, want 2026-10-01", got)
	}
}

func TestValidDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		date string
		want bool
	}{
		{"2026-09-02", true},  // tomorrow
		{"2026-12-25", true},  // far future
		{"2026-09-01", false}, // same day is refused
		{"2026-08-31", false}, // past
		{"not-a-date", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidDate(tt.date, now); got != tt.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestCombine(t *testing.T) {
	if got := Combine("2026-09-02", "09:30"); got != "2026-09-02 09:30" {
		t.Errorf("Combine = %q", got)
	}
}
