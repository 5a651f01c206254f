package finasist

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2025-03-01", NewDate(2025, time.March, 1)},
		{"2025-3-1", NewDate(2025, time.March, 1)}, // lenient form
		{"2024-12-31", NewDate(2024, time.December, 31)},
	}
	for _, tc := range tests {
		got, err := ParseDate(tc.in)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "01.03.2025", "2025/03/01", "not-a-date"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected an error", bad)
		}
	}
}

func TestDateStringRoundTrip(t *testing.T) {
	d := NewDate(2025, time.March, 1)
	got, err := ParseDate(d.String())
	if err != nil {
		t.Fatalf("ParseDate(String()) error = %v", err)
	}
	if got != d {
		t.Errorf("round trip = %s, want %s", got, d)
	}
}

func TestDateAdd(t *testing.T) {
	d := NewDate(2025, time.February, 28)
	if got := d.Add(1); got != NewDate(2025, time.March, 1) {
		t.Errorf("Add(1) across month = %s, want 2025-03-01", got)
	}
	if got := d.Add(-28); got != NewDate(2025, time.January, 31) {
		t.Errorf("Add(-28) = %s, want 2025-01-31", got)
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2025, time.January, 1)
	b := NewDate(2025, time.January, 2)
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Error("date ordering is broken")
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.March, 1)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2025-03-01"` {
		t.Errorf("Marshal() = %s, want \"2025-03-01\"", data)
	}

	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != d {
		t.Errorf("Unmarshal() = %s, want %s", got, d)
	}
}
