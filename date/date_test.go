package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := FromTime(time.Date(2025, 7, 31, 23, 59, 0, 0, time.FixedZone("AEST", 10*3600)))

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2024, time.January, 32), New(2024, time.February, 1); got != want {
		t.Errorf("New(2024, 1, 32) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-07-01", New(2025, 7, 1), false},
		{"2025-7-1", New(2025, 7, 1), false},
		{"01/07/2025", Date{}, true},
		{"", Date{}, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSub(t *testing.T) {
	tests := []struct {
		a, b Date
		want int
	}{
		{New(2024, 1, 1), New(2024, 1, 1), 0},
		{New(2025, 1, 1), New(2024, 1, 1), 366},
		{New(2024, 1, 1), New(2024, 1, 2), -1},
		// crosses a DST change in most zones, must not matter.
		{New(2024, 10, 7), New(2024, 10, 6), 1},
	}
	for _, tt := range tests {
		if got := tt.a.Sub(tt.b); got != tt.want {
			t.Errorf("%v.Sub(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2024, 6, 30), New(2024, 7, 1)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare is not a total order on %v and %v", a, b)
	}
	if !a.Before(b) || !b.After(a) {
		t.Errorf("Before/After inconsistent on %v and %v", a, b)
	}
}

func TestJSON(t *testing.T) {
	d := New(2024, 7, 1)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal(%v) error = %v", d, err)
	}
	if string(data) != `"2024-07-01"` {
		t.Errorf("json.Marshal(%v) = %s, want \"2024-07-01\"", d, data)
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal(%s) error = %v", data, err)
	}
	if got != d {
		t.Errorf("json.Unmarshal(%s) = %v, want %v", data, got, d)
	}
}
