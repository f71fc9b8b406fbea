package timeutil

import (
	"testing"
	"time"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in        string
		want      time.Duration
		canonical string
		wantErr   bool
	}{
		{"", 25 * time.Minute, "25m", false},
		{"90s", 90 * time.Second, "1m30s", false},
		{"1h 30m", 90 * time.Minute, "1h30m", false},
		{"2 minutes", 2 * time.Minute, "2m", false},
		{"0m", 0, "", true},
		{"3 fortnights", 0, "", true},
		{"abc", 0, "", true},
	}
	for _, tt := range tests {
		got, canonical, err := ParseWindow(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseWindow(%q) err = %v", tt.in, err)
		}
		if err == nil && (got != tt.want || canonical != tt.canonical) {
			t.Fatalf("ParseWindow(%q) = %v %q", tt.in, got, canonical)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int64]string{
		0:    "00:00",
		5:    "00:05",
		65:   "01:05",
		3600: "1:00:00",
		3725: "1:02:05",
		-4:   "00:00",
	}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
	if got := FormatSeconds(3725); got != "1h2m5s" {
		t.Errorf("FormatSeconds = %q", got)
	}
	if got := FormatSeconds(0); got != "0s" {
		t.Errorf("FormatSeconds(0) = %q", got)
	}
}
