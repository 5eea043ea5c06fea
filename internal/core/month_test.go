package core

import (
	"testing"
	"time"
)

func TestMonthDays(t *testing.T) {
	cases := []struct {
		month Month
		days  int
	}{
		{Month{2025, time.January}, 31},
		{Month{2025, time.February}, 28},
		{Month{2024, time.February}, 29}, // leap year
		{Month{2025, time.April}, 30},
		{Month{2025, time.December}, 31},
	}
	for _, tc := range cases {
		if got := tc.month.Days(); got != tc.days {
			t.Fatalf("%s: expected %d days, got %d", tc.month, tc.days, got)
		}
	}
}

func TestMonthWindow(t *testing.T) {
	m := Month{2025, time.February}
	if got := m.Start(); got.Day() != 1 || got.Month() != time.February {
		t.Fatalf("start: %v", got)
	}
	if got := m.End(); got.Day() != 28 {
		t.Fatalf("end: %v", got)
	}
}

func TestMonthContains(t *testing.T) {
	m := Month{2025, time.March}
	cases := []struct {
		d    Date
		want bool
	}{
		{NewDate(2025, time.March, 1), true},
		{NewDate(2025, time.March, 31), true},
		{NewDate(2025, time.February, 28), false},
		{NewDate(2025, time.April, 1), false},
		{NewDate(2024, time.March, 15), false}, // same month, other year
		{Date{}, false},
	}
	for i, tc := range cases {
		if got := m.Contains(tc.d); got != tc.want {
			t.Fatalf("case %d (%v): expected %v", i, tc.d, tc.want)
		}
	}
}

func TestMonthAddMonths(t *testing.T) {
	m := Month{2025, time.January}
	if got := m.AddMonths(-1); got.Year != 2024 || got.Month != time.December {
		t.Fatalf("back across year boundary: %v", got)
	}
	if got := m.AddMonths(13); got.Year != 2026 || got.Month != time.February {
		t.Fatalf("forward: %v", got)
	}
	if got := m.AddMonths(0); got != m {
		t.Fatalf("identity: %v", got)
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Year != 2025 || m.Month != time.July {
		t.Fatalf("got %v", m)
	}
	if _, err := ParseMonth("July 2025"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.March || d.Day() != 10 {
		t.Fatalf("got %v", d)
	}

	// RFC 3339 timestamps are truncated to their day.
	d, err = ParseDate("2025-03-10T15:04:05Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Day() != 10 || d.Hour() != 0 {
		t.Fatalf("got %v", d)
	}

	if _, err := ParseDate("10/03/2025"); err == nil {
		t.Fatalf("expected error")
	}
}
