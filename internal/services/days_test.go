package services_test

import (
	"testing"
	"time"

	svc "github.com/lojf/regform/internal/services"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct{ y, m, want int }{
		{2024, 2, 29},
		{2023, 2, 28},
		{2023, 4, 30},
		{2023, 1, 31},
		{2023, 12, 31},
		{1900, 2, 28},
		{2000, 2, 29},
		{2023, 0, 0},
		{2023, 13, 0},
	}
	for _, tc := range cases {
		if got := svc.DaysInMonth(tc.y, tc.m); got != tc.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tc.y, tc.m, got, tc.want)
		}
	}
}

func TestDayOptions(t *testing.T) {
	if got := svc.DayOptions(nil, ip(2)); len(got) != 0 {
		t.Errorf("unset year: want empty, got %v", got)
	}
	if got := svc.DayOptions(ip(2024), nil); len(got) != 0 {
		t.Errorf("unset month: want empty, got %v", got)
	}
	got := svc.DayOptions(ip(2024), ip(2))
	if len(got) != 29 || got[0] != 1 || got[28] != 29 {
		t.Errorf("2024-02: got %v", got)
	}
}

func TestYearOptions(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got := svc.YearOptions(1960, now)
	if len(got) != 66 || got[0] != 1960 || got[len(got)-1] != 2025 {
		t.Errorf("unexpected years: first=%d last=%d len=%d", got[0], got[len(got)-1], len(got))
	}
}
