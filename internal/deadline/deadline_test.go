package deadline

import (
	"testing"
	"time"

	"ordertrack/internal/model"
)

// TestDaysUntil pins the whole-day arithmetic: both sides are normalized to
// midnight, so the time of day never shifts the count.
func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 12, 0, time.UTC)

	cases := []struct {
		deadline model.Date
		want     int
	}{
		{model.NewDate(2025, 6, 15), 0},
		{model.NewDate(2025, 6, 16), 1},
		{model.NewDate(2025, 6, 14), -1},
		{model.NewDate(2025, 6, 22), 7},
		{model.NewDate(2025, 7, 15), 30},
		{model.NewDate(2025, 5, 15), -31},
	}
	for _, c := range cases {
		if got := DaysUntil(c.deadline, now); got != c.want {
			t.Errorf("DaysUntil(%s) = %d, want %d", c.deadline, got, c.want)
		}
	}

	// Late in the evening the count must be identical.
	evening := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	if got := DaysUntil(model.NewDate(2025, 6, 16), evening); got != 1 {
		t.Errorf("DaysUntil at 23:59 = %d, want 1", got)
	}
}

// TestTierBoundaries checks the exact tier edges: 0 and 3 are URGENT, 4 and
// 7 are WARNING, 8 is NORMAL, anything negative is OVERDUE.
func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		days int
		want Tier
	}{
		{-100, TierOverdue},
		{-1, TierOverdue},
		{0, TierUrgent},
		{3, TierUrgent},
		{4, TierWarning},
		{7, TierWarning},
		{8, TierNormal},
		{365, TierNormal},
	}
	for _, c := range cases {
		if got := TierFor(c.days); got != c.want {
			t.Errorf("TierFor(%d) = %s, want %s", c.days, got, c.want)
		}
	}
}

func TestAtRisk(t *testing.T) {
	if !AtRisk(model.StatusInProgress, 7) {
		t.Error("in-progress order due in 7 days should be at risk")
	}
	if !AtRisk(model.StatusInProgress, -3) {
		t.Error("overdue in-progress order should be at risk")
	}
	if AtRisk(model.StatusInProgress, 8) {
		t.Error("order due in 8 days should not be at risk")
	}
	if AtRisk(model.StatusCompleted, 0) {
		t.Error("completed order should never be at risk")
	}
}
