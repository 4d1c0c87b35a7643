// Package deadline classifies how much time an order has left before its
// deadline.
package deadline

import (
	"math"
	"time"

	"ordertrack/internal/model"
)

type Tier string

const (
	TierOverdue Tier = "OVERDUE"
	TierUrgent  Tier = "URGENT"
	TierWarning Tier = "WARNING"
	TierNormal  Tier = "NORMAL"
)

// DaysUntil returns the number of whole calendar days between now and the
// deadline, both normalized to midnight. Negative means the deadline has
// passed.
func DaysUntil(d model.Date, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	diff := d.Time(now.Location()).Sub(today)
	return int(math.Ceil(diff.Hours() / 24))
}

// TierFor maps remaining days to an urgency tier: <0 OVERDUE, 0..3 URGENT,
// 4..7 WARNING, >7 NORMAL.
func TierFor(daysUntil int) Tier {
	switch {
	case daysUntil < 0:
		return TierOverdue
	case daysUntil <= 3:
		return TierUrgent
	case daysUntil <= 7:
		return TierWarning
	default:
		return TierNormal
	}
}

// AtRisk reports whether an order counts toward the deadline alert badge:
// not yet completed and due within a week (or overdue).
func AtRisk(status model.Status, daysUntil int) bool {
	return status != model.StatusCompleted && daysUntil <= 7
}
