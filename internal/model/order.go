package model

import (
	"sort"
	"time"
)

type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

func (s Status) Valid() bool {
	return s == StatusInProgress || s == StatusCompleted
}

// Order is a single line item: one material/size/quantity row tied to a
// client and a deadline. Invariant: CompletedAt is non-nil exactly when
// Status is COMPLETED.
type Order struct {
	ID          string     `json:"id"`
	OrderNumber string     `json:"orderNumber"`
	ClientName  string     `json:"clientName,omitempty"`
	ProductName string     `json:"productName,omitempty"`
	Material    string     `json:"material,omitempty"`
	Size        string     `json:"size,omitempty"`
	Quantity    Quantity   `json:"quantity"`
	Deadline    Date       `json:"deadline"`
	Status      Status     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	UploadedAt  time.Time  `json:"uploadedAt"`
}

// SortForDisplay orders the slice by the display contract: IN_PROGRESS rows
// before COMPLETED ones, ascending deadline within equal status.
func SortForDisplay(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if a.Status != b.Status {
			return a.Status != StatusCompleted
		}
		return a.Deadline.Before(b.Deadline)
	})
}
