package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"ordertrack/internal/deadline"
	"ordertrack/internal/model"
	"ordertrack/internal/storage"
)

// BatchCommon is the header shared by every row of a batch.
type BatchCommon struct {
	OrderNumber string     `json:"orderNumber"`
	ClientName  string     `json:"clientName"`
	Deadline    model.Date `json:"deadline"`
}

// BatchItem is one material/size/quantity row. A fully blank item is skipped.
type BatchItem struct {
	Material string         `json:"material"`
	Size     string         `json:"size"`
	Quantity model.Quantity `json:"quantity"`
}

func (it BatchItem) blank() bool {
	return it.Material == "" && it.Size == "" && !it.Quantity.IsSet()
}

// MaxBatchItems caps a single batch at the original form's five rows.
const MaxBatchItems = 5

// OrderStore owns the in-memory order collection and mirrors every mutation
// through the persistence adapter. A failed save is logged and reported but
// never rolls the in-memory state back; the divergence lasts until the next
// full reload.
type OrderStore struct {
	mu      sync.Mutex
	adapter storage.Adapter
	orders  []model.Order
	lastID  int64

	now func() time.Time
}

func NewOrderStore(adapter storage.Adapter) *OrderStore {
	return &OrderStore{adapter: adapter, now: time.Now}
}

// Load replaces the in-memory collection with the durable one.
func (s *OrderStore) Load(ctx context.Context) error {
	orders, err := s.adapter.LoadOrders(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

// ListActive returns all non-expired orders. As a side effect it permanently
// removes every COMPLETED order whose completedAt is more than one calendar
// month old, from memory and from the durable store. Every call may mutate
// state; there is no separate sweep job.
func (s *OrderStore) ListActive(ctx context.Context) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().AddDate(0, -1, 0)

	var active []model.Order
	var expired []string
	for _, o := range s.orders {
		if o.Status == model.StatusCompleted && o.CompletedAt != nil && o.CompletedAt.Before(cutoff) {
			expired = append(expired, o.ID)
			continue
		}
		active = append(active, o)
	}

	if len(expired) > 0 {
		s.orders = active
		for _, id := range expired {
			if _, err := s.adapter.DeleteOrder(ctx, id); err != nil {
				slog.Error("expiry sweep: delete failed", "id", id, "error", err)
			}
		}
		slog.Info("expired completed orders removed", "count", len(expired))
	}

	out := make([]model.Order, len(active))
	copy(out, active)
	return out
}

// AddBatch creates one order per non-blank item, all sharing the common
// header. OrderNumber and Deadline are required and at least one item must
// carry a value. IDs are distinct even within a single call.
func (s *OrderStore) AddBatch(ctx context.Context, common BatchCommon, items []BatchItem) ([]model.Order, error) {
	if common.OrderNumber == "" {
		return nil, validationf("orderNumber is required")
	}
	if common.Deadline.IsZero() {
		return nil, validationf("deadline is required")
	}
	if len(items) > MaxBatchItems {
		return nil, validationf("a batch holds at most %d items, got %d", MaxBatchItems, len(items))
	}

	var valid []BatchItem
	for _, it := range items {
		if !it.blank() {
			valid = append(valid, it)
		}
	}
	if len(valid) == 0 {
		return nil, validationf("at least one item must have a material, size or quantity")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uploadedAt := s.now()
	created := make([]model.Order, 0, len(valid))
	for _, it := range valid {
		created = append(created, model.Order{
			ID:          s.nextID(),
			OrderNumber: common.OrderNumber,
			ClientName:  common.ClientName,
			Material:    it.Material,
			Size:        it.Size,
			Quantity:    it.Quantity,
			Deadline:    common.Deadline,
			Status:      model.StatusInProgress,
			UploadedAt:  uploadedAt,
		})
	}
	s.orders = append(s.orders, created...)

	for _, o := range created {
		if err := s.adapter.SaveOrder(ctx, o); err != nil {
			slog.Error("save order failed", "id", o.ID, "error", err)
			return created, fmt.Errorf("save order %s: %w", o.ID, err)
		}
	}
	return created, nil
}

// UpdateStatus transitions one order. Moving to COMPLETED stamps
// completedAt with the current time; moving back clears it.
func (s *OrderStore) UpdateStatus(ctx context.Context, id string, status model.Status) (model.Order, error) {
	if !status.Valid() {
		return model.Order{}, validationf("unknown status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		s.orders[i].Status = status
		if status == model.StatusCompleted {
			now := s.now()
			s.orders[i].CompletedAt = &now
		} else {
			s.orders[i].CompletedAt = nil
		}
		o := s.orders[i]
		if err := s.adapter.SaveOrder(ctx, o); err != nil {
			slog.Error("save order failed", "id", o.ID, "error", err)
			return o, fmt.Errorf("save order %s: %w", o.ID, err)
		}
		return o, nil
	}
	return model.Order{}, ErrNotFound
}

// Update replaces an order by id, inserting it when absent. The
// completedAt/status invariant is enforced on the way in.
func (s *OrderStore) Update(ctx context.Context, order model.Order) (model.Order, error) {
	if order.ID == "" {
		return model.Order{}, validationf("order id is required")
	}
	if order.OrderNumber == "" {
		return model.Order{}, validationf("orderNumber is required")
	}
	if order.Deadline.IsZero() {
		return model.Order{}, validationf("deadline is required")
	}
	if !order.Status.Valid() {
		return model.Order{}, validationf("unknown status %q", order.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if order.Status == model.StatusCompleted {
		if order.CompletedAt == nil {
			now := s.now()
			order.CompletedAt = &now
		}
	} else {
		order.CompletedAt = nil
	}
	if order.UploadedAt.IsZero() {
		order.UploadedAt = s.now()
	}

	replaced := false
	for i := range s.orders {
		if s.orders[i].ID == order.ID {
			s.orders[i] = order
			replaced = true
			break
		}
	}
	if !replaced {
		s.orders = append(s.orders, order)
	}

	if err := s.adapter.SaveOrder(ctx, order); err != nil {
		slog.Error("save order failed", "id", order.ID, "error", err)
		return order, fmt.Errorf("save order %s: %w", order.ID, err)
	}
	return order, nil
}

// Delete removes one order. An unknown id is ErrNotFound, not a silent
// no-op.
func (s *OrderStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	remaining := s.orders[:0:0]
	for _, o := range s.orders {
		if o.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, o)
	}
	if !found {
		return ErrNotFound
	}
	s.orders = remaining

	if _, err := s.adapter.DeleteOrder(ctx, id); err != nil {
		slog.Error("delete order failed", "id", id, "error", err)
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

// AtRiskCount counts orders that are not completed and due within a week.
// Read-only: unlike ListActive it never sweeps.
func (s *OrderStore) AtRiskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for _, o := range s.orders {
		if deadline.AtRisk(o.Status, deadline.DaysUntil(o.Deadline, now)) {
			n++
		}
	}
	return n
}

// nextID derives ids from the wall clock in milliseconds, bumping past the
// previous id so members of one batch never collide. Caller holds s.mu.
func (s *OrderStore) nextID() string {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}
