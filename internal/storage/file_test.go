package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"ordertrack/internal/model"
)

func TestFileMissingReadsEmpty(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "absent.json"))
	ctx := context.Background()

	orders, err := f.LoadOrders(ctx)
	if err != nil {
		t.Fatalf("LoadOrders: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("missing file yielded %d orders", len(orders))
	}

	masters, err := f.LoadMasters(ctx)
	if err != nil {
		t.Fatalf("LoadMasters: %v", err)
	}
	if masters.Clients == nil || masters.Products == nil || masters.Materials == nil {
		t.Errorf("missing file must default to empty lists, got %+v", masters)
	}
}

func TestFileOrderRoundTrip(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "snap.json"))
	ctx := context.Background()

	o := model.Order{
		ID:          "100",
		OrderNumber: "PO1",
		ClientName:  "Acme",
		Material:    "steel",
		Quantity:    model.NewQuantity(3),
		Deadline:    model.NewDate(2025, 9, 1),
		Status:      model.StatusInProgress,
	}
	if err := f.SaveOrder(ctx, o); err != nil {
		t.Fatalf("SaveOrder: %v", err)
	}

	// Upsert by id replaces rather than duplicates.
	o.ClientName = "Globex"
	if err := f.SaveOrder(ctx, o); err != nil {
		t.Fatal(err)
	}

	got, err := f.LoadOrders(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("loaded %d orders, want 1", len(got))
	}
	if got[0].ClientName != "Globex" || got[0].Quantity.Value() != 3 {
		t.Errorf("round-tripped order = %+v", got[0])
	}
	if got[0].Deadline.String() != "2025-09-01" {
		t.Errorf("deadline round-tripped as %s", got[0].Deadline)
	}
}

func TestFileDeleteOrderReturnsRemaining(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "snap.json"))
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		o := model.Order{ID: id, OrderNumber: "PO", Deadline: model.NewDate(2025, 9, 1),
			Status: model.StatusInProgress}
		if err := f.SaveOrder(ctx, o); err != nil {
			t.Fatal(err)
		}
	}

	remaining, err := f.DeleteOrder(ctx, "2")
	if err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	ids := []string{}
	for _, o := range remaining {
		ids = append(ids, o.ID)
	}
	if !reflect.DeepEqual(ids, []string{"1", "3"}) {
		t.Errorf("remaining ids = %v, want [1 3]", ids)
	}
}

func TestFileSaveOrdersFullReplace(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "snap.json"))
	ctx := context.Background()

	first := []model.Order{{ID: "1", OrderNumber: "PO", Deadline: model.NewDate(2025, 9, 1),
		Status: model.StatusInProgress}}
	if err := f.SaveOrders(ctx, first); err != nil {
		t.Fatal(err)
	}
	second := []model.Order{{ID: "9", OrderNumber: "PO", Deadline: model.NewDate(2025, 9, 2),
		Status: model.StatusInProgress}}
	if err := f.SaveOrders(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := f.LoadOrders(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "9" {
		t.Errorf("full replace left %+v", got)
	}
}

func TestFileMastersRoundTrip(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "snap.json"))
	ctx := context.Background()

	in := model.Masters{Clients: []string{"Acme", "Globex"}, Materials: []string{"steel"}}
	if err := f.SaveMasters(ctx, in); err != nil {
		t.Fatalf("SaveMasters: %v", err)
	}

	got, err := f.LoadMasters(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Clients, []string{"Acme", "Globex"}) {
		t.Errorf("clients = %v", got.Clients)
	}
	if got.Products == nil {
		t.Error("absent list must load as empty, not nil")
	}

	// Saving masters must not clobber orders living in the same snapshot.
	o := model.Order{ID: "1", OrderNumber: "PO", Deadline: model.NewDate(2025, 9, 1),
		Status: model.StatusInProgress}
	if err := f.SaveOrder(ctx, o); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveMasters(ctx, in); err != nil {
		t.Fatal(err)
	}
	orders, err := f.LoadOrders(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Errorf("masters save dropped orders: %v", orders)
	}
}
