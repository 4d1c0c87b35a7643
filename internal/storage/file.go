package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"ordertrack/internal/model"
)

// File is the local binding: one JSON document on disk holding the orders
// and masters keys, rewritten atomically after each call. A missing file
// reads as empty collections.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

type snapshot struct {
	Orders  []model.Order `json:"orders"`
	Masters model.Masters `json:"masters"`
}

func (f *File) load() (snapshot, error) {
	var snap snapshot
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			snap.Masters.EnsureLists()
			return snap, nil
		}
		return snap, fmt.Errorf("read %s: %w", f.path, err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("decode %s: %w", f.path, err)
	}
	snap.Masters.EnsureLists()
	return snap, nil
}

func (f *File) save(snap snapshot) error {
	if snap.Orders == nil {
		snap.Orders = []model.Order{}
	}
	snap.Masters.EnsureLists()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

func (f *File) LoadOrders(ctx context.Context) ([]model.Order, error) {
	snap, err := f.load()
	if err != nil {
		return nil, err
	}
	return snap.Orders, nil
}

func (f *File) SaveOrders(ctx context.Context, orders []model.Order) error {
	snap, err := f.load()
	if err != nil {
		return err
	}
	snap.Orders = orders
	return f.save(snap)
}

func (f *File) SaveOrder(ctx context.Context, order model.Order) error {
	snap, err := f.load()
	if err != nil {
		return err
	}
	replaced := false
	for i, o := range snap.Orders {
		if o.ID == order.ID {
			snap.Orders[i] = order
			replaced = true
			break
		}
	}
	if !replaced {
		snap.Orders = append(snap.Orders, order)
	}
	return f.save(snap)
}

func (f *File) DeleteOrder(ctx context.Context, id string) ([]model.Order, error) {
	snap, err := f.load()
	if err != nil {
		return nil, err
	}
	remaining := snap.Orders[:0:0]
	for _, o := range snap.Orders {
		if o.ID != id {
			remaining = append(remaining, o)
		}
	}
	snap.Orders = remaining
	if err := f.save(snap); err != nil {
		return nil, err
	}
	return remaining, nil
}

func (f *File) LoadMasters(ctx context.Context) (model.Masters, error) {
	snap, err := f.load()
	if err != nil {
		return model.Masters{}, err
	}
	return snap.Masters, nil
}

func (f *File) SaveMasters(ctx context.Context, masters model.Masters) error {
	snap, err := f.load()
	if err != nil {
		return err
	}
	snap.Masters = masters
	return f.save(snap)
}
