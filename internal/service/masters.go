package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"ordertrack/internal/model"
	"ordertrack/internal/storage"
)

// MasterStore owns the three suggestion lists (clients, products,
// materials). Entries stay unique and in user-controlled order; every
// mutation mirrors the full document through the adapter.
type MasterStore struct {
	mu      sync.Mutex
	adapter storage.Adapter
	masters model.Masters
}

func NewMasterStore(adapter storage.Adapter) *MasterStore {
	return &MasterStore{adapter: adapter}
}

func (s *MasterStore) Load(ctx context.Context) error {
	masters, err := s.adapter.LoadMasters(ctx)
	if err != nil {
		return fmt.Errorf("load masters: %w", err)
	}
	s.mu.Lock()
	s.masters = masters
	s.mu.Unlock()
	return nil
}

// All returns a copy of the current document.
func (s *MasterStore) All() model.Masters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Replace swaps in a whole new document (the full-replace API contract).
func (s *MasterStore) Replace(ctx context.Context, masters model.Masters) error {
	masters.EnsureLists()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.masters = masters
	return s.persistLocked(ctx)
}

// Add appends a trimmed value to the named list. An empty value or a
// duplicate is a validation error and leaves the list unchanged.
func (s *MasterStore) Add(ctx context.Context, listName, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return validationf("value must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.masters.List(listName)
	if !ok {
		return validationf("unknown master list %q", listName)
	}
	for _, v := range *list {
		if v == value {
			return validationf("%q is already registered", value)
		}
	}
	*list = append(*list, value)
	return s.persistLocked(ctx)
}

// Move swaps the entry at index with its neighbor. At a boundary, or with an
// index outside the list, it does nothing and reports no error.
func (s *MasterStore) Move(ctx context.Context, listName string, index int, up bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.masters.List(listName)
	if !ok {
		return validationf("unknown master list %q", listName)
	}

	j := index + 1
	if up {
		j = index - 1
	}
	if index < 0 || index >= len(*list) || j < 0 || j >= len(*list) {
		return nil
	}
	(*list)[index], (*list)[j] = (*list)[j], (*list)[index]
	return s.persistLocked(ctx)
}

// Remove drops the matching entry. A value that is not present is a no-op.
func (s *MasterStore) Remove(ctx context.Context, listName, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.masters.List(listName)
	if !ok {
		return validationf("unknown master list %q", listName)
	}

	kept := (*list)[:0:0]
	removed := false
	for _, v := range *list {
		if v == value && !removed {
			removed = true
			continue
		}
		kept = append(kept, v)
	}
	if !removed {
		return nil
	}
	*list = kept
	return s.persistLocked(ctx)
}

func (s *MasterStore) copyLocked() model.Masters {
	out := model.Masters{
		Clients:   append([]string{}, s.masters.Clients...),
		Products:  append([]string{}, s.masters.Products...),
		Materials: append([]string{}, s.masters.Materials...),
	}
	return out
}

func (s *MasterStore) persistLocked(ctx context.Context) error {
	if err := s.adapter.SaveMasters(ctx, s.copyLocked()); err != nil {
		slog.Error("save masters failed", "error", err)
		return fmt.Errorf("save masters: %w", err)
	}
	return nil
}
