// Package storage provides the persistence adapter: durable mirroring for
// the order and master-list collections. Two bindings exist, a Postgres
// document-store table pair and a local JSON snapshot file. Neither owns the
// data; the stores do.
package storage

import (
	"context"

	"ordertrack/internal/model"
)

type Adapter interface {
	LoadOrders(ctx context.Context) ([]model.Order, error)
	// SaveOrders replaces the whole durable order collection.
	SaveOrders(ctx context.Context, orders []model.Order) error
	// SaveOrder upserts a single order by id.
	SaveOrder(ctx context.Context, order model.Order) error
	// DeleteOrder removes one order and returns the remaining collection.
	DeleteOrder(ctx context.Context, id string) ([]model.Order, error)
	// LoadMasters returns the masters document, empty lists when absent.
	LoadMasters(ctx context.Context) (model.Masters, error)
	// SaveMasters replaces the whole masters document.
	SaveMasters(ctx context.Context, masters model.Masters) error
}
