package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ordertrack/internal/model"
)

// Postgres stores each order as a JSON blob in a single-row-per-order table
// and the masters document in a fixed row keyed 'all'. A document store over
// a relational table, kept from the original schema.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const mastersKey = "all"

func (p *Postgres) LoadOrders(ctx context.Context) ([]model.Order, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT data FROM orders`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		var o model.Order
		if err := json.Unmarshal([]byte(data), &o); err != nil {
			return nil, fmt.Errorf("decode order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return orders, nil
}

func (p *Postgres) SaveOrders(ctx context.Context, orders []model.Order) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM orders`); err != nil {
		return fmt.Errorf("clear orders: %w", err)
	}
	for _, o := range orders {
		data, err := json.Marshal(o)
		if err != nil {
			return fmt.Errorf("encode order %s: %w", o.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO orders (id, data) VALUES ($1, $2)`, o.ID, string(data)); err != nil {
			return fmt.Errorf("insert order %s: %w", o.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (p *Postgres) SaveOrder(ctx context.Context, order model.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", order.ID, err)
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO orders (id, data) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		order.ID, string(data))
	if err != nil {
		return fmt.Errorf("upsert order %s: %w", order.ID, err)
	}
	return nil
}

func (p *Postgres) DeleteOrder(ctx context.Context, id string) ([]model.Order, error) {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete order %s: %w", id, err)
	}
	return p.LoadOrders(ctx)
}

func (p *Postgres) LoadMasters(ctx context.Context) (model.Masters, error) {
	var masters model.Masters
	var data string
	err := p.db.QueryRowContext(ctx,
		`SELECT data FROM masters WHERE id = $1`, mastersKey).Scan(&data)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		masters.EnsureLists()
		return masters, nil
	case err != nil:
		return masters, fmt.Errorf("query masters: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &masters); err != nil {
		return masters, fmt.Errorf("decode masters row: %w", err)
	}
	masters.EnsureLists()
	return masters, nil
}

func (p *Postgres) SaveMasters(ctx context.Context, masters model.Masters) error {
	data, err := json.Marshal(masters)
	if err != nil {
		return fmt.Errorf("encode masters: %w", err)
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO masters (id, data) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		mastersKey, string(data))
	if err != nil {
		return fmt.Errorf("upsert masters: %w", err)
	}
	return nil
}
