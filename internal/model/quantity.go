package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Quantity is an optional non-negative count. The original data kept it as a
// free-form string, so decoding accepts a JSON number, a numeric string, an
// empty string, or null. It always re-encodes as a number (or null).
type Quantity struct {
	value int
	set   bool
}

func NewQuantity(v int) Quantity { return Quantity{value: v, set: true} }

func (q Quantity) IsSet() bool { return q.set }

func (q Quantity) Value() int { return q.value }

func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(q.value)), nil
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "null" || s == "" {
		*q = Quantity{}
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	if v < 0 {
		return fmt.Errorf("quantity must not be negative, got %d", v)
	}
	*q = Quantity{value: v, set: true}
	return nil
}
