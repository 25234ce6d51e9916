package types

import (
	"bytes"
	"encoding/json"
)

// Nullable is a request field that tells an absent key apart from an
// explicit null. Set is true when the key was present; Valid is false when
// its value was null.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// NewNullable returns a present, non-null field holding v.
func NewNullable[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

// Null returns a present field holding null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		n.Valid, n.Value = false, zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// SQLValue returns the value as a query argument: nil for null.
func (n Nullable[T]) SQLValue() interface{} {
	if !n.Valid {
		return nil
	}
	return n.Value
}

// Ptr returns a pointer to the value, or nil when absent or null.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
