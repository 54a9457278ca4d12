// Package nullable distinguishes a JSON field that was omitted from one that was sent as null.
package nullable

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var null = []byte("null")

// Nullable holds a partial update value. Set reports whether the key was present in the payload and
// Valid whether it carried a non-null value.
type Nullable[T any] struct {
	Value T
	Valid bool
	Set   bool
}

// From returns a present, non-null value.
func From[T any](value T) Nullable[T] {
	return Nullable[T]{Value: value, Valid: true, Set: true}
}

// Null returns a present value that clears the field.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// IsNull reports whether the payload explicitly asked to clear the field.
func (n Nullable[T]) IsNull() bool {
	return n.Set && !n.Valid
}

// Ptr returns nil for an absent or null value.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}

	value := n.Value

	return &value
}

// UnmarshalJSON is only called when the key is present.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true

	if bytes.Equal(bytes.TrimSpace(data), null) {
		var zero T

		n.Value = zero
		n.Valid = false

		return nil
	}

	if err := json.Unmarshal(data, &n.Value); err != nil {
		return fmt.Errorf("failed to decode nullable value: %w", err)
	}

	n.Valid = true

	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return null, nil
	}

	return json.Marshal(n.Value) //nolint:wrapcheck
}
