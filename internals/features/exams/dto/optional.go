// file: internals/features/exams/dto/optional.go
package dto

import "github.com/bytedance/sonic"

/* =======================================================
   OPTIONAL + NULLABLE HELPERS (PATCH tri-state)
   ======================================================= */

// Optional marks whether a key was present in the PATCH body.
type Optional[T any] struct {
	Present bool
	Value   T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Present = true
	var v T
	if err := sonic.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = v
	return nil
}

// Nullable distinguishes an explicit null from a value.
type Nullable[T any] struct {
	Valid bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		var zero T
		n.Valid, n.Value = false, zero
		return nil
	}
	n.Valid = true
	return sonic.Unmarshal(b, &n.Value)
}

// Ptr returns nil for null, or a pointer to a copy of Value.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
