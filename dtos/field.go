package dtos

import (
	"bytes"
	"encoding/json"
)

// Field distinguishes a JSON key that was omitted from one sent as null.
// Set is true whenever the key was present; Valid is true when it carried a
// non-null value.
type Field[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Set returns a present, non-null field.
func Set[T any](v T) Field[T] {
	return Field[T]{Set: true, Valid: true, Value: v}
}

// Null returns a field that was explicitly sent as null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Valid = false
		f.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns nil for a null field and a pointer to a copy of the value
// otherwise. Only meaningful when Set is true.
func (f Field[T]) Ptr() *T {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}
