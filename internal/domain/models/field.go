// internal/domain/models/field.go
package models

// Field records whether a value was supplied in a request body.
//
// Present is true when the key appeared in the JSON object at all. Null is
// true when it appeared with a JSON null. Value holds the decoded value when
// Present && !Null.
type Field[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// Set returns a present, non-null Field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: v}
}

// Null returns a Field that was supplied as JSON null.
func Null[T any]() Field[T] {
	return Field[T]{Present: true, Null: true}
}

// HasValue reports whether the field was supplied with a non-null value.
func (f Field[T]) HasValue() bool {
	return f.Present && !f.Null
}

// Ptr returns a pointer to the value, or nil when the field is absent or null.
func (f Field[T]) Ptr() *T {
	if !f.HasValue() {
		return nil
	}
	v := f.Value
	return &v
}

// Interface returns the value for storage: nil for explicit null,
// otherwise Value. Callers check Present first.
func (f Field[T]) Interface() any {
	if f.Null {
		return nil
	}
	return f.Value
}
