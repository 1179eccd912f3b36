package catalogs

import "encoding/json"

// Optional holds a value that may be absent. An absent Optional is omitted
// from JSON output when the field is tagged omitzero; a present one is
// always written, even when its value is the JSON null literal.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// Value returns the value, or the zero value when absent.
func (o Optional[T]) Value() T {
	return o.value
}

// IsPresent reports whether a value is present.
func (o Optional[T]) IsPresent() bool {
	return o.set
}

// IsZero reports absence; encoding/json consults it for omitzero.
func (o Optional[T]) IsZero() bool {
	return !o.set
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return encodeJSON(o.value)
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the key
// is present in the input, so any call marks the value present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.value = v
	o.set = true
	return nil
}
