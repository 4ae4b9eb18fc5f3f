package dbus

import "github.com/hkr1990/gobus/fragments"

// Value is the capability every D-Bus type satisfies, realized as a
// Go interface rather than a class hierarchy. Every concrete type in
// this package (Byte, Boolean, ..., Structure, Array, Variant)
// implements Value, and Value itself plays the role of a tagged sum
// over all of them: a variable of type Value can hold any one D-Bus
// value.
type Value interface {
	// Kind identifies the concrete type behind this Value.
	Kind() Kind
	// Signature returns this value's D-Bus type signature. For basic
	// types this is constant; for containers it is computed from the
	// value's actual shape (e.g. a Structure's signature is the
	// concatenation of its fields' signatures).
	Signature() Signature
	// Alignment returns this value's required alignment, in bytes,
	// under the given wire format.
	Alignment(format fragments.EncodingFormat) int
	// encodeInto appends this value's wire encoding (including its
	// own leading alignment padding, computed from basePos, the
	// absolute message position of out[0]) to out and returns the
	// extended slice.
	encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte
}

// Encode returns the wire encoding of v under the given format,
// starting at absolute position 0.
func Encode(v Value, format fragments.EncodingFormat) []byte {
	return v.encodeInto(nil, 0, format)
}

// Is reports whether v holds a value of type T.
func Is[T Value](v Value) bool {
	_, ok := v.(T)
	return ok
}

// As returns v's underlying T, or an IncorrectType error if v does
// not hold a T: a non-consuming tag check and unwrap.
func As[T Value](v Value) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, errKind(IncorrectType, "value holds %s, not %s", v.Kind(), zero.Kind())
	}
	return t, nil
}

// TakeAs is the consuming counterpart of As. Since Go values aren't
// moved out from under their owner, it behaves identically to As; it
// exists so call sites can express intent to transfer ownership of
// the unwrapped value.
func TakeAs[T Value](v Value) (T, error) {
	return As[T](v)
}
