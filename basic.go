package dbus

import (
	"math"

	"github.com/hkr1990/gobus/fragments"
)

// Byte is the D-Bus `y` type.
type Byte uint8

func (Byte) Kind() Kind                                      { return KindByte }
func (Byte) Signature() Signature                             { return "y" }
func (Byte) Alignment(fragments.EncodingFormat) int           { return 1 }
func (v Byte) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	return append(out, byte(v))
}

// Boolean is the D-Bus `b` type. It is wire-encoded as a 4-byte
// integer (0 or 1) in DBus format, and as a single byte in GVariant
// format.
type Boolean bool

func (Boolean) Kind() Kind      { return KindBoolean }
func (Boolean) Signature() Signature { return "b" }

func (Boolean) Alignment(format fragments.EncodingFormat) int {
	if format == fragments.GVariant {
		return 1
	}
	return 4
}

func (v Boolean) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	var u uint32
	if v {
		u = 1
	}
	if format == fragments.GVariant {
		return append(out, byte(u))
	}
	out = fragments.AppendPadding(out, basePos, 4)
	return fragments.LittleEndian.AppendUint32(out, u)
}

// Int16 is the D-Bus `n` type.
type Int16 int16

func (Int16) Kind() Kind                            { return KindInt16 }
func (Int16) Signature() Signature                  { return "n" }
func (Int16) Alignment(fragments.EncodingFormat) int { return 2 }
func (v Int16) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	out = fragments.AppendPadding(out, basePos, 2)
	return fragments.LittleEndian.AppendUint16(out, uint16(v))
}

// Uint16 is the D-Bus `q` type.
type Uint16 uint16

func (Uint16) Kind() Kind                            { return KindUint16 }
func (Uint16) Signature() Signature                  { return "q" }
func (Uint16) Alignment(fragments.EncodingFormat) int { return 2 }
func (v Uint16) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	out = fragments.AppendPadding(out, basePos, 2)
	return fragments.LittleEndian.AppendUint16(out, uint16(v))
}

// Int32 is the D-Bus `i` type.
type Int32 int32

func (Int32) Kind() Kind                            { return KindInt32 }
func (Int32) Signature() Signature                  { return "i" }
func (Int32) Alignment(fragments.EncodingFormat) int { return 4 }
func (v Int32) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	out = fragments.AppendPadding(out, basePos, 4)
	return fragments.LittleEndian.AppendUint32(out, uint32(v))
}

// Uint32 is the D-Bus `u` type.
type Uint32 uint32

func (Uint32) Kind() Kind                            { return KindUint32 }
func (Uint32) Signature() Signature                  { return "u" }
func (Uint32) Alignment(fragments.EncodingFormat) int { return 4 }
func (v Uint32) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	out = fragments.AppendPadding(out, basePos, 4)
	return fragments.LittleEndian.AppendUint32(out, uint32(v))
}

// Int64 is the D-Bus `x` type.
type Int64 int64

func (Int64) Kind() Kind                            { return KindInt64 }
func (Int64) Signature() Signature                  { return "x" }
func (Int64) Alignment(fragments.EncodingFormat) int { return 8 }
func (v Int64) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	out = fragments.AppendPadding(out, basePos, 8)
	return fragments.LittleEndian.AppendUint64(out, uint64(v))
}

// Uint64 is the D-Bus `t` type.
type Uint64 uint64

func (Uint64) Kind() Kind                            { return KindUint64 }
func (Uint64) Signature() Signature                  { return "t" }
func (Uint64) Alignment(fragments.EncodingFormat) int { return 8 }
func (v Uint64) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	out = fragments.AppendPadding(out, basePos, 8)
	return fragments.LittleEndian.AppendUint64(out, uint64(v))
}

// Double is the D-Bus `d` type: an IEEE-754 binary64, little-endian on
// the wire.
type Double float64

func (Double) Kind() Kind                            { return KindDouble }
func (Double) Signature() Signature                  { return "d" }
func (Double) Alignment(fragments.EncodingFormat) int { return 8 }
func (v Double) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	out = fragments.AppendPadding(out, basePos, 8)
	return fragments.LittleEndian.AppendUint64(out, math.Float64bits(float64(v)))
}

// UnixFD is the D-Bus `h` type: an index into a message's accompanying
// file-descriptor array. Resolving the index to an actual descriptor
// is the connection layer's job, outside this codec's scope.
type UnixFD uint32

func (UnixFD) Kind() Kind                            { return KindUnixFD }
func (UnixFD) Signature() Signature                  { return "h" }
func (UnixFD) Alignment(fragments.EncodingFormat) int { return 4 }
func (v UnixFD) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	out = fragments.AppendPadding(out, basePos, 4)
	return fragments.LittleEndian.AppendUint32(out, uint32(v))
}

// fixedWidthSlice returns the window covering exactly one fixed-width
// value's padding plus payload, starting at the front of data.
func fixedWidthSlice(data fragments.SharedData, align, size int) (fragments.SharedData, error) {
	pad := fragments.Padding(data.Position(), align)
	total := pad + size
	if data.Len() < total {
		return fragments.SharedData{}, errKind(InsufficientData, "need %d bytes (padding+payload), have %d", total, data.Len())
	}
	return data.Head(total), nil
}

func decodeByte(data fragments.SharedData) (Value, int, error) {
	if data.Len() < 1 {
		return nil, 0, errKind(InsufficientData, "byte: need 1 byte, have %d", data.Len())
	}
	return Byte(data.Bytes()[0]), 1, nil
}

func decodeBoolean(data fragments.SharedData, format fragments.EncodingFormat) (Value, int, error) {
	if format == fragments.GVariant {
		if data.Len() < 1 {
			return nil, 0, errKind(InsufficientData, "boolean: need 1 byte, have %d", data.Len())
		}
		return Boolean(data.Bytes()[0] != 0), 1, nil
	}
	w, err := fixedWidthSlice(data, 4, 4)
	if err != nil {
		return nil, 0, err
	}
	pad := w.Len() - 4
	u := fragments.LittleEndian.Uint32(w.Bytes()[pad:])
	if u > 1 {
		return nil, 0, errKind(IncorrectType, "boolean value %d is neither 0 nor 1", u)
	}
	return Boolean(u == 1), w.Len(), nil
}

func decodeInt16(data fragments.SharedData) (Value, int, error) {
	w, err := fixedWidthSlice(data, 2, 2)
	if err != nil {
		return nil, 0, err
	}
	pad := w.Len() - 2
	return Int16(int16(fragments.LittleEndian.Uint16(w.Bytes()[pad:]))), w.Len(), nil
}

func decodeUint16(data fragments.SharedData) (Value, int, error) {
	w, err := fixedWidthSlice(data, 2, 2)
	if err != nil {
		return nil, 0, err
	}
	pad := w.Len() - 2
	return Uint16(fragments.LittleEndian.Uint16(w.Bytes()[pad:])), w.Len(), nil
}

func decodeInt32(data fragments.SharedData) (Value, int, error) {
	w, err := fixedWidthSlice(data, 4, 4)
	if err != nil {
		return nil, 0, err
	}
	pad := w.Len() - 4
	return Int32(int32(fragments.LittleEndian.Uint32(w.Bytes()[pad:]))), w.Len(), nil
}

func decodeUint32(data fragments.SharedData) (Value, int, error) {
	w, err := fixedWidthSlice(data, 4, 4)
	if err != nil {
		return nil, 0, err
	}
	pad := w.Len() - 4
	return Uint32(fragments.LittleEndian.Uint32(w.Bytes()[pad:])), w.Len(), nil
}

func decodeInt64(data fragments.SharedData) (Value, int, error) {
	w, err := fixedWidthSlice(data, 8, 8)
	if err != nil {
		return nil, 0, err
	}
	pad := w.Len() - 8
	return Int64(int64(fragments.LittleEndian.Uint64(w.Bytes()[pad:]))), w.Len(), nil
}

func decodeUint64(data fragments.SharedData) (Value, int, error) {
	w, err := fixedWidthSlice(data, 8, 8)
	if err != nil {
		return nil, 0, err
	}
	pad := w.Len() - 8
	return Uint64(fragments.LittleEndian.Uint64(w.Bytes()[pad:])), w.Len(), nil
}

func decodeDouble(data fragments.SharedData) (Value, int, error) {
	w, err := fixedWidthSlice(data, 8, 8)
	if err != nil {
		return nil, 0, err
	}
	pad := w.Len() - 8
	bits := fragments.LittleEndian.Uint64(w.Bytes()[pad:])
	return Double(math.Float64frombits(bits)), w.Len(), nil
}

func decodeUnixFD(data fragments.SharedData) (Value, int, error) {
	w, err := fixedWidthSlice(data, 4, 4)
	if err != nil {
		return nil, 0, err
	}
	pad := w.Len() - 4
	return UnixFD(fragments.LittleEndian.Uint32(w.Bytes()[pad:])), w.Len(), nil
}
