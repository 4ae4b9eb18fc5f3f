package fragments

// EncodingFormat selects which D-Bus-family wire format an encode or
// decode operation targets.
type EncodingFormat int

const (
	// DBus is the native D-Bus marshalling format: 4-byte array
	// length prefixes, nul-terminated strings, inline framing.
	DBus EncodingFormat = iota
	// GVariant is a GVariant-compatible alternative format using
	// trailing offset tables for variable-width containers instead of
	// inline length prefixes.
	GVariant
)

func (f EncodingFormat) String() string {
	switch f {
	case DBus:
		return "DBus"
	case GVariant:
		return "GVariant"
	default:
		return "EncodingFormat(?)"
	}
}

// Padding returns the number of padding bytes needed at absolute
// position pos to reach the next multiple of align.
func Padding(pos, align int) int {
	extra := pos % align
	if extra == 0 {
		return 0
	}
	return align - extra
}

// Pad rounds pos up to the next multiple of align and returns the
// result.
func Pad(pos, align int) int {
	return pos + Padding(pos, align)
}

// zeroes is a scratch buffer of zero bytes, long enough to cover any
// padding this codec ever needs to emit (the widest alignment is 8).
var zeroes [8]byte

// AppendPadding appends the zero bytes needed to align out (whose
// current length is basePos+len(out) bytes into the message) to
// align, and returns the extended slice.
func AppendPadding(out []byte, basePos, align int) []byte {
	n := Padding(basePos+len(out), align)
	return append(out, zeroes[:n]...)
}
