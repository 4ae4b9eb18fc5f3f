package dbus

import (
	"github.com/hkr1990/gobus/fragments"
)

// String is the D-Bus `s` type.
type String string

func (String) Kind() Kind                            { return KindString }
func (String) Signature() Signature                  { return "s" }
func (String) Alignment(format fragments.EncodingFormat) int {
	if format == fragments.GVariant {
		return 1
	}
	return 4
}

func (v String) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	return encodeTextInto(out, basePos, string(v), format)
}

// ObjectPath is the D-Bus `o` type: a string with the same wire
// framing as String, but a stricter grammar (a `/`-separated path of
// identifier elements).
type ObjectPath string

func (ObjectPath) Kind() Kind                           { return KindObjectPath }
func (ObjectPath) Signature() Signature                 { return "o" }
func (ObjectPath) Alignment(format fragments.EncodingFormat) int {
	if format == fragments.GVariant {
		return 1
	}
	return 4
}

func (v ObjectPath) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	return encodeTextInto(out, basePos, string(v), format)
}

// Valid reports whether p satisfies the D-Bus object path grammar: it
// starts with `/`, its elements are separated by single `/`
// characters, elements consist of `[A-Za-z0-9_]+`, and the path is
// either exactly "/" or has no trailing slash.
func (p ObjectPath) Valid() bool {
	s := string(p)
	if s == "" || s[0] != '/' {
		return false
	}
	if s == "/" {
		return true
	}
	if s[len(s)-1] == '/' {
		return false
	}
	elem := 0
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '/':
			if elem == 0 {
				return false
			}
			elem = 0
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'):
			elem++
		default:
			return false
		}
	}
	return elem > 0
}

// Kind, Signature, Alignment and encodeInto for the `g` signature
// value type live here, next to the other text types; the Signature
// string type itself is declared in signature.go, since the same Go
// type serves double duty as both a wire value and a type descriptor.
func (Signature) Kind() Kind { return KindSignature }

func (Signature) Signature() Signature { return "g" }

func (s Signature) Alignment(format fragments.EncodingFormat) int {
	if format == fragments.GVariant {
		return 1
	}
	return 1
}

func (s Signature) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	if format == fragments.GVariant {
		return append(out, s...)
	}
	out = append(out, byte(len(s)))
	out = append(out, s...)
	return append(out, 0)
}

// encodeTextInto writes s using the length-prefixed, nul-terminated
// DBus framing, or as raw bytes with no framing at all under
// GVariant, where the container a string is embedded in is
// responsible for delimiting it.
func encodeTextInto(out []byte, basePos int, s string, format fragments.EncodingFormat) []byte {
	if format == fragments.GVariant {
		return append(out, s...)
	}
	out = fragments.AppendPadding(out, basePos, 4)
	out = fragments.LittleEndian.AppendUint32(out, uint32(len(s)))
	out = append(out, s...)
	return append(out, 0)
}

func decodeString(data fragments.SharedData, format fragments.EncodingFormat) (Value, int, error) {
	s, n, err := decodeTextBytes(data, format)
	if err != nil {
		return nil, 0, err
	}
	return String(s), n, nil
}

func decodeObjectPath(data fragments.SharedData, format fragments.EncodingFormat) (Value, int, error) {
	s, n, err := decodeTextBytes(data, format)
	if err != nil {
		return nil, 0, err
	}
	p := ObjectPath(s)
	if !p.Valid() {
		return nil, 0, errKind(IncorrectType, "malformed object path %q", s)
	}
	return p, n, nil
}

func decodeSignatureValue(data fragments.SharedData, format fragments.EncodingFormat) (Value, int, error) {
	if format == fragments.GVariant {
		bs := data.Bytes()
		sig := Signature(bs)
		if err := sig.Validate(); err != nil {
			return nil, 0, err
		}
		return sig, data.Len(), nil
	}
	if data.Len() < 1 {
		return nil, 0, errKind(InsufficientData, "signature: missing length byte")
	}
	n := int(data.Bytes()[0])
	total := 1 + n + 1
	if data.Len() < total {
		return nil, 0, errKind(InsufficientData, "signature: need %d bytes, have %d", total, data.Len())
	}
	body := data.Bytes()[1 : 1+n]
	if err := validUTF8(body); err != nil {
		return nil, 0, err
	}
	sig := Signature(body)
	if err := sig.Validate(); err != nil {
		return nil, 0, err
	}
	return sig, total, nil
}

// decodeTextBytes reads the raw payload for a String or ObjectPath:
// under DBus format, a 4-byte length, the bytes, and a trailing nul
// not counted in the length; under GVariant format, the value borrows
// the entirety of the remaining window, with no length or nul at all
// (the enclosing container is responsible for delimiting it exactly).
func decodeTextBytes(data fragments.SharedData, format fragments.EncodingFormat) (string, int, error) {
	if format == fragments.GVariant {
		bs := data.Bytes()
		if err := validUTF8(bs); err != nil {
			return "", 0, err
		}
		return string(bs), data.Len(), nil
	}

	pad := fragments.Padding(data.Position(), 4)
	if data.Len() < pad+4 {
		return "", 0, errKind(InsufficientData, "string: missing length prefix")
	}
	n := fragments.LittleEndian.Uint32(data.Bytes()[pad : pad+4])
	total := pad + 4 + int(n) + 1
	if data.Len() < total {
		return "", 0, errKind(InsufficientData, "string: need %d bytes, have %d", total, data.Len())
	}
	body := data.Bytes()[pad+4 : pad+4+int(n)]
	if err := validUTF8(body); err != nil {
		return "", 0, err
	}
	return string(body), total, nil
}
