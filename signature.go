package dbus

import (
	"strings"
	"unicode/utf8"

	"github.com/creachadair/mds/mapset"
)

// Signature is a string describing a sequence of D-Bus types, drawn
// from the alphabet `ybnqiuxtdsogavh(){}`. A Signature doubles as a
// D-Bus value in its own right (the wire type `g`) and as the type
// description passed to [DecodeValue] and friends.
type Signature string

// signatureAlphabet is the complete set of bytes that may legally
// appear in a signature, used by the scanner to reject garbage input
// fast.
var signatureAlphabet = mapset.New[byte](
	'y', 'b', 'n', 'q', 'i', 'u', 'x', 't', 'd', 's', 'o', 'g', 'a', 'v', 'h', '(', ')', '{', '}',
)

// maxSignatureDepth bounds how many nested containers the scanner
// will descend into before giving up. D-Bus signatures transmitted
// over the wire are at most 255 bytes, so a depth of 255 can never be
// legitimately exceeded; bounding it explicitly keeps an adversarial
// input from blowing the stack.
const maxSignatureDepth = 255

// SliceSignature returns the longest prefix of s that describes
// exactly one complete type: a single basic-type character, an array
// marker followed by its element type, a parenthesised struct, a
// variant marker, or (inside an array) a braced dict-entry.
//
// SliceSignature fails with exactly one of two [ErrorKind]s: IncorrectType
// if the leading bytes cannot start a valid type, or
// InsufficientData if the string ends before a type that was started
// is complete.
func SliceSignature(s string) (Signature, error) {
	n, err := oneTypeLen(s, 0)
	if err != nil {
		return "", err
	}
	return Signature(s[:n]), nil
}

// oneTypeLen returns the length, in bytes, of the single complete
// type starting at s[0]. depth counts enclosing array markers plus
// open containers, and is used only to cap recursion.
func oneTypeLen(s string, depth int) (int, error) {
	if depth > maxSignatureDepth {
		return 0, errKind(IncorrectType, "signature nests more than %d levels deep", maxSignatureDepth)
	}
	if len(s) == 0 {
		return 0, errKind(InsufficientData, "empty signature")
	}

	c := s[0]
	if !signatureAlphabet.Has(c) {
		return 0, errKind(IncorrectType, "unknown type code %q", c)
	}

	switch c {
	case 'y', 'b', 'n', 'q', 'i', 'u', 'x', 't', 'd', 's', 'o', 'g', 'v', 'h':
		return 1, nil

	case 'a':
		if len(s) < 2 {
			return 0, errKind(InsufficientData, "array type code with no element type")
		}
		elemLen, err := oneTypeLen(s[1:], depth+1)
		if err != nil {
			return 0, err
		}
		return 1 + elemLen, nil

	case '(':
		return scanBraced(s, depth, '(', ')')

	case '{':
		n, err := scanBraced(s, depth, '{', '}')
		if err != nil {
			return 0, err
		}
		if err := validateDictEntryBody(s[1 : n-1]); err != nil {
			return 0, err
		}
		return n, nil

	case ')', '}':
		return 0, errKind(IncorrectType, "closing %q with no matching opener", c)

	default:
		return 0, errKind(IncorrectType, "unsupported type code %q", c)
	}
}

// scanBraced scans a bracketed run opened by open and closed by
// close, starting at s[0]==open, tracking nesting depth of that same
// bracket pair. It returns the length of the entire bracketed run,
// including both delimiters.
func scanBraced(s string, depth int, open, close byte) (int, error) {
	depthCounter := 1
	i := 1
	for i < len(s) {
		switch s[i] {
		case open:
			depthCounter++
			i++
		case close:
			depthCounter--
			i++
			if depthCounter == 0 {
				return i, nil
			}
		default:
			n, err := oneTypeLen(s[i:], depth+1)
			if err != nil {
				return 0, err
			}
			i += n
		}
	}
	return 0, errKind(InsufficientData, "missing closing %q", close)
}

// validateDictEntryBody checks that a dict-entry body (the bytes
// between `{` and `}`) contains exactly two complete child
// signatures, the first of which is a basic type.
func validateDictEntryBody(body string) error {
	keyLen, err := oneTypeLen(body, 0)
	if err != nil {
		return err
	}
	if keyLen != 1 || !isBasicTypeCode(body[0]) {
		return errKind(IncorrectType, "dict entry key %q is not a basic type", body[:keyLen])
	}
	rest := body[keyLen:]
	if rest == "" {
		return errKind(InsufficientData, "dict entry missing value type")
	}
	valLen, err := oneTypeLen(rest, 0)
	if err != nil {
		return err
	}
	if valLen != len(rest) {
		return errKind(IncorrectType, "dict entry body %q has more than two children", body)
	}
	return nil
}

func isBasicTypeCode(c byte) bool {
	switch c {
	case 'y', 'b', 'n', 'q', 'i', 'u', 'x', 't', 'd', 's', 'o', 'g', 'h':
		return true
	default:
		return false
	}
}

// Children splits a compound signature (e.g. the body of a struct, or
// a top-level multi-value signature) into its top-level complete
// types, in order.
func (s Signature) Children() ([]Signature, error) {
	var ret []Signature
	rest := string(s)
	for rest != "" {
		child, err := SliceSignature(rest)
		if err != nil {
			return nil, err
		}
		ret = append(ret, child)
		rest = rest[len(child):]
	}
	return ret, nil
}

// IsSingle reports whether s describes exactly one complete type.
func (s Signature) IsSingle() bool {
	n, err := oneTypeLen(string(s), 0)
	return err == nil && n == len(s)
}

// Validate checks that s is well-formed: every byte is part of the
// signature alphabet, all brackets balance, and every `{...}` has
// exactly two children, the first a basic type.
func (s Signature) Validate() error {
	_, err := s.Children()
	return err
}

// String returns s as a plain string.
func (s Signature) String() string {
	return string(s)
}

// validUTF8 reports whether bs is valid UTF-8, returning the
// appropriate codec error otherwise.
func validUTF8(bs []byte) error {
	if !utf8.Valid(bs) {
		return errKind(InvalidUTF8, "payload is not valid utf-8")
	}
	return nil
}

// structSignature builds the parenthesised signature for a Structure
// from its fields' own signatures.
func structSignature(fields []Value) Signature {
	var b strings.Builder
	b.WriteByte('(')
	for _, f := range fields {
		b.WriteString(string(f.Signature()))
	}
	b.WriteByte(')')
	return Signature(b.String())
}
