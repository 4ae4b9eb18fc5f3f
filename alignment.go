package dbus

import "github.com/hkr1990/gobus/fragments"

// signatureAlignment returns the required alignment, under format, for
// a value described by sig — without needing an actual decoded Value.
// It's used for empty containers (an empty array still has to align
// its zero elements correctly) and to size GVariant offset tables
// before any child has been materialized.
func signatureAlignment(sig Signature, format fragments.EncodingFormat) (int, error) {
	if sig == "" {
		return 1, nil
	}
	switch sig[0] {
	case 'y', 'g', 'v':
		return 1, nil
	case 'b':
		if format == fragments.GVariant {
			return 1, nil
		}
		return 4, nil
	case 'n', 'q':
		return 2, nil
	case 'i', 'u', 'h':
		return 4, nil
	case 'x', 't', 'd':
		return 8, nil
	case 's', 'o':
		if format == fragments.GVariant {
			return 1, nil
		}
		return 4, nil
	case 'a':
		if format != fragments.GVariant {
			return 4, nil
		}
		elem, err := SliceSignature(string(sig[1:]))
		if err != nil {
			return 0, err
		}
		return signatureAlignment(elem, format)
	case '(':
		if format != fragments.GVariant {
			return 8, nil
		}
		return maxChildAlignment(sig[1:len(sig)-1], format)
	case '{':
		if format != fragments.GVariant {
			return 8, nil
		}
		return maxChildAlignment(sig[1:len(sig)-1], format)
	default:
		return 0, errKind(IncorrectType, "unknown type code %q", sig[0])
	}
}

// maxChildAlignment returns the largest alignment among the top-level
// complete types in body, under format. It's used to align GVariant
// structs and dict entries to their most-aligned field, rather than a
// fixed 8 bytes.
func maxChildAlignment(body Signature, format fragments.EncodingFormat) (int, error) {
	children, err := body.Children()
	if err != nil {
		return 0, err
	}
	if len(children) == 0 {
		return 0, errKind(InsufficientData, "struct or dict entry has no fields")
	}
	best := 1
	for _, c := range children {
		a, err := signatureAlignment(c, format)
		if err != nil {
			return 0, err
		}
		if a > best {
			best = a
		}
	}
	return best, nil
}

// fixedSize returns the wire size, in bytes, of a fixed-size basic
// type under format. It must only be called with signatures for
// which isVariableSize reports false.
func fixedSize(sig Signature, format fragments.EncodingFormat) int {
	switch sig[0] {
	case 'y':
		return 1
	case 'b':
		if format == fragments.GVariant {
			return 1
		}
		return 4
	case 'n', 'q':
		return 2
	case 'i', 'u', 'h':
		return 4
	case 'x', 't', 'd':
		return 8
	default:
		return 0
	}
}

// isVariableSize reports whether a value of the given signature has a
// size that depends on its content (true) or is fully determined by
// its type alone (false). Under GVariant format, a variable-size
// value never reports its own length via slice_data/decode in
// isolation — it trusts the enclosing container (or, at top level,
// the caller) to have bounded its window exactly.
func isVariableSize(sig Signature) bool {
	if sig == "" {
		return false
	}
	switch sig[0] {
	case 'y', 'b', 'n', 'q', 'i', 'u', 'x', 't', 'd', 'h':
		return false
	default:
		return true
	}
}
