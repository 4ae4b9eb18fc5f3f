package dbus

import (
	"github.com/hkr1990/gobus/fragments"
)

// Structure is the D-Bus struct container, signature `(...)`. Its
// fields may be of any, possibly differing, types.
//
// The real single-character signature for STRUCT is `r`, but the
// D-Bus spec states that character must never appear on the wire; in
// practice the parenthesised form is used exclusively, so that's all
// this package emits or accepts.
type Structure struct {
	Fields []Value
}

func (s Structure) Kind() Kind { return KindStructure }

func (s Structure) Signature() Signature {
	return structSignature(s.Fields)
}

func (s Structure) Alignment(format fragments.EncodingFormat) int {
	if format != fragments.GVariant {
		return 8
	}
	sig := s.Signature()
	align, err := maxChildAlignment(sig[1:len(sig)-1], format)
	if err != nil {
		return 8
	}
	return align
}

func (s Structure) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	align := s.Alignment(format)
	out = fragments.AppendPadding(out, basePos, align)

	if format != fragments.GVariant {
		// A structure always starts aligned to 8, so every field and
		// its children are already correctly positioned; each field
		// self-aligns as it's written.
		for _, f := range s.Fields {
			out = f.encodeInto(out, basePos, format)
		}
		return out
	}

	contentStart := len(out)
	var offsets []uint32
	for _, f := range s.Fields {
		out = f.encodeInto(out, basePos, format)
		if isVariableSize(f.Signature()) {
			offsets = append(offsets, uint32(len(out)-contentStart))
		}
	}
	// Simplification: every variable-size field gets an explicit
	// offset table entry, including the last one (real GVariant elides
	// it since it's implied by the container's own end).
	for _, off := range offsets {
		out = fragments.LittleEndian.AppendUint32(out, off)
	}
	return out
}

func decodeStruct(data fragments.SharedData, sig Signature, format fragments.EncodingFormat) (Value, int, error) {
	if len(sig) < 3 || sig[0] != '(' || sig[len(sig)-1] != ')' {
		return nil, 0, errKind(InsufficientData, "struct signature %q too short or malformed", sig)
	}
	body := sig[1 : len(sig)-1]
	children, err := body.Children()
	if err != nil {
		return nil, 0, err
	}
	if len(children) == 0 {
		return nil, 0, errKind(ExcessData, "struct signature %q has no fields", sig)
	}

	align, err := structAlignmentForChildren(children, format)
	if err != nil {
		return nil, 0, err
	}
	pad := fragments.Padding(data.Position(), align)
	if data.Len() < pad {
		return nil, 0, errKind(InsufficientData, "struct: missing %d bytes of padding", pad)
	}
	payload := data.Tail(pad)

	if format != fragments.GVariant {
		fields := make([]Value, 0, len(children))
		consumed := 0
		for _, childSig := range children {
			v, n, err := decodeValue(payload.Tail(consumed), childSig, format)
			if err != nil {
				return nil, 0, err
			}
			fields = append(fields, v)
			consumed += n
			if consumed > payload.Len() {
				return nil, 0, errKind(InsufficientData, "struct field overran available data")
			}
		}
		return Structure{fields}, pad + consumed, nil
	}

	return decodeStructGVariant(payload, children, format, pad)
}

func structAlignmentForChildren(children []Signature, format fragments.EncodingFormat) (int, error) {
	if format != fragments.GVariant {
		return 8, nil
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

func decodeStructGVariant(payload fragments.SharedData, children []Signature, format fragments.EncodingFormat, pad int) (Value, int, error) {
	variableCount := 0
	for _, c := range children {
		if isVariableSize(c) {
			variableCount++
		}
	}

	if variableCount == 0 {
		fields := make([]Value, 0, len(children))
		consumed := 0
		for _, childSig := range children {
			v, n, err := decodeValue(payload.Tail(consumed), childSig, format)
			if err != nil {
				return nil, 0, err
			}
			fields = append(fields, v)
			consumed += n
		}
		return Structure{fields}, pad + consumed, nil
	}

	tableBytes := 4 * variableCount
	if payload.Len() < tableBytes {
		return nil, 0, errKind(InsufficientData, "struct offset table truncated")
	}
	contentLen := payload.Len() - tableBytes
	table := payload.Tail(contentLen)
	offsets := make([]int, variableCount)
	for i := 0; i < variableCount; i++ {
		offsets[i] = int(fragments.LittleEndian.Uint32(table.Bytes()[4*i:]))
	}

	content := payload.Head(contentLen)
	fields := make([]Value, 0, len(children))
	pos := 0
	oi := 0
	for _, childSig := range children {
		if isVariableSize(childSig) {
			end := offsets[oi]
			oi++
			if end < pos || end > contentLen {
				return nil, 0, errKind(IncorrectType, "struct offset table out of range")
			}
			v, _, err := decodeValue(content.Slice(pos, end), childSig, format)
			if err != nil {
				return nil, 0, err
			}
			fields = append(fields, v)
			pos = end
		} else {
			v, n, err := decodeValue(content.Tail(pos), childSig, format)
			if err != nil {
				return nil, 0, err
			}
			fields = append(fields, v)
			pos += n
		}
	}
	return Structure{fields}, pad + payload.Len(), nil
}
