package dbus

import (
	"github.com/hkr1990/gobus/fragments"
)

// Array is the D-Bus `a` type: a homogeneous list of values sharing a
// single element signature.
type Array struct {
	ElemSig Signature
	Items   []Value
}

func (a Array) Kind() Kind           { return KindArray }
func (a Array) Signature() Signature { return "a" + a.ElemSig }

func (a Array) Alignment(format fragments.EncodingFormat) int {
	if format != fragments.GVariant {
		return 4
	}
	align, err := signatureAlignment(a.ElemSig, format)
	if err != nil {
		return 1
	}
	return align
}

func (a Array) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	elemAlign, _ := signatureAlignment(a.ElemSig, format)

	if format != fragments.GVariant {
		out = fragments.AppendPadding(out, basePos, 4)
		lenPos := len(out)
		out = append(out, 0, 0, 0, 0) // placeholder, patched below
		out = fragments.AppendPadding(out, basePos, elemAlign)
		contentStart := len(out)
		for _, item := range a.Items {
			out = item.encodeInto(out, basePos, format)
		}
		fragments.LittleEndian.PutUint32(out[lenPos:], uint32(len(out)-contentStart))
		return out
	}

	out = fragments.AppendPadding(out, basePos, elemAlign)
	contentStart := len(out)
	if !isVariableSize(a.ElemSig) {
		for _, item := range a.Items {
			out = item.encodeInto(out, basePos, format)
		}
		return out
	}

	offsets := make([]uint32, len(a.Items))
	for i, item := range a.Items {
		out = item.encodeInto(out, basePos, format)
		offsets[i] = uint32(len(out) - contentStart)
	}
	for _, off := range offsets {
		out = fragments.LittleEndian.AppendUint32(out, off)
	}
	return out
}

func decodeArray(data fragments.SharedData, sig Signature, format fragments.EncodingFormat) (Value, int, error) {
	elemSig, err := SliceSignature(string(sig[1:]))
	if err != nil {
		return nil, 0, err
	}
	elemAlign, err := signatureAlignment(elemSig, format)
	if err != nil {
		return nil, 0, err
	}

	if format != fragments.GVariant {
		return decodeArrayDBus(data, elemSig, elemAlign, format)
	}
	return decodeArrayGVariant(data, elemSig, elemAlign, format)
}

func decodeArrayDBus(data fragments.SharedData, elemSig Signature, elemAlign int, format fragments.EncodingFormat) (Value, int, error) {
	pad := fragments.Padding(data.Position(), 4)
	if data.Len() < pad+4 {
		return nil, 0, errKind(InsufficientData, "array: missing length prefix")
	}
	length := fragments.LittleEndian.Uint32(data.Bytes()[pad : pad+4])

	headerEnd := pad + 4
	contentStartAbs := data.Position() + headerEnd
	extra := fragments.Padding(contentStartAbs, elemAlign)
	contentStart := headerEnd + extra

	total := contentStart + int(length)
	if data.Len() < total {
		return nil, 0, errKind(InsufficientData, "array: need %d bytes, have %d", total, data.Len())
	}

	content := data.Slice(contentStart, total)
	var items []Value
	consumed := 0
	for consumed < int(length) {
		v, n, err := decodeValue(content.Tail(consumed), elemSig, format)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 {
			return nil, 0, errKind(IncorrectType, "array element consumed zero bytes")
		}
		items = append(items, v)
		consumed += n
		if consumed > int(length) {
			return nil, 0, errKind(InsufficientData, "array element overran declared length")
		}
	}
	return Array{elemSig, items}, total, nil
}

func decodeArrayGVariant(data fragments.SharedData, elemSig Signature, elemAlign int, format fragments.EncodingFormat) (Value, int, error) {
	pad := fragments.Padding(data.Position(), elemAlign)
	if data.Len() < pad {
		return nil, 0, errKind(InsufficientData, "array: missing %d bytes of padding", pad)
	}
	payload := data.Tail(pad)

	if payload.Len() == 0 {
		return Array{elemSig, nil}, pad, nil
	}

	if !isVariableSize(elemSig) {
		size := fixedSize(elemSig, format)
		if size == 0 || payload.Len()%size != 0 {
			return nil, 0, errKind(IncorrectType, "array content length %d not a multiple of element size %d", payload.Len(), size)
		}
		n := payload.Len() / size
		items := make([]Value, 0, n)
		for i := 0; i < n; i++ {
			v, _, err := decodeValue(payload.Slice(i*size, (i+1)*size), elemSig, format)
			if err != nil {
				return nil, 0, err
			}
			items = append(items, v)
		}
		return Array{elemSig, items}, pad + payload.Len(), nil
	}

	if payload.Len() < 4 {
		return nil, 0, errKind(InsufficientData, "array offset table truncated")
	}
	lastOff := fragments.LittleEndian.Uint32(payload.Bytes()[payload.Len()-4:])
	tableBytes := payload.Len() - int(lastOff)
	if tableBytes <= 0 || tableBytes%4 != 0 || int(lastOff) > payload.Len() {
		return nil, 0, errKind(IncorrectType, "malformed array offset table")
	}
	n := tableBytes / 4
	offsets := make([]int, n)
	for i := 0; i < n; i++ {
		offsets[i] = int(fragments.LittleEndian.Uint32(payload.Bytes()[int(lastOff)+4*i:]))
	}

	items := make([]Value, 0, n)
	prev := 0
	for _, end := range offsets {
		if end < prev || end > int(lastOff) {
			return nil, 0, errKind(IncorrectType, "array offset table out of range")
		}
		v, _, err := decodeValue(payload.Slice(prev, end), elemSig, format)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
		prev = end
	}
	return Array{elemSig, items}, pad + payload.Len(), nil
}
