package dbus

import (
	"github.com/hkr1990/gobus/fragments"
)

// DictEntry is the D-Bus dict-entry container, signature `{KV}`. It
// belongs as the element type of an Array (see Dict); the D-Bus spec
// forbids it anywhere else. This package does not enforce that: a
// DictEntry's own signature is the bare `{KV}`, and DecodeValue
// accepts a signature that starts with `{`.
type DictEntry struct {
	Key Value
	Val Value
}

func (e DictEntry) Kind() Kind { return KindDictEntry }

func (e DictEntry) Signature() Signature {
	return "{" + e.Key.Signature() + e.Val.Signature() + "}"
}

func (e DictEntry) Alignment(format fragments.EncodingFormat) int {
	if format != fragments.GVariant {
		return 8
	}
	ka := e.Key.Alignment(format)
	va := e.Val.Alignment(format)
	if ka > va {
		return ka
	}
	return va
}

func (e DictEntry) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	align := e.Alignment(format)
	out = fragments.AppendPadding(out, basePos, align)

	if format != fragments.GVariant {
		out = e.Key.encodeInto(out, basePos, format)
		out = e.Val.encodeInto(out, basePos, format)
		return out
	}

	contentStart := len(out)
	out = e.Key.encodeInto(out, basePos, format)
	out = e.Val.encodeInto(out, basePos, format)
	if isVariableSize(e.Val.Signature()) {
		out = fragments.LittleEndian.AppendUint32(out, uint32(len(out)-contentStart))
	}
	return out
}

func decodeDictEntry(data fragments.SharedData, sig Signature, format fragments.EncodingFormat) (Value, int, error) {
	if len(sig) < 4 || sig[0] != '{' || sig[len(sig)-1] != '}' {
		return nil, 0, errKind(InsufficientData, "dict entry signature %q malformed", sig)
	}
	body := sig[1 : len(sig)-1]
	if err := validateDictEntryBody(string(body)); err != nil {
		return nil, 0, err
	}
	children, err := body.Children()
	if err != nil {
		return nil, 0, err
	}
	keySig, valSig := children[0], children[1]

	ka, err := signatureAlignment(keySig, format)
	if err != nil {
		return nil, 0, err
	}
	va, err := signatureAlignment(valSig, format)
	if err != nil {
		return nil, 0, err
	}
	align := 8
	if format == fragments.GVariant {
		align = ka
		if va > align {
			align = va
		}
	}
	pad := fragments.Padding(data.Position(), align)
	if data.Len() < pad {
		return nil, 0, errKind(InsufficientData, "dict entry: missing %d bytes of padding", pad)
	}
	payload := data.Tail(pad)

	if format != fragments.GVariant {
		key, kn, err := decodeValue(payload, keySig, format)
		if err != nil {
			return nil, 0, err
		}
		val, vn, err := decodeValue(payload.Tail(kn), valSig, format)
		if err != nil {
			return nil, 0, err
		}
		return DictEntry{key, val}, pad + kn + vn, nil
	}

	key, kn, err := decodeValue(payload, keySig, format)
	if err != nil {
		return nil, 0, err
	}
	rest := payload.Tail(kn)
	if !isVariableSize(valSig) {
		val, vn, err := decodeValue(rest, valSig, format)
		if err != nil {
			return nil, 0, err
		}
		return DictEntry{key, val}, pad + kn + vn, nil
	}
	val, _, err := decodeValue(rest, valSig, format)
	if err != nil {
		return nil, 0, err
	}
	return DictEntry{key, val}, pad + payload.Len(), nil
}
