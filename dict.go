package dbus

import "github.com/hkr1990/gobus/fragments"

// Dict is the D-Bus dictionary type, `a{KV}`: an Array whose element
// type is a DictEntry with a fixed key and value signature. D-Bus
// calls this "array of dict entry" rather than giving it a distinct
// wire representation; this package gives it a distinct Go type
// because its construction and validation rules (every entry must
// share exactly the same key/value signature, the key must be a basic
// type) differ enough from a general Array to be worth keeping apart.
type Dict struct {
	KeySig Signature
	ValSig Signature
	Entries []DictEntry
}

func (d Dict) Kind() Kind { return KindDict }

func (d Dict) Signature() Signature {
	return "a{" + d.KeySig + d.ValSig + "}"
}

func (d Dict) Alignment(format fragments.EncodingFormat) int {
	return d.asArray().Alignment(format)
}

func (d Dict) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	return d.asArray().encodeInto(out, basePos, format)
}

func (d Dict) asArray() Array {
	elemSig := Signature("{" + d.KeySig + d.ValSig + "}")
	items := make([]Value, len(d.Entries))
	for i, e := range d.Entries {
		items[i] = e
	}
	return Array{elemSig, items}
}

// NewDict validates that every entry shares the given key and value
// signatures and that the key type is a basic (non-container) type,
// then wraps them into a Dict.
func NewDict(keySig, valSig Signature, entries []DictEntry) (Dict, error) {
	if len(keySig) != 1 || !isBasicTypeCode(byte(keySig[0])) {
		return Dict{}, errKind(IncorrectType, "dict key signature %q is not a basic type", keySig)
	}
	for _, e := range entries {
		if e.Key.Signature() != keySig {
			return Dict{}, errKind(IncorrectType, "dict entry key signature %q does not match declared %q", e.Key.Signature(), keySig)
		}
		if e.Val.Signature() != valSig {
			return Dict{}, errKind(IncorrectType, "dict entry value signature %q does not match declared %q", e.Val.Signature(), valSig)
		}
	}
	return Dict{keySig, valSig, entries}, nil
}

func decodeDict(data fragments.SharedData, sig Signature, format fragments.EncodingFormat) (Value, int, error) {
	if len(sig) < 2 || sig[0] != 'a' || sig[1] != '{' {
		return nil, 0, errKind(InsufficientData, "dict signature %q malformed", sig)
	}
	entrySig := sig[1:]
	v, n, err := decodeArray(data, "a"+entrySig, format)
	if err != nil {
		return nil, 0, err
	}
	arr := v.(Array)
	entries := make([]DictEntry, len(arr.Items))
	for i, item := range arr.Items {
		entries[i] = item.(DictEntry)
	}
	body := entrySig[1 : len(entrySig)-1]
	children, err := body.Children()
	if err != nil {
		return nil, 0, err
	}
	return Dict{children[0], children[1], entries}, n, nil
}
