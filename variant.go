package dbus

import "github.com/hkr1990/gobus/fragments"

// Variant is the D-Bus `v` type: a self-describing box holding a
// single value of any other type, tagged on the wire with that
// value's signature. Unlike the other container types, a Variant's
// own alignment is always 1 in both formats: in DBus format it starts
// with the signature's length byte, which needs no padding, and in
// GVariant format it starts with the inner value, which pads itself.
type Variant struct {
	Inner Value
}

func (v Variant) Kind() Kind                                    { return KindVariant }
func (Variant) Signature() Signature                             { return "v" }
func (Variant) Alignment(fragments.EncodingFormat) int           { return 1 }

func (v Variant) encodeInto(out []byte, basePos int, format fragments.EncodingFormat) []byte {
	sig := v.Inner.Signature()
	if format == fragments.GVariant {
		out = v.Inner.encodeInto(out, basePos, format)
		out = append(out, 0)
		out = append(out, sig...)
		return out
	}
	out = sig.encodeInto(out, basePos, format)
	out = v.Inner.encodeInto(out, basePos, format)
	return out
}

func decodeVariant(data fragments.SharedData, format fragments.EncodingFormat) (Value, int, error) {
	if format == fragments.GVariant {
		return decodeVariantGVariant(data)
	}

	sigVal, n, err := decodeSignatureValue(data, format)
	if err != nil {
		return nil, 0, err
	}
	sig := sigVal.(Signature)
	if !sig.IsSingle() {
		return nil, 0, errKind(IncorrectType, "variant signature %q is not a single complete type", sig)
	}
	inner, m, err := decodeValue(data.Tail(n), sig, format)
	if err != nil {
		return nil, 0, err
	}
	return Variant{inner}, n + m, nil
}

// decodeVariantGVariant reads the GVariant framing for `v`: the inner
// value occupies everything up to the last embedded NUL byte, and the
// type signature follows it to the end of the window. Unlike DBus
// format, the signature comes last because nothing else in GVariant
// needs to know the inner value's length ahead of time.
func decodeVariantGVariant(data fragments.SharedData) (Value, int, error) {
	bs := data.Bytes()
	sep := -1
	for i := len(bs) - 1; i >= 0; i-- {
		if bs[i] == 0 {
			sep = i
			break
		}
	}
	if sep < 0 {
		return nil, 0, errKind(InsufficientData, "variant: missing signature separator")
	}
	sigBytes := bs[sep+1:]
	sig := Signature(sigBytes)
	if err := sig.Validate(); err != nil {
		return nil, 0, err
	}
	if !sig.IsSingle() {
		return nil, 0, errKind(IncorrectType, "variant signature %q is not a single complete type", sig)
	}
	inner, _, err := decodeValue(data.Head(sep), sig, fragments.GVariant)
	if err != nil {
		return nil, 0, err
	}
	return Variant{inner}, data.Len(), nil
}
