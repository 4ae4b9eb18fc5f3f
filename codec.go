package dbus

import "github.com/hkr1990/gobus/fragments"

// DecodeValue reads a single complete value described by sig from the
// front of data, under the given wire format. It returns the decoded
// Value and the number of bytes consumed, including any leading
// alignment padding.
func DecodeValue(data fragments.SharedData, sig Signature, format fragments.EncodingFormat) (Value, int, error) {
	return decodeValue(data, sig, format)
}

// SliceValue returns the exact window of data occupied by a single
// complete value described by sig, without retaining the constructed
// Value itself. It's implemented as a thin wrapper over DecodeValue:
// it builds the value fully and then re-windows the input to the
// length it reports having consumed, rather than maintaining a
// second, construction-free parser per type.
func SliceValue(data fragments.SharedData, sig Signature, format fragments.EncodingFormat) (fragments.SharedData, error) {
	_, n, err := decodeValue(data, sig, format)
	if err != nil {
		return fragments.SharedData{}, err
	}
	return data.Head(n), nil
}

// decodeValue is the central dispatcher every container's decode
// function recurses through: it inspects sig's leading type code and
// calls the matching per-kind decoder.
func decodeValue(data fragments.SharedData, sig Signature, format fragments.EncodingFormat) (Value, int, error) {
	if sig == "" {
		return nil, 0, errKind(InsufficientData, "empty signature")
	}

	switch sig[0] {
	case 'y':
		return decodeByte(data)
	case 'b':
		return decodeBoolean(data, format)
	case 'n':
		return decodeInt16(data)
	case 'q':
		return decodeUint16(data)
	case 'i':
		return decodeInt32(data)
	case 'u':
		return decodeUint32(data)
	case 'x':
		return decodeInt64(data)
	case 't':
		return decodeUint64(data)
	case 'd':
		return decodeDouble(data)
	case 'h':
		return decodeUnixFD(data)
	case 's':
		return decodeString(data, format)
	case 'o':
		return decodeObjectPath(data, format)
	case 'g':
		return decodeSignatureValue(data, format)
	case 'v':
		return decodeVariant(data, format)
	case 'a':
		if len(sig) >= 2 && sig[1] == '{' {
			return decodeDict(data, sig, format)
		}
		return decodeArray(data, sig, format)
	case '(':
		return decodeStruct(data, sig, format)
	case '{':
		return decodeDictEntry(data, sig, format)
	default:
		return nil, 0, errKind(IncorrectType, "unsupported type code %q", sig[0])
	}
}

// SignatureOf returns the D-Bus signature corresponding to v's
// shape. It's shorthand for v.Signature() that reads naturally at
// call sites that don't otherwise need a Value in hand.
func SignatureOf(v Value) Signature {
	return v.Signature()
}
