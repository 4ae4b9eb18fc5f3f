package dbus

// Kind tags the concrete type behind a [Value]. It lets callers and
// the central codec switch on a value's shape without a type-switch
// over every concrete type.
type Kind int

const (
	KindByte Kind = iota
	KindBoolean
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindDouble
	KindString
	KindObjectPath
	KindSignature
	KindArray
	KindStructure
	KindDictEntry
	KindDict
	KindVariant
	KindUnixFD
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}

var kindNames = map[Kind]string{
	KindByte:       "Byte",
	KindBoolean:    "Boolean",
	KindInt16:      "Int16",
	KindUint16:     "Uint16",
	KindInt32:      "Int32",
	KindUint32:     "Uint32",
	KindInt64:      "Int64",
	KindUint64:     "Uint64",
	KindDouble:     "Double",
	KindString:     "String",
	KindObjectPath: "ObjectPath",
	KindSignature:  "Signature",
	KindArray:      "Array",
	KindStructure:  "Structure",
	KindDictEntry:  "DictEntry",
	KindDict:       "Dict",
	KindVariant:    "Variant",
	KindUnixFD:     "UnixFD",
}
