package token

import "fmt"

// Kind identifies the variant of a Token. The set is closed: one kind per
// scalar type plus begin/end markers for each structural form.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Scalars.
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt128
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUint128
	KindFloat32
	KindFloat64
	KindChar

	// Text and binary. Str and Bytes may alias decoder-owned memory; String
	// and ByteBuf always own their payload.
	KindStr
	KindString
	KindBytes
	KindByteBuf

	// Optionals. None is a complete value; Some is a header followed by the
	// wrapped value's token sequence.
	KindNone
	KindSome

	// Unit-like values.
	KindUnit
	KindUnitStruct
	KindUnitVariant

	// Newtype headers; the wrapped value's token sequence follows.
	KindNewtypeStruct
	KindNewtypeVariant

	// Structural begin/end pairs.
	KindSeq
	KindSeqEnd
	KindTuple
	KindTupleEnd
	KindTupleStruct
	KindTupleStructEnd
	KindTupleVariant
	KindTupleVariantEnd
	KindMap
	KindMapEnd
	KindStruct
	KindStructEnd
	KindStructVariant
	KindStructVariantEnd

	// Enum header for an enum of a given name. Rarely used standalone;
	// variant information normally travels in the *Variant kinds above.
	KindEnum
)

var kindNames = map[Kind]string{
	KindInvalid:          "Invalid",
	KindBool:             "Bool",
	KindInt8:             "I8",
	KindInt16:            "I16",
	KindInt32:            "I32",
	KindInt64:            "I64",
	KindInt128:           "I128",
	KindUint8:            "U8",
	KindUint16:           "U16",
	KindUint32:           "U32",
	KindUint64:           "U64",
	KindUint128:          "U128",
	KindFloat32:          "F32",
	KindFloat64:          "F64",
	KindChar:             "Char",
	KindStr:              "Str",
	KindString:           "String",
	KindBytes:            "Bytes",
	KindByteBuf:          "ByteBuf",
	KindNone:             "None",
	KindSome:             "Some",
	KindUnit:             "Unit",
	KindUnitStruct:       "UnitStruct",
	KindUnitVariant:      "UnitVariant",
	KindNewtypeStruct:    "NewtypeStruct",
	KindNewtypeVariant:   "NewtypeVariant",
	KindSeq:              "Seq",
	KindSeqEnd:           "SeqEnd",
	KindTuple:            "Tuple",
	KindTupleEnd:         "TupleEnd",
	KindTupleStruct:      "TupleStruct",
	KindTupleStructEnd:   "TupleStructEnd",
	KindTupleVariant:     "TupleVariant",
	KindTupleVariantEnd:  "TupleVariantEnd",
	KindMap:              "Map",
	KindMapEnd:           "MapEnd",
	KindStruct:           "Struct",
	KindStructEnd:        "StructEnd",
	KindStructVariant:    "StructVariant",
	KindStructVariantEnd: "StructVariantEnd",
	KindEnum:             "Enum",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "Unknown"
}

// IsBegin reports whether k opens a structural scope that must later be
// closed by the matching end kind.
func (k Kind) IsBegin() bool {
	switch k {
	case KindSeq, KindTuple, KindTupleStruct, KindTupleVariant, KindMap, KindStruct, KindStructVariant:
		return true
	default:
		return false
	}
}

// IsEnd reports whether k closes a structural scope.
func (k Kind) IsEnd() bool {
	switch k {
	case KindSeqEnd, KindTupleEnd, KindTupleStructEnd, KindTupleVariantEnd, KindMapEnd, KindStructEnd, KindStructVariantEnd:
		return true
	default:
		return false
	}
}

// IsHeader reports whether k is a header kind that must be immediately
// followed by exactly one wrapped value's token sequence.
func (k Kind) IsHeader() bool {
	switch k {
	case KindSome, KindNewtypeStruct, KindNewtypeVariant:
		return true
	default:
		return false
	}
}

// End returns the end kind matching a begin kind. It returns KindInvalid
// when k is not a begin kind.
func (k Kind) End() Kind {
	switch k {
	case KindSeq:
		return KindSeqEnd
	case KindTuple:
		return KindTupleEnd
	case KindTupleStruct:
		return KindTupleStructEnd
	case KindTupleVariant:
		return KindTupleVariantEnd
	case KindMap:
		return KindMapEnd
	case KindStruct:
		return KindStructEnd
	case KindStructVariant:
		return KindStructVariantEnd
	default:
		return KindInvalid
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	name := string(d)
	for kind, kn := range kindNames {
		if kn == name {
			*k = kind
			return nil
		}
	}

	return fmt.Errorf("unknown token kind %q", name)
}
