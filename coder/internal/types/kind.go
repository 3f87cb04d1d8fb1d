package types

// Kind is the shape of a Go type as seen by the engines.
type Kind uint8

const (
	KindUnsupported Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat32
	KindFloat64
	KindString
	KindDate
	KindBlob
	KindURL
	KindPrimitiveList
	KindRecord
	KindStringMap
	KindTextMap
	KindIntMap
	KindEntryMap
	KindSequence
	KindPointer
	KindInterface
)

var kindNames = [...]string{
	KindUnsupported:   "unsupported",
	KindBool:          "bool",
	KindInt:           "int",
	KindUint:          "uint",
	KindFloat32:       "float32",
	KindFloat64:       "float64",
	KindString:        "string",
	KindDate:          "date",
	KindBlob:          "blob",
	KindURL:           "url",
	KindPrimitiveList: "primitive_list",
	KindRecord:        "record",
	KindStringMap:     "string_map",
	KindTextMap:       "text_map",
	KindIntMap:        "int_map",
	KindEntryMap:      "entry_map",
	KindSequence:      "sequence",
	KindPointer:       "pointer",
	KindInterface:     "interface",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}
