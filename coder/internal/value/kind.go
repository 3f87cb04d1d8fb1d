package value

// Kind is the tag of a dynamic value node.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat32
	KindFloat64
	KindString
	KindBool
	KindNull
	KindPrimitiveList
	KindList
	KindMap
)

var kindNames = [...]string{
	KindInt:           "Int",
	KindFloat32:       "Float32",
	KindFloat64:       "Float64",
	KindString:        "String",
	KindBool:          "Bool",
	KindNull:          "Null",
	KindPrimitiveList: "PrimitiveList",
	KindList:          "List",
	KindMap:           "Map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}
