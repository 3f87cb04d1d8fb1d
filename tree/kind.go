package tree

// Kind is the shape of a Node.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat32
	KindFloat64
	KindString
	KindList
	KindMap
	// KindRaw holds a container value with no generic shape, such as a
	// time.Time placed in a hand-built container.
	KindRaw
)

var kindNames = [...]string{
	KindNull:    "null",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindString:  "string",
	KindList:    "list",
	KindMap:     "map",
	KindRaw:     "raw",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsContainer reports whether nodes of this kind have children.
func (k Kind) IsContainer() bool {
	return k == KindList || k == KindMap
}
