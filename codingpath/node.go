package codingpath

import (
	"strconv"
	"strings"
)

// Segment is one step of a materialized coding path.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// String renders index segments as "Index N" and keys verbatim.
func (s Segment) String() string {
	if s.IsIndex {
		return "Index " + strconv.Itoa(s.Index)
	}
	return s.Key
}

// Node is an immutable link in a coding path. Children point at their parent,
// so appending never copies the existing chain. A nil *Node is the root.
type Node struct {
	parent  *Node
	key     string
	index   int
	depth   int
	isIndex bool
}

// Root returns the empty path.
func Root() *Node {
	return nil
}

// AppendKey returns a child node for a map key.
func (n *Node) AppendKey(key string) *Node {
	return &Node{parent: n, key: key, depth: n.Depth() + 1}
}

// AppendIndex returns a child node for a list index.
func (n *Node) AppendIndex(index int) *Node {
	return &Node{parent: n, index: index, isIndex: true, depth: n.Depth() + 1}
}

// Depth is the number of segments between the root and n.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	return n.depth
}

// Parent returns the enclosing node, nil for the root and its direct children.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Last returns the final segment; ok is false for the root.
func (n *Node) Last() (seg Segment, ok bool) {
	if n == nil {
		return Segment{}, false
	}
	return n.segment(), true
}

func (n *Node) segment() Segment {
	if n.isIndex {
		return Segment{Index: n.index, IsIndex: true}
	}
	return Segment{Key: n.key}
}

// Segments materializes the path root-first.
func (n *Node) Segments() []Segment {
	if n == nil {
		return nil
	}
	segs := make([]Segment, n.depth)
	for x := n; x != nil; x = x.parent {
		segs[x.depth-1] = x.segment()
	}
	return segs
}

// Strings materializes the path as strings, the form used in error reports.
func (n *Node) Strings() []string {
	if n == nil {
		return nil
	}
	out := make([]string, n.depth)
	for x := n; x != nil; x = x.parent {
		out[x.depth-1] = x.segment().String()
	}
	return out
}

// String renders a dotted path with bracketed indices, e.g. "address.lines[2]".
func (n *Node) String() string {
	if n == nil {
		return "$"
	}
	var b strings.Builder
	for i, seg := range n.Segments() {
		if seg.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Key)
	}
	return b.String()
}
