package tree

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/wippyai/dictcoder/coder"
	"github.com/wippyai/dictcoder/codingpath"
)

// Node is a schemaless document. It implements the coding contract, so any
// container can be decoded into a Node and encoded back without a Go type
// describing it. The zero Node is null.
type Node struct {
	scalar any
	m      map[string]*Node
	list   []*Node
	kind   Kind
}

// Child is one entry of a map or list node.
type Child struct {
	Node    *Node
	Segment codingpath.Segment
}

func Null() *Node               { return &Node{} }
func Bool(v bool) *Node         { return &Node{kind: KindBool, scalar: v} }
func Int(v int) *Node           { return &Node{kind: KindInt, scalar: v} }
func Float32(v float32) *Node   { return &Node{kind: KindFloat32, scalar: v} }
func Float64(v float64) *Node   { return &Node{kind: KindFloat64, scalar: v} }
func String(v string) *Node     { return &Node{kind: KindString, scalar: v} }
func List(items ...*Node) *Node { return &Node{kind: KindList, list: items} }
func Raw(v any) *Node           { return &Node{kind: KindRaw, scalar: v} }

// Map returns a map node. A nil entries map is treated as empty.
func Map(entries map[string]*Node) *Node {
	if entries == nil {
		entries = map[string]*Node{}
	}
	return &Node{kind: KindMap, m: entries}
}

// FromContainer decodes a container into a Node.
func FromContainer(m map[string]any, opts coder.Options) (*Node, error) {
	n := &Node{}
	if err := coder.NewDecoder(opts).Decode(n, m); err != nil {
		return nil, err
	}
	return n, nil
}

// ToContainer encodes n, which must be a map node, back into a container.
func ToContainer(n *Node, opts coder.Options) (map[string]any, error) {
	return coder.NewEncoder(opts).Encode(n)
}

func (n *Node) Kind() Kind { return n.kind }

// Len is the number of children, zero for scalars.
func (n *Node) Len() int {
	switch n.kind {
	case KindMap:
		return len(n.m)
	case KindList:
		return len(n.list)
	}
	return 0
}

// Value returns the scalar payload, nil for null and container nodes.
func (n *Node) Value() any {
	return n.scalar
}

// Keys returns the keys of a map node in sorted order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, len(n.m))
	for k := range n.m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (n *Node) Get(key string) (*Node, bool) {
	c, ok := n.m[key]
	return c, ok
}

func (n *Node) At(i int) (*Node, bool) {
	if i < 0 || i >= len(n.list) {
		return nil, false
	}
	return n.list[i], true
}

// Children lists the entries of a container node, map keys in sorted order.
func (n *Node) Children() []Child {
	switch n.kind {
	case KindMap:
		out := make([]Child, 0, len(n.m))
		for _, k := range n.Keys() {
			out = append(out, Child{Segment: codingpath.Segment{Key: k}, Node: n.m[k]})
		}
		return out
	case KindList:
		out := make([]Child, len(n.list))
		for i, c := range n.list {
			out[i] = Child{Segment: codingpath.Segment{Index: i, IsIndex: true}, Node: c}
		}
		return out
	}
	return nil
}

// Lookup resolves a dotted path such as "address.lines[2]". "$" and the
// empty string name n itself.
func (n *Node) Lookup(path string) (*Node, bool) {
	segs, err := ParsePath(path)
	if err != nil {
		return nil, false
	}
	cur := n
	for _, s := range segs {
		var ok bool
		if s.IsIndex {
			cur, ok = cur.At(s.Index)
		} else {
			cur, ok = cur.Get(s.Key)
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// ParsePath splits a path in codingpath.Node.String form into segments.
func ParsePath(path string) ([]codingpath.Segment, error) {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	var segs []codingpath.Segment
	for path != "" {
		switch path[0] {
		case '[':
			end := strings.IndexByte(path, ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated index in %q", path)
			}
			i, err := strconv.Atoi(path[1:end])
			if err != nil {
				return nil, fmt.Errorf("bad index %q: %w", path[1:end], err)
			}
			segs = append(segs, codingpath.Segment{Index: i, IsIndex: true})
			path = path[end+1:]
		case '.':
			path = path[1:]
		default:
			end := strings.IndexAny(path, ".[")
			if end < 0 {
				end = len(path)
			}
			segs = append(segs, codingpath.Segment{Key: path[:end]})
			path = path[end:]
		}
	}
	return segs, nil
}

// Walk visits n and its descendants depth first, map keys in sorted order.
// Returning false from fn skips the children of that node.
func (n *Node) Walk(fn func(path *codingpath.Node, n *Node) bool) {
	n.walk(codingpath.Root(), fn)
}

func (n *Node) walk(path *codingpath.Node, fn func(*codingpath.Node, *Node) bool) {
	if !fn(path, n) {
		return
	}
	for _, c := range n.Children() {
		next := path.AppendKey(c.Segment.Key)
		if c.Segment.IsIndex {
			next = path.AppendIndex(c.Segment.Index)
		}
		c.Node.walk(next, fn)
	}
}

// Interface converts n back to plain Go values: map[string]any, []any and
// scalars.
func (n *Node) Interface() any {
	switch n.kind {
	case KindMap:
		out := make(map[string]any, len(n.m))
		for k, c := range n.m {
			out[k] = c.Interface()
		}
		return out
	case KindList:
		out := make([]any, len(n.list))
		for i, c := range n.list {
			out[i] = c.Interface()
		}
		return out
	}
	return n.scalar
}

// String renders scalars with fmt and containers as a short summary.
func (n *Node) String() string {
	switch n.kind {
	case KindNull:
		return "null"
	case KindMap:
		return fmt.Sprintf("map[%d]", len(n.m))
	case KindList:
		return fmt.Sprintf("list[%d]", len(n.list))
	case KindString:
		return strconv.Quote(n.scalar.(string))
	}
	return fmt.Sprint(n.scalar)
}
