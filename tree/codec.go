package tree

import (
	"github.com/wippyai/dictcoder/coder"
)

// EncodeTo writes maps through a keyed container, lists through an unkeyed
// container and everything else as a single value.
func (n *Node) EncodeTo(e *coder.Encoder) error {
	switch n.kind {
	case KindMap:
		c := e.Container()
		for _, k := range n.Keys() {
			if err := c.Encode(k, n.m[k]); err != nil {
				return err
			}
		}
		return nil
	case KindList:
		c := e.UnkeyedContainer()
		for _, item := range n.list {
			if err := c.Encode(item); err != nil {
				return err
			}
		}
		return nil
	}

	c := e.SingleValueContainer()
	switch v := n.scalar.(type) {
	case nil:
		c.EncodeNil()
	case bool:
		c.EncodeBool(v)
	case int:
		c.EncodeInt(v)
	case float32:
		c.EncodeFloat32(v)
	case float64:
		c.EncodeFloat64(v)
	case string:
		c.EncodeString(v)
	default:
		return c.Encode(v)
	}
	return nil
}

// DecodeFrom tries each shape of the current value: a keyed container first,
// then an unkeyed one, then each scalar type in turn.
func (n *Node) DecodeFrom(d *coder.Decoder) error {
	if c, err := d.Container(); err == nil {
		return n.decodeMap(c)
	}
	if c, err := d.UnkeyedContainer(); err == nil {
		return n.decodeList(c)
	}
	return n.decodeScalar(d.SingleValueContainer())
}

func (n *Node) decodeMap(c *coder.KeyedDecodingContainer) error {
	keys := c.AllKeys()
	*n = Node{kind: KindMap, m: make(map[string]*Node, len(keys))}
	for _, k := range keys {
		child := &Node{}
		if err := c.Decode(k, child); err != nil {
			return err
		}
		n.m[k] = child
	}
	return nil
}

func (n *Node) decodeList(c *coder.UnkeyedDecodingContainer) error {
	*n = Node{kind: KindList, list: make([]*Node, 0, c.Count())}
	for !c.IsAtEnd() {
		child, err := decodeElement(c)
		if err != nil {
			return err
		}
		n.list = append(n.list, child)
	}
	return nil
}

// decodeElement relies on failed reads leaving the cursor in place, so each
// candidate type is tried against the same element.
func decodeElement(c *coder.UnkeyedDecodingContainer) (*Node, error) {
	if c.DecodeNil() {
		return Null(), nil
	}
	if v, err := c.DecodeBool(); err == nil {
		return Bool(v), nil
	}
	if v, err := c.DecodeInt(); err == nil {
		return Int(v), nil
	}
	if v, err := c.DecodeFloat64(); err == nil {
		return Float64(v), nil
	}
	if v, err := c.DecodeFloat32(); err == nil {
		return Float32(v), nil
	}
	if v, err := c.DecodeString(); err == nil {
		return String(v), nil
	}
	if nested, err := c.NestedContainer(); err == nil {
		child := &Node{}
		return child, child.decodeMap(nested)
	}
	if nested, err := c.NestedUnkeyedContainer(); err == nil {
		child := &Node{}
		return child, child.decodeList(nested)
	}
	var raw any
	if err := c.Decode(&raw); err != nil {
		return nil, err
	}
	return Raw(raw), nil
}

func (n *Node) decodeScalar(c *coder.SingleValueDecodingContainer) error {
	if c.DecodeNil() {
		*n = Node{}
		return nil
	}
	if v, err := c.DecodeBool(); err == nil {
		*n = *Bool(v)
		return nil
	}
	if v, err := c.DecodeInt(); err == nil {
		*n = *Int(v)
		return nil
	}
	if v, err := c.DecodeFloat64(); err == nil {
		*n = *Float64(v)
		return nil
	}
	if v, err := c.DecodeFloat32(); err == nil {
		*n = *Float32(v)
		return nil
	}
	if v, err := c.DecodeString(); err == nil {
		*n = *String(v)
		return nil
	}
	var raw any
	if err := c.Decode(&raw); err != nil {
		return err
	}
	*n = *Raw(raw)
	return nil
}
