package coder

import (
	"sync"

	"github.com/wippyai/dictcoder/coder/internal/value"
)

const (
	// Pool limits to prevent memory bloat
	poolMaxDepth  = 256 // max retained stack capacity
	poolInitDepth = 16
)

var valueStackPool = sync.Pool{
	New: func() any {
		return &stack[*value.Value]{items: make([]*value.Value, 0, poolInitDepth)}
	},
}

var rawStackPool = sync.Pool{
	New: func() any {
		return &stack[any]{items: make([]any, 0, poolInitDepth)}
	},
}

func getValueStack() *stack[*value.Value] {
	return valueStackPool.Get().(*stack[*value.Value])
}

func putValueStack(s *stack[*value.Value]) {
	if s == nil || cap(s.items) > poolMaxDepth {
		return // reject oversized
	}
	s.reset()
	valueStackPool.Put(s)
}

func getRawStack() *stack[any] {
	return rawStackPool.Get().(*stack[any])
}

func putRawStack(s *stack[any]) {
	if s == nil || cap(s.items) > poolMaxDepth {
		return
	}
	s.reset()
	rawStackPool.Put(s)
}
