package coder

import (
	"github.com/wippyai/dictcoder/errors"
)

// stack holds the containers of the values currently being encoded or
// decoded. Its length tracks the depth of the coding path.
type stack[T any] struct {
	items []T
}

func (s *stack[T]) push(v T) {
	s.items = append(s.items, v)
}

func (s *stack[T]) pop() T {
	n := len(s.items)
	if n == 0 {
		errors.Violation(nil, "pop on empty container stack")
	}
	v := s.items[n-1]
	var zero T
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return v
}

func (s *stack[T]) top() (T, bool) {
	n := len(s.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	return s.items[n-1], true
}

func (s *stack[T]) len() int {
	return len(s.items)
}

func (s *stack[T]) reset() {
	clear(s.items)
	s.items = s.items[:0]
}
