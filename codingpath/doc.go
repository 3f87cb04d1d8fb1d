// Package codingpath records how an encoder or decoder reached the value it is
// working on: a chain of map keys and list indices.
//
// Nodes are immutable and share their parent chain, so extending a path while
// descending into a nested value allocates a single node. Depth is stored at
// construction and is used by the encoder to check that every value asks for
// at most one container. Materializing (Segments, Strings) walks the parent
// links and is only done for diagnostics.
package codingpath
