// Package value implements the intermediate tree the encoder builds before it
// is flattened into generic containers.
//
// A Value is a closed tagged union. Scalars are immutable; List and Map nodes
// are mutable only through Insert, Append and InsertAt, and the encoder holds
// them by pointer so a nested container can be filled after it has been
// attached to its parent.
package value
