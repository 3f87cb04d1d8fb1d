// Package types classifies Go types into the shapes the coder engines know how
// to move in and out of generic containers.
//
// Classification is a pure function of the reflect.Type, so results are cached
// for the lifetime of the process. Element and key types are not classified
// eagerly; callers classify them when they reach them, which keeps recursive
// types such as type Tree []Tree finite.
package types
