// Package fuzztests houses Go fuzz harnesses for the source -> lexer -> stream
// path. They guard against panics on arbitrary input and check that every
// lexed sequence forms a valid stream whose splits partition it.
package fuzztests
