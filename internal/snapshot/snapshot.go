// Package snapshot serializes lexed token sequences with msgpack so a stream
// can be rebuilt without lexing the file again.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"tokstream/internal/source"
	"tokstream/internal/token"
)

// SchemaVersion changes whenever the encoded layout changes.
const SchemaVersion uint16 = 1

// Key identifies a token sequence: file content plus lexer settings.
type Key [32]byte

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// KeyFor hashes content together with the settings that affect lexing.
// Settings are sorted, so their order does not matter.
func KeyFor(content []byte, settings ...string) Key {
	sorted := append([]string(nil), settings...)
	sort.Strings(sorted)

	h := sha256.New()
	h.Write(content)
	for _, s := range sorted {
		h.Write([]byte{0})
		h.Write([]byte(s))
	}
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Snapshot is the encoded form of one file's tokens.
type Snapshot[K any] struct {
	Schema uint16           `msgpack:"schema"`
	Path   string           `msgpack:"path"`
	Key    Key              `msgpack:"key"`
	Tokens []token.Token[K] `msgpack:"tokens"`
}

// New builds a snapshot of tokens with the current schema.
func New[K any](path string, key Key, tokens []token.Token[K]) *Snapshot[K] {
	return &Snapshot[K]{Schema: SchemaVersion, Path: path, Key: key, Tokens: tokens}
}

// Encode writes snap to w.
func Encode[K any](w io.Writer, snap *Snapshot[K]) error {
	if err := msgpack.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Decode reads a snapshot from r and rejects other schema versions.
func Decode[K any](r io.Reader) (*Snapshot[K], error) {
	var snap Snapshot[K]
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Schema != SchemaVersion {
		return nil, fmt.Errorf("decode snapshot: schema %d, want %d", snap.Schema, SchemaVersion)
	}
	return &snap, nil
}

// Relabel points every token span at file id. FileIDs are per FileSet, so
// tokens read back from disk must be rebound to the file they were loaded for.
func Relabel[K any](tokens []token.Token[K], id source.FileID) {
	for i := range tokens {
		tokens[i].Span.File = id
	}
}
