package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"tokstream/internal/source"
	"tokstream/internal/token"
)

type kind uint8

func sample() []token.Token[kind] {
	sp := func(file source.FileID, start, end uint32) source.Span {
		return source.Span{
			File:  file,
			Start: source.Position{Offset: start, Line: 1, Col: start + 1},
			End:   source.Position{Offset: end, Line: 1, Col: end + 1},
		}
	}
	return []token.Token[kind]{
		token.New(kind(1), sp(3, 0, 2), "fn"),
		token.New(kind(2), sp(3, 3, 7), "main"),
		token.New(kind(5), sp(3, 7, 8), ""),
	}
}

func TestEncodeDecode(t *testing.T) {
	key := KeyFor([]byte("fn main("), "keywords=fn")
	var buf bytes.Buffer
	if err := Encode(&buf, New("main.tok", key, sample())); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	snap, err := Decode[kind](&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if snap.Path != "main.tok" || snap.Key != key || snap.Schema != SchemaVersion {
		t.Errorf("header = %+v", snap)
	}
	want := sample()
	if len(snap.Tokens) != len(want) {
		t.Fatalf("tokens = %v", snap.Tokens)
	}
	for i := range want {
		if snap.Tokens[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, snap.Tokens[i], want[i])
		}
	}
}

func TestDecodeRejectsOtherSchema(t *testing.T) {
	snap := New("x.tok", Key{}, sample())
	snap.Schema = SchemaVersion + 1
	data, err := msgpack.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode[kind](bytes.NewReader(data)); err == nil {
		t.Error("Decode should reject a different schema")
	}
	if _, err := Decode[kind](bytes.NewReader([]byte{0xc1})); err == nil {
		t.Error("Decode should reject garbage")
	}
}

func TestKeyFor(t *testing.T) {
	a := KeyFor([]byte("x"), "b", "a")
	b := KeyFor([]byte("x"), "a", "b")
	if a != b {
		t.Error("setting order must not change the key")
	}
	if a == KeyFor([]byte("x"), "a") {
		t.Error("settings must change the key")
	}
	if a == KeyFor([]byte("y"), "a", "b") {
		t.Error("content must change the key")
	}
	if len(a.String()) != 64 {
		t.Errorf("key string = %q", a.String())
	}
}

func TestRelabel(t *testing.T) {
	toks := sample()
	Relabel(toks, 9)
	for _, tok := range toks {
		if tok.Span.File != 9 {
			t.Errorf("span file = %d", tok.Span.File)
		}
	}
}

func TestDiskCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := OpenDiskCache[kind](dir)
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	key := KeyFor([]byte("content"))

	if _, ok, err := c.Get(key); ok || err != nil {
		t.Fatalf("Get on empty cache = %v, %v", ok, err)
	}
	if err := c.Put(New("a.tok", key, sample())); err != nil {
		t.Fatalf("Put: %v", err)
	}
	snap, ok, err := c.Get(key)
	if !ok || err != nil {
		t.Fatalf("Get after Put = %v, %v", ok, err)
	}
	if len(snap.Tokens) != 3 || snap.Tokens[1].Text != "main" {
		t.Errorf("cached tokens = %v", snap.Tokens)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "tokens"))
	if err != nil || len(entries) != 1 {
		t.Errorf("cache dir entries = %v, %v; temp files must not linger", entries, err)
	}

	if err := os.WriteFile(c.pathFor(key), []byte("junk"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(key); ok || err != nil {
		t.Errorf("corrupt entry should be a miss, got %v, %v", ok, err)
	}

	if err := c.Put(New("a.tok", key, sample())); err != nil {
		t.Fatal(err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok, _ := c.Get(key); ok {
		t.Error("DropAll should clear entries")
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q", c.Dir())
	}

	var nilCache *DiskCache[kind]
	if err := nilCache.Put(New("a", key, sample())); err != nil {
		t.Error("nil cache Put should be a no-op")
	}
}

func TestDiskCache_DropAllKeepsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("keep me"), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := OpenDiskCache[kind](dir)
	if err != nil {
		t.Fatal(err)
	}
	key := KeyFor([]byte("content"))
	if err := c.Put(New("a.tok", key, sample())); err != nil {
		t.Fatal(err)
	}

	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if data, err := os.ReadFile(notes); err != nil || string(data) != "keep me" {
		t.Fatalf("file outside the tokens dir was touched: %q, %v", data, err)
	}
	if _, ok, _ := c.Get(key); ok {
		t.Error("DropAll should clear entries")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "notes.txt" {
		t.Errorf("cache root entries after DropAll = %v", entries)
	}

	// a second drop with nothing cached is fine, and Put recreates the dir
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll on empty cache: %v", err)
	}
	if err := c.Put(New("a.tok", key, sample())); err != nil {
		t.Fatalf("Put after DropAll: %v", err)
	}
}
