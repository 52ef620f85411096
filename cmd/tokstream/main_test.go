package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tokstream/internal/diagfmt"
	"tokstream/internal/lexer"
	"tokstream/internal/source"
	"tokstream/internal/stream"
)

func testStream(t *testing.T, src string) (stream.Stream[lexer.Kind], *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.tok", []byte(src)))
	return stream.New(lexer.Tokenize(f, lexer.Options{})), fs
}

// runCLI executes the root command with an explicit empty config so that no
// tokstream.toml above the test directory is picked up.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "tokstream.toml")
	if err := os.WriteFile(cfg, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", cfg, "--color", "off"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "in.tok")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestFindAll(t *testing.T) {
	s, _ := testStream(t, "a + b + c")
	isPlus := func(tok lexer.Token) bool { return tok.Text == "+" }

	got := findAll(stream.Wrap(s), isPlus, 0)
	if len(got) != 2 {
		t.Fatalf("found %d, want 2", len(got))
	}
	for i, want := range []int{1, 3} {
		if off := got[i].Stream().Offset(); off != want {
			t.Errorf("match %d at %d, want %d", i, off, want)
		}
	}
	if got := findAll(stream.Wrap(s), isPlus, 1); len(got) != 1 {
		t.Errorf("limit ignored: %d matches", len(got))
	}
	if got := findAll(stream.Wrap(stream.Stream[lexer.Kind]{}), isPlus, 0); len(got) != 0 {
		t.Errorf("empty stream matched %d", len(got))
	}
}

func TestWriteView(t *testing.T) {
	s, fs := testStream(t, "ab cd")
	consumed, rest := s.SplitAt(5)

	var buf bytes.Buffer
	if err := writeView(&buf, "consumed", consumed, fs); err != nil {
		t.Fatal(err)
	}
	if err := writeView(&buf, "rest", rest, fs); err != nil {
		t.Fatal(err)
	}
	want := "consumed stream[0:2/2] t.tok:1:1-1:6\n" +
		"   0: Ident      \"ab\" at 1:1-1:3\n" +
		"   1: Ident      \"cd\" at 1:4-1:6\n" +
		"rest stream[2:2/2] empty at t.tok:1:6-1:6\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestCLI_TokenizeJSON(t *testing.T) {
	path := writeSource(t, "let x # c\n")
	out, _, err := runCLI(t, "tokenize", "--format", "json", "--keyword", "let", path)
	if err != nil {
		t.Fatal(err)
	}
	var toks []diagfmt.TokenOutput
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(toks) != 2 || toks[0].Kind != "Keyword" || toks[1].Text != "x" {
		t.Errorf("tokens = %+v", toks)
	}
}

func TestCLI_SpanPastEnd(t *testing.T) {
	path := writeSource(t, "a b")
	out, _, err := runCLI(t, "span", "--skip", "5", "--count", "2", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "no tokens at ") || !strings.Contains(out, ":1:4-1:4") {
		t.Errorf("out = %q", out)
	}
}

func TestCLI_LexErrorsSetStatus(t *testing.T) {
	path := writeSource(t, "a ` b")
	_, stderr, err := runCLI(t, "tokenize", "--format", "pretty", path)
	if !errors.Is(err, errHasErrors) {
		t.Fatalf("err = %v, want errHasErrors", err)
	}
	if !strings.Contains(stderr, "LEX1001") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestCLI_CacheDisabledWithoutDir(t *testing.T) {
	for _, sub := range []string{"dir", "clear"} {
		out, _, err := runCLI(t, "cache", sub)
		if err != nil {
			t.Fatalf("cache %s: %v", sub, err)
		}
		if strings.TrimSpace(out) != cacheDisabled {
			t.Errorf("cache %s = %q, want %q", sub, out, cacheDisabled)
		}
	}
}

func TestCLI_CacheClearKeepsOtherFiles(t *testing.T) {
	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set("cache-dir", "") })

	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, "a b")
	if _, _, err := runCLI(t, "--cache-dir", dir, "tokenize", "--format", "pretty", path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tokens")); err != nil {
		t.Fatalf("tokenize did not populate the cache: %v", err)
	}

	out, _, err := runCLI(t, "--cache-dir", dir, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "cleared ") {
		t.Errorf("out = %q", out)
	}
	if _, err := os.Stat(notes); err != nil {
		t.Errorf("cache clear removed an unrelated file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tokens")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("tokens dir still present: %v", err)
	}
}
