package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.tok", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("test.tok", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("test.tok")
	if !exists || latestID != id2 {
		t.Errorf("Expected latest ID %d, got %d (exists=%v)", id2, latestID, exists)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("Expected old version to stay available, got %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 files, got %d", fs.Len())
	}
	if fs.Get(5) != nil {
		t.Error("Expected nil for unknown FileID")
	}
}

func TestFilePosition(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("pos.tok", []byte("ab\ncd\n\nxyz")))

	tests := []struct {
		off  uint32
		want Position
	}{
		{0, Position{Offset: 0, Line: 1, Col: 1}},
		{1, Position{Offset: 1, Line: 1, Col: 2}},
		{2, Position{Offset: 2, Line: 1, Col: 3}}, // the newline itself
		{3, Position{Offset: 3, Line: 2, Col: 1}},
		{6, Position{Offset: 6, Line: 3, Col: 1}},
		{7, Position{Offset: 7, Line: 4, Col: 1}},
		{10, Position{Offset: 10, Line: 4, Col: 4}}, // end of file
	}

	for _, tt := range tests {
		if got := f.Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}

	span := f.SpanOf(3, 5)
	if span.File != f.ID || span.Start.Line != 2 || span.End.Col != 3 {
		t.Errorf("SpanOf(3, 5) = %+v", span)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("lines.tok", []byte("first\nsecond\n\nlast")))

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, ""},
		{4, "last"},
		{5, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestLoadNormalizesContent(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		content   []byte
		opts      LoadOptions
		want      string
		wantFlags FileFlags
	}{
		{
			name:    "plain",
			content: []byte("a b"),
			want:    "a b",
		},
		{
			name:      "bom",
			content:   []byte("\xEF\xBB\xBFa b"),
			want:      "a b",
			wantFlags: FileHadBOM,
		},
		{
			name:      "crlf",
			content:   []byte("a\r\nb\rc"),
			want:      "a\nb\rc",
			wantFlags: FileNormalizedCRLF,
		},
		{
			name:      "nfc",
			content:   []byte("e\u0301"),
			opts:      LoadOptions{NormalizeNFC: true},
			want:      "\u00e9",
			wantFlags: FileNormalizedNFC,
		},
		{
			name:    "nfc disabled",
			content: []byte("e\u0301"),
			want:    "e\u0301",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".tok")
			if err := os.WriteFile(path, tt.content, 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
			fs := NewFileSet()
			id, err := fs.Load(path, tt.opts)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			f := fs.Get(id)
			if string(f.Content) != tt.want {
				t.Errorf("content = %q, want %q", f.Content, tt.want)
			}
			if f.Flags != tt.wantFlags {
				t.Errorf("flags = %b, want %b", f.Flags, tt.wantFlags)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.tok"), LoadOptions{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
