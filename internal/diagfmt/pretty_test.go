package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"tokstream/internal/diag"
	"tokstream/internal/source"
)

func bagWith(t *testing.T, path, content string, lo, hi uint32, code diag.Code, msg string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual(path, []byte(content)))
	bag := diag.NewBag(10)
	diag.ReportError(diag.BagReporter{Bag: bag}, code, f.SpanOf(lo, hi), msg).
		WithNote(f.SpanOf(0, 1), "line starts here").
		Emit()
	return bag, fs
}

func TestPretty_Caret(t *testing.T) {
	bag, fs := bagWith(t, "src/test.tok", "let x = \"open\nnext\n", 8, 13, diag.LexUnterminatedString, "string is not terminated")

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "src/test.tok:1:9: ERROR LEX1002: string is not terminated\n" +
		"  1 | let x = \"open\n" +
		"    |         ^~~~~\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPretty_WideRunes(t *testing.T) {
	// 世 and 界 take two columns each
	bag, fs := bagWith(t, "w.tok", "世界 `", 7, 8, diag.LexUnknownChar, "unknown character")

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("short output:\n%s", buf.String())
	}
	if want := "    |      ^"; lines[2] != want {
		t.Errorf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPretty_NotesAndMax(t *testing.T) {
	bag, fs := bagWith(t, "a.tok", "abc\n", 1, 2, diag.SynUnexpectedToken, "unexpected token")
	diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.LexTokenTooLong, source.Span{}, "second").Emit()

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, Max: 1}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "note: a.tok:1:1: line starts here") {
		t.Errorf("note missing:\n%s", out)
	}
	if strings.Contains(out, "second") {
		t.Errorf("Max was ignored:\n%s", out)
	}
}

func TestPretty_Color(t *testing.T) {
	bag, fs := bagWith(t, "a.tok", "abc\n", 0, 1, diag.LexUnknownChar, "boom")

	var plain, colored bytes.Buffer
	if err := Pretty(&plain, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if err := Pretty(&colored, bag, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Error("plain output contains escape codes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("colored output has no escape codes")
	}
}

func TestFormatPath(t *testing.T) {
	tests := []struct {
		name string
		mode PathMode
		base string
		want string
	}{
		{"relative", PathModeRelative, "/home/user/project", "src/test.tok"},
		{"basename", PathModeBasename, "", "test.tok"},
		{"auto below base", PathModeAuto, "/home/user/project", "src/test.tok"},
		{"auto outside base", PathModeAuto, "/elsewhere", "/home/user/project/src/test.tok"},
		{"auto without base", PathModeAuto, "", "/home/user/project/src/test.tok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPath("/home/user/project/src/test.tok", tt.mode, tt.base); got != tt.want {
				t.Errorf("formatPath = %q, want %q", got, tt.want)
			}
		})
	}
}
