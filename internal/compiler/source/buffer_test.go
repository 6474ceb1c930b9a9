package source

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

type fakeFS struct {
	files map[string]string
}

func (f fakeFS) Open(name string) (io.ReadCloser, error) {
	content, ok := f.files[name]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader([]byte(content))), nil
}

func TestNewFromFileRejectsBadExtension(t *testing.T) {
	fs := fakeFS{files: map[string]string{"foo.txt": "let x: int = 1;"}}
	if _, err := NewFromFile(fs, "foo.txt"); err == nil {
		t.Fatal("expected an error for unsupported extension")
	}
}

func TestNewFromFileRejectsEmpty(t *testing.T) {
	fs := fakeFS{files: map[string]string{"empty.z": ""}}
	if _, err := NewFromFile(fs, "empty.z"); err == nil {
		t.Fatal("expected an error for empty file")
	}
}

func TestNewFromFileAcceptsZivExtension(t *testing.T) {
	fs := fakeFS{files: map[string]string{"main.ziv": "let x: int = 1;"}}
	b, err := NewFromFile(fs, "main.ziv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.IsRegularFile() {
		t.Error("expected IsRegularFile to be true")
	}
	if b.Filename() != "main.ziv" {
		t.Errorf("Filename() = %q, want %q", b.Filename(), "main.ziv")
	}
}

func TestNewFromStdinIgnoresExtension(t *testing.T) {
	b, err := NewFromStdin(strings.NewReader("fn add(): int:\n    return 1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.IsRegularFile() {
		t.Error("expected IsRegularFile to be false for stdin")
	}
}

func TestLine(t *testing.T) {
	content := "fn add(a: int, b: int) -> int:\n    return a + b\n"
	b, err := newBuffer("test.z", []byte(content), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		line int
		want string
	}{
		{1, "fn add(a: int, b: int) -> int:"},
		{2, "    return a + b"},
		{3, ""},
		{0, ""},
	}

	for _, tt := range tests {
		got := b.Line(tt.line)
		if got != tt.want {
			t.Errorf("Line(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestLineExcludesTrailingNewline(t *testing.T) {
	b, err := newBuffer("test.z", []byte("a\r\nb\n"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := b.Line(1); got != "a" {
		t.Errorf("Line(1) = %q, want %q", got, "a")
	}
	if got := b.Line(2); got != "b" {
		t.Errorf("Line(2) = %q, want %q", got, "b")
	}
}

func TestLineForOffset(t *testing.T) {
	content := "one\ntwo\nthree\n"
	b, err := newBuffer("test.z", []byte(content), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		offset int
		want   int
	}{
		{0, 1},
		{3, 1},
		{4, 2},
		{8, 3},
	}
	for _, tt := range tests {
		got := b.LineForOffset(tt.offset)
		if got != tt.want {
			t.Errorf("LineForOffset(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestLinesUpToLineCountAreNonEmpty(t *testing.T) {
	content := "a\nb\nc\nd\n"
	b, err := newBuffer("test.z", []byte(content), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i <= b.LineCount(); i++ {
		if b.Line(i) == "" && i != b.LineCount() {
			t.Errorf("line %d unexpectedly empty", i)
		}
	}
}
