// Package source owns the bytes of a single compilation unit and the
// line index used to render diagnostics.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// validExtensions are the only file extensions accepted by NewFromFile.
var validExtensions = []string{".z", ".ziv"}

// Buffer is an immutable view over a compilation unit's bytes. It is
// created once at the start of the pipeline and referenced, never
// copied, by every downstream stage.
type Buffer struct {
	filename    string
	contents    []byte
	regularFile bool
	lineOffsets []int // byte offset of the first byte of each line
}

// NewFromFile reads filename through fs and wraps it in a Buffer. It
// rejects files whose extension is not in {.z, .ziv} and files of
// size 0, returning an error the caller is expected to surface.
func NewFromFile(fs FileSystem, filename string) (*Buffer, error) {
	if !hasValidExtension(filename) {
		return nil, fmt.Errorf("source: %s: no buffer (unsupported extension)", filename)
	}

	f, err := fs.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", filename, err)
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", filename, err)
	}

	return newBuffer(filename, contents, true)
}

// NewFromStdin reads all of stdin into a Buffer. It is never rejected
// on extension grounds, but is still rejected when empty.
func NewFromStdin(r io.Reader) (*Buffer, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("source: <stdin>: %w", err)
	}
	return newBuffer("<stdin>", contents, false)
}

func newBuffer(filename string, contents []byte, regularFile bool) (*Buffer, error) {
	if len(contents) == 0 {
		return nil, fmt.Errorf("source: %s: no buffer (empty file)", filename)
	}

	b := &Buffer{
		filename:    filename,
		contents:    contents,
		regularFile: regularFile,
	}
	b.buildLineIndex()
	return b, nil
}

func hasValidExtension(filename string) bool {
	for _, ext := range validExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

func (b *Buffer) buildLineIndex() {
	b.lineOffsets = []int{0}
	offset := 0
	for {
		idx := bytes.IndexByte(b.contents[offset:], '\n')
		if idx < 0 {
			break
		}
		offset += idx + 1
		if offset < len(b.contents) {
			b.lineOffsets = append(b.lineOffsets, offset)
		}
	}
}

// Filename returns the name the buffer was constructed with.
func (b *Buffer) Filename() string { return b.filename }

// Contents returns the raw bytes of the compilation unit.
func (b *Buffer) Contents() []byte { return b.contents }

// IsRegularFile reports whether the buffer was loaded from a regular
// file on disk, as opposed to standard input.
func (b *Buffer) IsRegularFile() bool { return b.regularFile }

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int { return len(b.lineOffsets) }

// Line returns the 1-based line's contents, excluding the trailing
// newline. Out-of-range line numbers return an empty string. Lookup
// is O(1), a direct index into the precomputed offset table.
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lineOffsets) {
		return ""
	}
	start := b.lineOffsets[n-1]
	var end int
	if n < len(b.lineOffsets) {
		end = b.lineOffsets[n] - 1 // exclude '\n'
	} else {
		end = len(b.contents)
		if end > start && b.contents[end-1] == '\n' {
			end--
		}
	}
	if end > start && b.contents[end-1] == '\r' {
		end--
	}
	if end < start {
		end = start
	}
	return string(b.contents[start:end])
}

// LineForOffset returns the 1-based line number containing the given
// byte offset, via binary search over the offset table.
func (b *Buffer) LineForOffset(offset int) int {
	i := sort.SearchInts(b.lineOffsets, offset+1) - 1
	if i < 0 {
		i = 0
	}
	return i + 1
}

// FileSystem abstracts file opening so the source package never
// imports os directly in its exported surface, keeping it testable
// against an in-memory filesystem.
type FileSystem interface {
	Open(name string) (io.ReadCloser, error)
}

// OSFileSystem is the FileSystem backed by the real operating system.
type OSFileSystem struct{}

func (OSFileSystem) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}
