package source

import "fmt"

// Location identifies a position and span within a source buffer. Two
// locations are equal iff all fields are equal.
type Location struct {
	File   string
	Line   int // 1-based
	Column int // 1-based
	Offset int // byte offset
	Length int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Less gives Location a total order: file, then line, then column,
// then offset, then length.
func (l Location) Less(other Location) bool {
	if l.File != other.File {
		return l.File < other.File
	}
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	if l.Column != other.Column {
		return l.Column < other.Column
	}
	if l.Offset != other.Offset {
		return l.Offset < other.Offset
	}
	return l.Length < other.Length
}
