package format

import (
	"strings"

	"macroessentials/internal/source"
)

// writer accumulates rendered text and copies source fragments.
type writer struct {
	fs  *source.FileSet
	buf strings.Builder
}

func (w *writer) WriteString(s string) {
	w.buf.WriteString(s)
}

// CopySpan copies the source text of sp; empty or foreign spans write nothing.
func (w *writer) CopySpan(sp source.Span) {
	if w.fs == nil || sp.Empty() || int(sp.File) >= w.fs.Len() {
		return
	}
	w.buf.WriteString(w.fs.Text(sp))
}

// CopyRange copies [start, end) of file.
func (w *writer) CopyRange(file source.FileID, start, end uint32) {
	if end <= start {
		return
	}
	w.CopySpan(source.Span{File: file, Start: start, End: end})
}

func (w *writer) String() string {
	return w.buf.String()
}
