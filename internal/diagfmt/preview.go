package diagfmt

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"macroessentials/internal/diag"
	"macroessentials/internal/source"
)

// editPreview holds the lines touched by one text edit, before and after it.
type editPreview struct {
	before []string
	after  []string
}

func previewEdit(fs *source.FileSet, edit diag.TextEdit) (editPreview, error) {
	if fs == nil {
		return editPreview{}, errors.New("nil FileSet")
	}
	if int(edit.Span.File) >= fs.Len() {
		return editPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	f := fs.Get(edit.Span.File)
	start, end := fs.Resolve(edit.Span)
	from := lineStart(f, start.Line)
	to := lineEnd(f, max(start.Line, end.Line))
	if edit.Span.End < edit.Span.Start || edit.Span.Start < from || edit.Span.End > to {
		return editPreview{}, fmt.Errorf("edit span %s out of range for preview block", edit.Span)
	}

	block := f.Content[from:to]
	var after strings.Builder
	after.Write(block[:edit.Span.Start-from])
	after.WriteString(edit.NewText)
	after.Write(block[edit.Span.End-from:])

	return editPreview{
		before: previewLines(string(block)),
		after:  previewLines(after.String()),
	}, nil
}

func previewLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// lineStart returns the offset of the first byte of a 1-based line.
func lineStart(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if i := int(line) - 2; i < len(f.LineIdx) {
		return f.LineIdx[i] + 1
	}
	return contentLen(f)
}

// lineEnd returns the offset of the '\n' closing a 1-based line, or EOF.
func lineEnd(f *source.File, line uint32) uint32 {
	if i := int(line) - 1; i >= 0 && i < len(f.LineIdx) {
		return f.LineIdx[i]
	}
	return contentLen(f)
}

func contentLen(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}
