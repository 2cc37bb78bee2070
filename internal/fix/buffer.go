package fix

import (
	"os"
	"path/filepath"
	"slices"

	"macroessentials/internal/diag"
	"macroessentials/internal/source"
)

const reasonConflict = "conflict"

// fileBuffer is the edited content of one file. applied keeps the edits in
// original-file coordinates, sorted by start, so later edits can be shifted
// into the current content.
type fileBuffer struct {
	file    *source.File
	content []byte
	applied []diag.TextEdit
}

func newFileBuffer(file *source.File) *fileBuffer {
	return &fileBuffer{file: file, content: file.Content}
}

// with returns a copy of the buffer with edits applied, or a skip reason.
// Edits are applied back to front so earlier offsets stay valid.
func (b *fileBuffer) with(edits []diag.TextEdit) (*fileBuffer, string) {
	for _, prev := range b.applied {
		for _, e := range edits {
			if spansConflict(prev, e) {
				return nil, reasonConflict
			}
		}
	}

	ordered := slices.Clone(edits)
	slices.SortStableFunc(ordered, func(x, y diag.TextEdit) int {
		if x.Span.Start != y.Span.Start {
			return int(y.Span.Start) - int(x.Span.Start)
		}
		return int(y.Span.End) - int(x.Span.End)
	})

	next := &fileBuffer{
		file:    b.file,
		content: slices.Clone(b.content),
		applied: slices.Clone(b.applied),
	}
	for _, e := range ordered {
		start := int(e.Span.Start) + shift(next.applied, int(e.Span.Start))
		end := int(e.Span.End) + shift(next.applied, int(e.Span.End))
		if start < 0 || end < start || end > len(next.content) {
			return nil, "edit span out of range"
		}
		if e.OldText != "" && string(next.content[start:end]) != e.OldText {
			return nil, "existing text does not match expected content"
		}
		next.content = slices.Concat(next.content[:start:start], []byte(e.NewText), next.content[end:])
		next.applied = insertSorted(next.applied, e)
	}
	return next, ""
}

// shift is how far pos in the original file moved after the applied edits
// that end at or before it.
func shift(applied []diag.TextEdit, pos int) int {
	delta := 0
	for _, e := range applied {
		if int(e.Span.Start) > pos {
			break
		}
		if int(e.Span.End) <= pos {
			delta += len(e.NewText) - int(e.Span.End-e.Span.Start)
		}
	}
	return delta
}

func insertSorted(edits []diag.TextEdit, edit diag.TextEdit) []diag.TextEdit {
	i, _ := slices.BinarySearchFunc(edits, edit, func(x, y diag.TextEdit) int {
		if x.Span.Start != y.Span.Start {
			return int(x.Span.Start) - int(y.Span.Start)
		}
		return int(x.Span.End) - int(y.Span.End)
	})
	return slices.Insert(edits, i, edit)
}

// spansConflict reports whether two text edits' spans overlap.
// Spans are treated as half-open intervals [Start, End). Two insertions
// never conflict; an insertion conflicts with a replacement covering it.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	switch {
	case aStart == aEnd && bStart == bEnd:
		return false
	case aStart == aEnd:
		return bStart <= aStart && aStart < bEnd
	case bStart == bEnd:
		return aStart <= bStart && bStart < aEnd
	default:
		return aStart < bEnd && bStart < aEnd
	}
}

// writeAtomic replaces path through a temp file in the same directory and
// keeps the original permissions.
func writeAtomic(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
