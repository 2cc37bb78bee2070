package fix

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"macroessentials/internal/diag"
	"macroessentials/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first always-safe fix, or the first fix at
	// all when none is safe.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every always-safe fix that does not conflict.
	ApplyModeAll
	// ApplyModeID applies the fix named by ApplyOptions.TargetID.
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode ApplyMode
	// TargetID matches a fix ID or the string form of its message id.
	TargetID string
	// DryRun computes the new contents without writing files; virtual files
	// are accepted in this mode.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

func (r *ApplyResult) skip(f diag.Fix, reason string) {
	r.Skipped = append(r.Skipped, SkippedFix{ID: f.ID, Title: f.Title, Reason: reason})
}

// Apply collects fixes from diagnostics, selects a subset according to opts,
// and applies them. Fixes are applied one at a time against the contents
// produced by the previous ones; a fix whose edits overlap an applied edit or
// whose expected text is gone is skipped as a whole.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates := gatherCandidates(diagnostics, result)
	sortCandidates(candidates)
	selected := selectCandidates(candidates, opts, result)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	buffers := make(map[source.FileID]*fileBuffer)
	for _, cand := range selected {
		staged, reason := stage(fs, buffers, cand.fix.Edits, opts.DryRun)
		if reason != "" {
			result.skip(cand.fix, reason)
			continue
		}
		for id, st := range staged {
			buffers[id] = st
		}
		result.Applied = append(result.Applied, AppliedFix{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			PrimaryPath:   formatFilePath(fs, cand.diag.Primary.File),
			EditCount:     len(cand.fix.Edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	baseDir := fs.BaseDir()
	for _, buf := range buffers {
		if !opts.DryRun {
			if err := writeAtomic(buf.file.Path, buf.content); err != nil {
				return result, fmt.Errorf("write %s: %w", buf.file.Path, err)
			}
		}
		result.FileChanges = append(result.FileChanges, FileChange{
			Path:      buf.file.FormatPath("relative", baseDir),
			EditCount: len(buf.applied),
			Content:   buf.content,
		})
	}
	slices.SortFunc(result.FileChanges, func(a, b FileChange) int {
		return strings.Compare(a.Path, b.Path)
	})
	return result, nil
}

// stage applies edits on top of the current buffers and returns the updated
// buffers without touching the originals. A non-empty reason means the edits
// cannot be applied.
func stage(fs *source.FileSet, buffers map[source.FileID]*fileBuffer, edits []diag.TextEdit, dryRun bool) (map[source.FileID]*fileBuffer, string) {
	staged := make(map[source.FileID]*fileBuffer)
	for fileID, group := range groupEditsByFile(edits) {
		if int(fileID) >= fs.Len() {
			return nil, "target file is unknown"
		}
		file := fs.Get(fileID)
		if file.Flags&source.FileVirtual != 0 && !dryRun {
			return nil, "target file is virtual"
		}
		buf := buffers[fileID]
		if buf == nil {
			buf = newFileBuffer(file)
		}
		next, reason := buf.with(group)
		if reason != "" {
			if reason == reasonConflict {
				reason = fmt.Sprintf("conflicts with previously applied edits in %s", file.FormatPath("auto", fs.BaseDir()))
			}
			return nil, reason
		}
		staged[fileID] = next
	}
	return staged, ""
}

func groupEditsByFile(edits []diag.TextEdit) map[source.FileID][]diag.TextEdit {
	buckets := make(map[source.FileID][]diag.TextEdit)
	for _, edit := range edits {
		buckets[edit.Span.File] = append(buckets[edit.Span.File], edit)
	}
	return buckets
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	if fs == nil || int(fileID) >= fs.Len() {
		return ""
	}
	return fs.Get(fileID).FormatPath("auto", fs.BaseDir())
}
