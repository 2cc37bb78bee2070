package fix

import (
	"cmp"
	"fmt"
	"slices"

	"macroessentials/internal/diag"
)

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// gatherCandidates flattens the fixes of all diagnostics into candidates.
//
// Fixes without edits and fixes repeating an already seen ID are skipped.
// A fix without ID gets one derived from the diagnostic code, file, start
// position and fix index.
func gatherCandidates(diagnostics []diag.Diagnostic, res *ApplyResult) []candidate {
	var cands []candidate
	seen := make(map[string]struct{})
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				res.skip(f, "fix has no edits")
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			}
			if _, dup := seen[f.ID]; dup {
				res.skip(f, "duplicate fix id")
				continue
			}
			seen[f.ID] = struct{}{}
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands
}

// sortCandidates orders candidates by position of their diagnostic, then by
// insertion order; preferred fixes win ties.
func sortCandidates(candidates []candidate) {
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		pa, pb := a.diag.Primary, b.diag.Primary
		if c := cmp.Compare(pa.File, pb.File); c != 0 {
			return c
		}
		if c := cmp.Compare(pa.Start, pb.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(pa.End, pb.End); c != 0 {
			return c
		}
		if c := cmp.Compare(a.order, b.order); c != 0 {
			return c
		}
		if a.fix.IsPreferred != b.fix.IsPreferred {
			if a.fix.IsPreferred {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.fix.ID, b.fix.ID)
	})
}

func (c candidate) matches(target string) bool {
	return c.fix.ID == target || (!c.fix.MessageID.IsZero() && c.fix.MessageID.String() == target)
}

func selectCandidates(candidates []candidate, opts ApplyOptions, res *ApplyResult) []candidate {
	switch opts.Mode {
	case ApplyModeID:
		i := slices.IndexFunc(candidates, func(c candidate) bool { return c.matches(opts.TargetID) })
		if i < 0 {
			res.Skipped = append(res.Skipped, SkippedFix{ID: opts.TargetID, Reason: "fix id not found"})
			return nil
		}
		// если fix требует всех fixes, то одиночно не применяем
		if candidates[i].fix.RequiresAll {
			res.Skipped = append(res.Skipped, SkippedFix{ID: opts.TargetID, Reason: "fix requires all fixes to be applied"})
			return nil
		}
		return candidates[i : i+1]

	case ApplyModeAll:
		var selected []candidate
		for _, cand := range candidates {
			if cand.fix.Applicability != diag.FixApplicabilityAlwaysSafe {
				res.skip(cand.fix, "applicability is "+cand.fix.Applicability.String())
				continue
			}
			selected = append(selected, cand)
		}
		return selected

	case ApplyModeOnce:
		fallback := -1
		for i, cand := range candidates {
			if cand.fix.RequiresAll {
				res.skip(cand.fix, "fix requires all fixes to be applied")
				continue
			}
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				return candidates[i : i+1]
			}
			if fallback < 0 {
				fallback = i
			}
		}
		if fallback >= 0 {
			return candidates[fallback : fallback+1]
		}
		return nil

	default:
		return nil
	}
}
