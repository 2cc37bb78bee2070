package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"macroessentials/internal/diag"
	"macroessentials/internal/source"
)

// многострочный span длиннее этого печатается первой и последней строкой
const maxSpanLines = 4

const tabWidth = 4

type palette struct {
	err     *color.Color
	warn    *color.Color
	info    *color.Color
	code    *color.Color
	loc     *color.Color
	gutter  *color.Color
	note    *color.Color
	fix     *color.Color
	removed *color.Color
	added   *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:     mk(color.FgRed, color.Bold),
		warn:    mk(color.FgYellow, color.Bold),
		info:    mk(color.FgCyan, color.Bold),
		code:    mk(color.Faint),
		loc:     mk(color.Bold),
		gutter:  mk(color.FgBlue),
		note:    mk(color.FgCyan),
		fix:     mk(color.FgGreen),
		removed: mk(color.FgRed),
		added:   mk(color.FgGreen),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity)
	code := d.Code.ID()
	if opts.ShowIDs && !d.MessageID.IsZero() {
		code += " [" + d.MessageID.String() + "]"
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.loc.Sprint(location(fs, d.Primary, opts.PathMode)),
		sev.Sprint(d.Severity.String()),
		pal.code.Sprint(code),
		d.Message)
	writeSnippet(w, fs, d.Primary, opts, pal, sev)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), location(fs, n.Span, opts.PathMode), n.Msg)
		}
	}
	if !opts.ShowFixes {
		return
	}
	for i, f := range d.Fixes {
		header := fmt.Sprintf("fix #%d:", i+1)
		fmt.Fprintf(w, "  %s %s (%s, %s)", pal.fix.Sprint(header), f.Title, f.Kind, f.Applicability)
		if f.ID != "" {
			fmt.Fprintf(w, " id=%s", f.ID)
		}
		fmt.Fprintln(w)
		for _, e := range f.Edits {
			fmt.Fprintf(w, "      edit %s apply=%q", location(fs, e.Span, opts.PathMode), e.NewText)
			if e.OldText != "" {
				fmt.Fprintf(w, " expect=%q", e.OldText)
			}
			fmt.Fprintln(w)
			if !opts.ShowPreview {
				continue
			}
			p, err := previewEdit(fs, e)
			if err != nil {
				fmt.Fprintf(w, "      preview unavailable: %v\n", err)
				continue
			}
			fmt.Fprintln(w, "      preview:")
			for _, line := range p.before {
				fmt.Fprintf(w, "        %s\n", pal.removed.Sprint("- "+line))
			}
			for _, line := range p.after {
				fmt.Fprintf(w, "        %s\n", pal.added.Sprint("+ "+line))
			}
		}
	}
}

func location(fs *source.FileSet, span source.Span, mode PathMode) string {
	if int(span.File) >= fs.Len() {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", displayPath(fs, fs.Get(span.File), mode), start.Line, start.Col)
}

func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts, pal palette, mark *color.Color) {
	if int(span.File) >= fs.Len() {
		return
	}
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	if end.Line < start.Line {
		end = start
	}
	ctx := uint32(max(opts.Context, 0)) // #nosec G115 -- non-negative int8
	first := start.Line - min(ctx, start.Line-1)
	last := max(min(end.Line+ctx, uint32(len(f.LineIdx))+1), start.Line) // #nosec G115 -- length checked in Add
	gutter := len(strconv.FormatUint(uint64(last), 10))
	folded := end.Line-start.Line > maxSpanLines

	for line := first; line <= last; line++ {
		if folded && line > start.Line && line < end.Line {
			if line == start.Line+1 {
				fmt.Fprintf(w, "%*s %s\n", gutter, "", pal.gutter.Sprint("..."))
			}
			continue
		}
		raw := f.GetLine(line)
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutter, line), clip(expandTabs(raw), opts.Width))
		if line < start.Line || line > end.Line {
			continue
		}
		b, e := underlineRange(raw, line, start, end)
		if e <= b && line != start.Line {
			continue
		}
		pad := runewidth.StringWidth(expandTabs(raw[:b]))
		width := max(runewidth.StringWidth(expandTabs(raw[b:e])), 1)
		fmt.Fprintf(w, "%s %s%s\n",
			pal.gutter.Sprintf("%*s |", gutter, ""),
			strings.Repeat(" ", pad),
			mark.Sprint("^"+strings.Repeat("~", width-1)))
	}
}

// underlineRange returns the byte range of raw covered by the span on line.
func underlineRange(raw string, line uint32, start, end source.LineCol) (b, e int) {
	if line == start.Line {
		b = int(start.Col) - 1
	} else {
		b = len(raw) - len(strings.TrimLeft(raw, " \t"))
	}
	e = len(raw)
	if line == end.Line {
		e = int(end.Col) - 1
	}
	b = min(max(b, 0), len(raw))
	e = min(max(e, b), len(raw))
	return b, e
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
