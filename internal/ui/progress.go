// Package ui renders the interactive progress view of a directory run.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"macroessentials/internal/driver"
)

// maxRows bounds the file list; finished files scroll out first.
const maxRows = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	queuedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	files   []fileState
	index   map[string]int
	// stage of the run as a whole, from events without a file
	runStage string
	width    int
	done     bool
}

type fileState struct {
	path        string
	stage       driver.Stage
	status      driver.Status
	diagnostics int
	cached      bool
}

func (f fileState) finished() bool {
	return f.status == driver.StatusDone || f.status == driver.StatusError
}

// weight is the share of the per-file work already behind the file.
func (f fileState) weight() float64 {
	if f.finished() {
		return 1
	}
	if f.status != driver.StatusWorking {
		return 0
	}
	switch f.stage {
	case driver.StageCache:
		return 0.1
	case driver.StageParse:
		return 0.3
	case driver.StageAnalyze:
		return 0.6
	default:
		return 0
	}
}

func (f fileState) label() string {
	switch f.status {
	case driver.StatusDone:
		if f.cached {
			return "cached"
		}
		return "ok"
	case driver.StatusError:
		return "error"
	case driver.StatusWorking:
		return stageLabel(f.stage)
	default:
		return "queued"
	}
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file analysis
// progress. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workingStyle

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	states := make([]fileState, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		states[i] = fileState{path: file}
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		files:   states,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		next, cmd := m.prog.Update(msg)
		m.prog = next.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.files) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("\n\n")

	const statusWidth = 10
	nameWidth := max(m.width-statusWidth-12, 20)
	rows := m.visibleRows()
	if hidden := len(m.files) - len(rows); hidden > 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf("  ... %d more", hidden)))
		b.WriteString("\n")
	}
	for _, i := range rows {
		f := m.files[i]
		line := fmt.Sprintf("  %s %s", styleFor(f).Render(fmt.Sprintf("%*s", statusWidth, f.label())), truncate(f.path, nameWidth))
		if f.diagnostics > 0 {
			line += faintStyle.Render(" (" + strconv.Itoa(f.diagnostics) + ")")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) header() string {
	finished, diags := 0, 0
	for _, f := range m.files {
		if f.finished() {
			finished++
		}
		diags += f.diagnostics
	}
	header := fmt.Sprintf("%s [%d/%d files, %d diagnostics]", m.title, finished, len(m.files), diags)
	if m.runStage != "" {
		header += " (" + m.runStage + ")"
	}
	if m.done {
		return "done: " + header
	}
	return m.spinner.View() + " " + header
}

// visibleRows keeps the list within maxRows: unfinished files stay, the
// oldest finished ones are dropped first.
func (m *progressModel) visibleRows() []int {
	rows := make([]int, 0, len(m.files))
	for i := range m.files {
		rows = append(rows, i)
	}
	excess := len(rows) - maxRows
	if excess <= 0 {
		return rows
	}
	kept := rows[:0]
	for _, i := range rows {
		if excess > 0 && m.files[i].finished() {
			excess--
			continue
		}
		kept = append(kept, i)
	}
	if len(kept) > maxRows {
		kept = kept[:maxRows]
	}
	return kept
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		if label := stageLabel(ev.Stage); label != "" && ev.Status == driver.StatusWorking {
			m.runStage = label
		}
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	f := &m.files[idx]
	f.stage, f.status = ev.Stage, ev.Status
	if f.finished() {
		f.diagnostics = ev.Diagnostics
		f.cached = ev.Cached
	}

	total := 0.0
	for _, f := range m.files {
		total += f.weight()
	}
	return m.prog.SetPercent(total / float64(len(m.files)))
}

func stageLabel(stage driver.Stage) string {
	switch stage {
	case driver.StageCache:
		return "cache"
	case driver.StageParse:
		return "parsing"
	case driver.StageAnalyze:
		return "analyzing"
	default:
		return ""
	}
}

func styleFor(f fileState) lipgloss.Style {
	switch f.status {
	case driver.StatusDone:
		return doneStyle
	case driver.StatusError:
		return errorStyle
	case driver.StatusWorking:
		return workingStyle
	default:
		return queuedStyle
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// ширина хвоста входит в width
	return runewidth.Truncate(value, width, "...")
}
