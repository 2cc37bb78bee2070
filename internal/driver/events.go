package driver

import "time"

// Stage is the pipeline step a file is in.
type Stage uint8

const (
	StageQueued Stage = iota
	StageParse
	StageAnalyze
	StageCache
)

func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parse"
	case StageAnalyze:
		return "analyze"
	case StageCache:
		return "cache"
	default:
		return "queued"
	}
}

// Status reports progress of a file through its current stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is emitted for every stage transition of a file. An empty File
// describes the run as a whole. Diagnostics and Cached are set on the final
// event of a file.
type Event struct {
	File        string
	Stage       Stage
	Status      Status
	Diagnostics int
	Cached      bool
}

// EventSink receives events from worker goroutines; it must be safe for
// concurrent use.
type EventSink func(Event)

func (s EventSink) emit(file string, stage Stage, status Status) {
	if s != nil {
		s(Event{File: file, Stage: stage, Status: status})
	}
}

// finish emits the final event of a file: done, or error when the result
// carries errors.
func (s EventSink) finish(res *FileResult) {
	if s == nil {
		return
	}
	ev := Event{File: res.Path, Stage: StageAnalyze, Status: StatusDone, Cached: res.Cached}
	if res.Bag != nil {
		ev.Diagnostics = res.Bag.Len()
		if res.Bag.HasErrors() {
			ev.Status = StatusError
		}
	}
	s(ev)
}

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events of the whole run.
type PhaseObserver func(PhaseEvent)
