package trace

import "errors"

// fanout sends events to several tracers; used for ModeBoth.
type fanout struct {
	tracers []Tracer
	level   Level
}

func newFanout(level Level, tracers ...Tracer) *fanout {
	return &fanout{tracers: tracers, level: level}
}

// Emit numbers the event once so every sink sees the same Seq.
func (t *fanout) Emit(ev *Event) {
	if ev.Seq == 0 {
		ev.Seq = NextSeq()
	}
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

func (t *fanout) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *fanout) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (t *fanout) Level() Level  { return t.level }
func (t *fanout) Enabled() bool { return t.level > LevelOff }
