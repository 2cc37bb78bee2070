package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	done := tm.Track("parse")
	time.Sleep(time.Millisecond)
	done("3 files")
	idx := tm.Begin("analyze")
	tm.End(idx, "")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %+v", rep.Phases)
	}
	if rep.Phases[0].Name != "parse" || rep.Phases[0].Note != "3 files" || rep.Phases[0].DurationMS <= 0 {
		t.Fatalf("unexpected first phase %+v", rep.Phases[0])
	}
	if rep.TotalMS < rep.Phases[0].DurationMS {
		t.Fatalf("total %.3f shorter than a phase %.3f", rep.TotalMS, rep.Phases[0].DurationMS)
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "parse") || !strings.Contains(sum, "// 3 files") || !strings.Contains(sum, "total") {
		t.Fatalf("summary = %q", sum)
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Track("file")("")
		}()
	}
	wg.Wait()
	if n := len(tm.Report().Phases); n != 16 {
		t.Fatalf("expected 16 phases, got %d", n)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("x")("y")
	if rep := tm.Report(); len(rep.Phases) != 0 {
		t.Fatalf("nil timer must report nothing")
	}
}
