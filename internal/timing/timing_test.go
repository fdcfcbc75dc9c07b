package timing

import (
	"strings"
	"testing"
	"time"
)

func TestTimer_MarksAccumulate(t *testing.T) {
	timer := NewTimer()

	time.Sleep(10 * time.Millisecond)
	timer.Mark("resolve")

	time.Sleep(10 * time.Millisecond)
	timer.Mark("rank")

	if timer.Elapsed() < 20*time.Millisecond {
		t.Errorf("expected at least 20ms elapsed, got %v", timer.Elapsed())
	}

	if d, ok := timer.Get("resolve"); !ok || d < 10*time.Millisecond {
		t.Errorf("resolve mark missing or too small: %v (found=%v)", d, ok)
	}
	if d, ok := timer.Get("rank"); !ok || d < 20*time.Millisecond {
		t.Errorf("rank mark missing or too small: %v (found=%v)", d, ok)
	}
}

func TestTimer_Summary(t *testing.T) {
	timer := NewTimer()

	time.Sleep(5 * time.Millisecond)
	timer.Mark("backend")

	time.Sleep(5 * time.Millisecond)
	timer.Mark("history")

	summary := timer.Summary()
	for _, want := range []string{"Total:", "backend:", "history:", "ms"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary should contain %q, got: %s", want, summary)
		}
	}
}

func TestTimer_Reset(t *testing.T) {
	timer := NewTimer()

	time.Sleep(10 * time.Millisecond)
	timer.Mark("stale")
	timer.Reset()

	if timer.Elapsed() > 5*time.Millisecond {
		t.Errorf("elapsed should be near zero after reset, got %v", timer.Elapsed())
	}
	if _, ok := timer.Get("stale"); ok {
		t.Error("marks should be cleared after reset")
	}
}
