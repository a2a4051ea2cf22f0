package session

import (
	"log"
	"testing"
	"time"
)

func newTestStats() *Stats {
	return NewStats(time.Hour, log.New(discardWriter{}, "", 0))
}

func TestRecordFrameAccumulatesLifetimeTotals(t *testing.T) {
	s := newTestStats()
	s.RecordFrame(100, 40)
	s.RecordFrame(50, 20)

	if s.totalFrames != 2 || s.totalRawBytes != 150 || s.totalCompressedBytes != 60 {
		t.Fatalf("lifetime totals = %d/%d/%d, want 2/150/60", s.totalFrames, s.totalRawBytes, s.totalCompressedBytes)
	}
}

func TestWindowTotalsPrunesStaleSamples(t *testing.T) {
	s := newTestStats()
	s.mu.Lock()
	s.window = append(s.window, sample{at: time.Now().Add(-2 * windowDuration), rawBytes: 1000, compressedBytes: 100})
	s.mu.Unlock()
	s.RecordFrame(10, 5)

	frames, raw, compressed := s.windowTotals()
	if frames != 1 || raw != 10 || compressed != 5 {
		t.Fatalf("window totals = %d/%d/%d, want 1/10/5 (stale sample should be pruned)", frames, raw, compressed)
	}
}

func TestSetSessionCountInstallsCounter(t *testing.T) {
	s := newTestStats()
	s.SetSessionCount(func() int { return 3 })
	if got := s.sessionCount(); got != 3 {
		t.Fatalf("sessionCount() = %d, want 3", got)
	}
}

func TestManagerWiresSessionCountIntoStats(t *testing.T) {
	m := newTestManager()
	if _, err := m.CreateRunnerSession("", NewPeer("r1")); err != nil {
		t.Fatalf("CreateRunnerSession: %v", err)
	}
	if got := m.Stats().sessionCount(); got != 1 {
		t.Fatalf("stats sessionCount() = %d, want 1", got)
	}
}
