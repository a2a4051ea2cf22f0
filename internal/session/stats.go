package session

import (
	"log"
	"sync"
	"time"
)

// windowDuration is the width of the rolling "recent activity" window
// (spec.md 4.3.4): samples older than this are pruned lazily, on the
// next record or read, rather than by a background ticker.
const windowDuration = 5 * time.Second

// sample holds one RecordFrame call's contribution, timestamped so it
// can be dropped once it falls outside windowDuration.
type sample struct {
	at              time.Time
	rawBytes        int64
	compressedBytes int64
}

// Stats aggregates relay-wide counters (spec.md 2, 4.3.4): lifetime
// totals plus a 5-second rolling window of recent frame/byte activity,
// logged periodically for observability.
type Stats struct {
	mu sync.Mutex

	totalFrames          int64
	totalRawBytes        int64
	totalCompressedBytes int64
	sessionsCreated      int64
	sessionsExpired      int64
	activeViewers        int64

	window []sample

	sessionCount func() int
	interval     time.Duration
	logger       *log.Logger
	stop         chan struct{}
	stopOnce     sync.Once
}

// NewStats creates a tracker that, once Run is started, logs a summary
// line every interval.
func NewStats(interval time.Duration, logger *log.Logger) *Stats {
	return &Stats{
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// SetSessionCount wires in the registry's live session count, logged
// alongside the lifetime created/expired counters. The registry owns
// Stats, so this is set once right after construction rather than
// threaded through every call site.
func (s *Stats) SetSessionCount(fn func() int) {
	s.mu.Lock()
	s.sessionCount = fn
	s.mu.Unlock()
}

// RecordFrame accounts for one runner-originated binary frame: rawLen
// bytes fed to the framebuffer, compressedLen bytes actually
// transmitted.
func (s *Stats) RecordFrame(rawLen, compressedLen int) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalFrames++
	s.totalRawBytes += int64(rawLen)
	s.totalCompressedBytes += int64(compressedLen)

	s.pruneLocked(now)
	s.window = append(s.window, sample{at: now, rawBytes: int64(rawLen), compressedBytes: int64(compressedLen)})
}

func (s *Stats) SessionCreated() {
	s.mu.Lock()
	s.sessionsCreated++
	s.mu.Unlock()
}

func (s *Stats) SessionExpired() {
	s.mu.Lock()
	s.sessionsExpired++
	s.mu.Unlock()
}

func (s *Stats) ViewerJoined() {
	s.mu.Lock()
	s.activeViewers++
	s.mu.Unlock()
}

func (s *Stats) ViewerLeft() {
	s.mu.Lock()
	s.activeViewers--
	s.mu.Unlock()
}

// pruneLocked drops every sample that has aged out of windowDuration.
// Callers must hold mu. The window is append-only in arrival order, so
// the stale entries are always a prefix.
func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-windowDuration)
	i := 0
	for i < len(s.window) && s.window[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.window = s.window[i:]
	}
}

// windowTotals sums every sample still inside the rolling window.
func (s *Stats) windowTotals() (frames, rawBytes, compressedBytes int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(time.Now())
	for _, smp := range s.window {
		frames++
		rawBytes += smp.rawBytes
		compressedBytes += smp.compressedBytes
	}
	return
}

// Run drives the periodic log line until Stop is called. The rolling
// window itself needs no ticker: it is pruned lazily in RecordFrame and
// windowTotals. Intended to run in its own goroutine for the lifetime
// of the relay process.
func (s *Stats) Run() {
	logTicker := time.NewTicker(s.interval)
	defer logTicker.Stop()

	for {
		select {
		case <-logTicker.C:
			s.logSummary()
		case <-s.stop:
			return
		}
	}
}

func (s *Stats) logSummary() {
	windowFrames, windowRaw, windowCompressed := s.windowTotals()
	windowRatio := 1.0
	if windowCompressed > 0 {
		windowRatio = float64(windowRaw) / float64(windowCompressed)
	}

	s.mu.Lock()
	created, expired, viewers := s.sessionsCreated, s.sessionsExpired, s.activeViewers
	totalFrames, totalRaw, totalCompressed := s.totalFrames, s.totalRawBytes, s.totalCompressedBytes
	sessionCount := 0
	if s.sessionCount != nil {
		sessionCount = s.sessionCount()
	}
	s.mu.Unlock()

	lifetimeRatio := 1.0
	if totalCompressed > 0 {
		lifetimeRatio = float64(totalRaw) / float64(totalCompressed)
	}

	s.logger.Printf(
		"stats: sessions=%d sessions_created=%d sessions_expired=%d active_viewers=%d "+
			"window_frames=%d window_raw_bytes=%d window_compressed_bytes=%d window_compression_ratio=%.2f "+
			"total_frames=%d total_raw_bytes=%d total_compressed_bytes=%d lifetime_compression_ratio=%.2f",
		sessionCount, created, expired, viewers,
		windowFrames, windowRaw, windowCompressed, windowRatio,
		totalFrames, totalRaw, totalCompressed, lifetimeRatio,
	)
}

// Stop halts the Run loop. Safe to call multiple times.
func (s *Stats) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}
