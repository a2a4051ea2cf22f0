// Package session implements the relay's unit of multiplexing: one
// runner, a set of viewers, and the framebuffer they all observe
// (spec.md 3, 4.3).
package session

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/relaylabs/ptyshare/internal/codec"
	"github.com/relaylabs/ptyshare/internal/terminal"
)

// Session binds one runner connection, a set of viewer connections, and
// the framebuffer they share. mu guards all of it, including the
// framebuffer: a viewer can join and read a snapshot concurrently with
// the runner's read loop writing PTY output into the same grid, so
// every framebuffer access goes through mu.
type Session struct {
	mu sync.Mutex

	id          string
	compression codec.Mode
	codec       codec.Codec
	fb          *terminal.Framebuffer

	runner  *Peer
	viewers map[*Peer]struct{}
	exited  bool

	ttl          time.Duration
	cleanupTimer *time.Timer
	onExpire     func(id string)

	stats  *Stats
	logger *log.Logger
}

func newSession(id string, compression codec.Mode, ttl time.Duration, stats *Stats, logger *log.Logger, onExpire func(string)) *Session {
	return &Session{
		id:          id,
		compression: compression,
		fb:          terminal.New(terminal.DefaultCols, terminal.DefaultRows),
		viewers:     make(map[*Peer]struct{}),
		ttl:         ttl,
		stats:       stats,
		logger:      logger,
		onExpire:    onExpire,
	}
}

// ID returns the session's three-word identifier.
func (s *Session) ID() string { return s.id }

// ViewerCount reports the number of currently attached viewers, mirroring
// the teacher's Hub.ClientCount() observability pattern.
func (s *Session) ViewerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.viewers)
}

// HasRunner reports whether a runner is currently attached.
func (s *Session) HasRunner() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runner != nil
}

// attachRunner installs peer as the session's runner and sends the
// initial {type:"session"} frame. Fails if a runner is already
// attached, preserving the "at most one runner" invariant.
func (s *Session) attachRunner(peer *Peer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.runner != nil {
		return fmt.Errorf("session %s already has a runner attached", s.id)
	}
	s.runner = peer
	s.exited = false
	s.cancelCleanupLocked()
	peer.Send(textMessage(marshalSessionFrame(s.id, string(s.compression))))
	return nil
}

// runnerDisconnected detaches the runner and marks the session exited.
// If there are no viewers, the cleanup timer starts.
func (s *Session) runnerDisconnected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runner = nil
	s.exited = true
	if len(s.viewers) == 0 {
		s.scheduleCleanupLocked()
	}
}

// attachViewer registers peer as a viewer, sends the compression
// announcement, a compressed+padded framebuffer snapshot, and the
// ready marker, per spec.md 4.3.1.
func (s *Session) attachViewer(peer *Peer) error {
	s.mu.Lock()
	s.cancelCleanupLocked()
	snapshot, err := s.snapshotFrameLocked()
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("session %s: building snapshot: %w", s.id, err)
	}
	s.viewers[peer] = struct{}{}
	s.mu.Unlock()

	peer.Send(textMessage(marshalCompressionFrame(string(s.compression))))
	peer.Send(binaryMessage(snapshot))
	peer.Send(textMessage(marshalReadyFrame()))
	return nil
}

// viewerDisconnected removes peer from the viewer set. If the runner
// has already exited and no viewers remain, the cleanup timer starts.
func (s *Session) viewerDisconnected(peer *Peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.viewers, peer)
	if s.exited && len(s.viewers) == 0 {
		s.scheduleCleanupLocked()
	}
}

// HandleRunnerText processes a JSON control frame from the runner and
// forwards it unchanged to every viewer, per spec.md 4.3.2.
func (s *Session) HandleRunnerText(data []byte) {
	var msg controlMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.logger.Printf("session %s: malformed runner control message: %v", s.id, err)
	} else {
		switch msg.Type {
		case "exit":
			s.mu.Lock()
			s.exited = true
			noViewers := len(s.viewers) == 0
			if noViewers {
				s.scheduleCleanupLocked()
			}
			s.mu.Unlock()
		case "resize":
			if msg.Cols > 0 && msg.Rows > 0 {
				s.mu.Lock()
				s.fb.Resize(msg.Cols, msg.Rows)
				s.mu.Unlock()
			}
		}
	}
	s.broadcast(textMessage(data))
}

// HandleRunnerBinary decompresses a PTY output frame, feeds it to the
// framebuffer, and forwards the original compressed bytes to every
// viewer unchanged. A decompression failure drops the frame from the
// framebuffer's perspective but still fans out the original bytes, per
// spec.md 7.
func (s *Session) HandleRunnerBinary(data []byte) {
	raw, err := s.codec.Decompress(data)
	if err != nil {
		s.logger.Printf("session %s: codec decompress failed, dropping frame: %v", s.id, err)
	} else {
		s.mu.Lock()
		s.fb.Write(raw)
		s.mu.Unlock()
		s.stats.RecordFrame(len(raw), len(data))
	}
	s.broadcast(binaryMessage(data))
}

// HandleViewerText forwards a viewer's JSON message to the runner
// unchanged, if one is connected.
func (s *Session) HandleViewerText(data []byte) {
	s.mu.Lock()
	runner := s.runner
	s.mu.Unlock()
	if runner != nil {
		runner.Send(textMessage(data))
	}
}

// HandleViewerBinary forwards a viewer's binary frame to the runner
// unchanged. The relay never decodes viewer-origin binary; the runner
// decodes it, keeping fan-out linear in connection count.
func (s *Session) HandleViewerBinary(data []byte) {
	s.mu.Lock()
	runner := s.runner
	s.mu.Unlock()
	if runner != nil {
		runner.Send(binaryMessage(data))
	}
}

func (s *Session) broadcast(msg OutboundMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for peer := range s.viewers {
		peer.Send(msg)
	}
}

// snapshotFrameLocked serializes and compresses the current
// framebuffer state. For zstd/smaz it wraps the result in padded
// framing (spec.md 4.2); none/deflate send the raw compressed bytes
// (deflate's compression happens at the transport).
func (s *Session) snapshotFrameLocked() ([]byte, error) {
	raw := []byte(s.fb.Serialize())
	compressed, err := s.codec.Compress(raw)
	if err != nil {
		return nil, err
	}
	switch s.compression {
	case codec.ModeZstd, codec.ModeSmaz:
		return codec.WrapPadded(compressed)
	default:
		return compressed, nil
	}
}

// tryExpire reports whether the session is still eligible for removal
// at the moment its cleanup timer fires. A viewer joining concurrently
// with the timer firing cancels eligibility even if Stop() on the timer
// lost the race.
func (s *Session) tryExpire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exited && len(s.viewers) == 0
}

func (s *Session) scheduleCleanupLocked() {
	s.cancelCleanupLocked()
	s.cleanupTimer = time.AfterFunc(s.ttl, func() {
		s.onExpire(s.id)
	})
}

func (s *Session) cancelCleanupLocked() {
	if s.cleanupTimer != nil {
		s.cleanupTimer.Stop()
		s.cleanupTimer = nil
	}
}
