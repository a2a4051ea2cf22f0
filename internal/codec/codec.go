// Package codec implements the binary-frame compression modes the relay
// can select between (spec.md 4.2): a pass-through mode, zstd, a small
// dictionary coder tuned for short ASCII bursts ("smaz"), and deflate
// (which is realized entirely at the transport layer and carries no
// application-level framing here).
package codec

import (
	"fmt"
)

// Mode names a binary-frame codec, announced to peers in the relay's
// "session"/"compression" JSON control messages.
type Mode string

const (
	ModeNone    Mode = "none"
	ModeZstd    Mode = "zstd"
	ModeSmaz    Mode = "smaz"
	ModeDeflate Mode = "deflate"
)

// ParseMode validates a configured or requested mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNone, ModeZstd, ModeSmaz, ModeDeflate:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("codec: unknown compression mode %q", s)
	}
}

// Codec compresses and decompresses binary PTY payloads for one mode.
//
// Deflate has no Codec implementation of its own at this layer: it is
// realized by enabling the WebSocket transport's per-message-deflate
// extension, so payloads for that mode pass through this package
// unchanged (see New).
type Codec interface {
	Mode() Mode
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// New returns the Codec for the given mode. Deflate and None both yield
// a pass-through codec: deflate's compression happens at the transport,
// and None means no compression at all.
func New(mode Mode) (Codec, error) {
	switch mode {
	case ModeNone, ModeDeflate:
		return passthroughCodec{mode: mode}, nil
	case ModeZstd:
		return newZstdCodec()
	case ModeSmaz:
		return smazCodec{}, nil
	default:
		return nil, fmt.Errorf("codec: unknown compression mode %q", mode)
	}
}

type passthroughCodec struct{ mode Mode }

func (p passthroughCodec) Mode() Mode { return p.mode }

func (p passthroughCodec) Compress(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (p passthroughCodec) Decompress(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
