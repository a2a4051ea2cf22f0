package session

// OutboundMessage is a unit of data queued for delivery to a peer's
// WebSocket connection. IsBinary selects the WebSocket frame type: PTY
// bytes travel as binary frames, JSON control messages as text frames.
// Keeping this type free of any transport import lets the session
// package stay independent of gorilla/websocket; internal/relay is the
// only package that touches an actual *websocket.Conn.
type OutboundMessage struct {
	IsBinary bool
	Data     []byte
}

func textMessage(data []byte) OutboundMessage {
	return OutboundMessage{IsBinary: false, Data: data}
}

func binaryMessage(data []byte) OutboundMessage {
	return OutboundMessage{IsBinary: true, Data: data}
}

// outboundBuffer is the size of a peer's outbound channel. A slow
// reader can fall behind by this many frames before the session starts
// dropping its output rather than blocking the fan-out loop.
const outboundBuffer = 256

// Peer is one WebSocket connection attached to a session, either the
// runner or a viewer. The relay layer owns reading and writing the
// actual connection; it registers a Peer with the session and drains
// Output to the socket.
type Peer struct {
	ID     string
	Output chan OutboundMessage
}

// NewPeer creates a Peer ready to be attached to a session.
func NewPeer(id string) *Peer {
	return &Peer{ID: id, Output: make(chan OutboundMessage, outboundBuffer)}
}

// Send enqueues a message for delivery, dropping it if the peer's
// buffer is full rather than blocking the caller.
func (p *Peer) Send(msg OutboundMessage) {
	select {
	case p.Output <- msg:
	default:
	}
}

// Close closes the peer's output channel, signalling its writer pump
// to finish.
func (p *Peer) Close() {
	close(p.Output)
}
