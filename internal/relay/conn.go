package relay

import (
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/relaylabs/ptyshare/internal/session"
)

// Timing and framing constants, carried over from the teacher's
// apps/sandbox/internal/ws.Client.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // 1 MiB: read limit for each inbound runner or viewer frame
)

func deadlineNow() time.Time { return time.Now().Add(writeWait) }

// conn pairs a live WebSocket connection with the session.Peer whose
// Output channel feeds it, mirroring the teacher's Client/Hub split so
// the session package never touches *websocket.Conn directly.
type conn struct {
	ws     *websocket.Conn
	peer   *session.Peer
	logger *log.Logger
}

func newConn(ws *websocket.Conn, peer *session.Peer, logger *log.Logger) *conn {
	return &conn{ws: ws, peer: peer, logger: logger}
}

// writePump drains peer.Output to the socket and sends periodic pings,
// exactly as the teacher's Client.WritePump does.
func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.peer.Output:
			c.ws.SetWriteDeadline(deadlineNow())
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			frameType := websocket.TextMessage
			if msg.IsBinary {
				frameType = websocket.BinaryMessage
			}
			if err := c.ws.WriteMessage(frameType, msg.Data); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(deadlineNow())
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *conn) setupReadDeadlines() {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
}

// readRunnerLoop is the runner side of the routing rules in spec.md
// 4.3.2: binary frames feed the framebuffer and fan out unchanged;
// text frames are control messages, forwarded to every viewer.
func (c *conn) readRunnerLoop(mgr *session.Manager, sess *session.Session) {
	defer func() {
		mgr.RunnerDisconnected(sess)
		c.peer.Close()
		c.ws.Close()
	}()
	c.setupReadDeadlines()

	for {
		messageType, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		switch messageType {
		case websocket.BinaryMessage:
			sess.HandleRunnerBinary(data)
		case websocket.TextMessage:
			sess.HandleRunnerText(data)
		}
	}
}

// readViewerLoop is the viewer side of the routing rules: both binary
// and text frames forward to the runner unchanged.
func (c *conn) readViewerLoop(mgr *session.Manager, sess *session.Session) {
	defer func() {
		mgr.ViewerDisconnected(sess, c.peer)
		c.peer.Close()
		c.ws.Close()
	}()
	c.setupReadDeadlines()

	for {
		messageType, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		switch messageType {
		case websocket.BinaryMessage:
			sess.HandleViewerBinary(data)
		case websocket.TextMessage:
			sess.HandleViewerText(data)
		}
	}
}
