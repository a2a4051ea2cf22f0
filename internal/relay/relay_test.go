package relay

import (
	"encoding/json"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"

	"github.com/relaylabs/ptyshare/internal/auth"
	"github.com/relaylabs/ptyshare/internal/codec"
	"github.com/relaylabs/ptyshare/internal/session"
)

func discardLogger() *log.Logger {
	return log.New(discardWriter{}, "", 0)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func newTestServer(t *testing.T) (*httptest.Server, func()) {
	mgr := session.NewManager(codec.ModeNone, 50*time.Millisecond, time.Hour, discardLogger())
	checker := auth.NewChecker("secret")
	static := fstest.MapFS{"index.html": &fstest.MapFile{Data: []byte("viewer")}}
	srv := New(mgr, checker, static, false, discardLogger())
	ts := httptest.NewServer(srv.Handler())
	return ts, ts.Close
}

func wsURL(ts *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + path
}

func readTextJSON(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return m
}

func TestRunnerRejectsBadToken(t *testing.T) {
	ts, cleanup := newTestServer(t)
	defer cleanup()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, "/runner?token=wrong"), nil)
	if err == nil {
		t.Fatalf("expected dial to fail with bad token")
	}
	if resp == nil || resp.StatusCode != 401 {
		t.Fatalf("expected 401, got %+v", resp)
	}
}

func TestRunnerHandshakeSendsSessionFrame(t *testing.T) {
	ts, cleanup := newTestServer(t)
	defer cleanup()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/runner?token=secret"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	msg := readTextJSON(t, conn)
	if msg["type"] != "session" {
		t.Fatalf("expected session frame, got %+v", msg)
	}
	if msg["id"] == "" || msg["id"] == nil {
		t.Fatalf("expected a non-empty session id, got %+v", msg)
	}
}

func TestViewerJoinUnknownSessionCloses4004(t *testing.T) {
	ts, cleanup := newTestServer(t)
	defer cleanup()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/ws?id=nope&token=secret"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_, _, err = conn.ReadMessage()
	closeErr, ok := err.(*websocket.CloseError)
	if !ok {
		t.Fatalf("expected a close error, got %v", err)
	}
	if closeErr.Code != closeSessionNotFound {
		t.Fatalf("close code = %d, want %d", closeErr.Code, closeSessionNotFound)
	}
}

func TestEndToEndSessionJoinAndFanout(t *testing.T) {
	ts, cleanup := newTestServer(t)
	defer cleanup()

	runnerConn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/runner?token=secret"), nil)
	if err != nil {
		t.Fatalf("runner dial: %v", err)
	}
	defer runnerConn.Close()
	sessionMsg := readTextJSON(t, runnerConn)
	id := sessionMsg["id"].(string)

	if err := runnerConn.WriteMessage(websocket.BinaryMessage, []byte("hello")); err != nil {
		t.Fatalf("runner write: %v", err)
	}

	viewerConn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/ws?id="+id+"&token=secret"), nil)
	if err != nil {
		t.Fatalf("viewer dial: %v", err)
	}
	defer viewerConn.Close()

	compMsg := readTextJSON(t, viewerConn)
	if compMsg["type"] != "compression" {
		t.Fatalf("expected compression frame, got %+v", compMsg)
	}
	_, _, err = viewerConn.ReadMessage() // binary snapshot
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	readyMsg := readTextJSON(t, viewerConn)
	if readyMsg["type"] != "ready" {
		t.Fatalf("expected ready frame, got %+v", readyMsg)
	}

	if err := runnerConn.WriteMessage(websocket.BinaryMessage, []byte("live-frame")); err != nil {
		t.Fatalf("runner write: %v", err)
	}
	viewerConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := viewerConn.ReadMessage()
	if err != nil {
		t.Fatalf("viewer did not receive fanned-out frame: %v", err)
	}
	if string(data) != "live-frame" {
		t.Fatalf("fanned-out frame = %q, want %q", data, "live-frame")
	}

	if err := viewerConn.WriteMessage(websocket.BinaryMessage, []byte("keystroke")); err != nil {
		t.Fatalf("viewer write: %v", err)
	}
	runnerConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err = runnerConn.ReadMessage()
	if err != nil {
		t.Fatalf("runner did not receive viewer input: %v", err)
	}
	if string(data) != "keystroke" {
		t.Fatalf("runner received %q, want %q", data, "keystroke")
	}
}
