// Command runner is the reference operator-side client for the relay:
// it spawns the given command under a PTY (github.com/creack/pty,
// grounded on the teacher's internal/pty.New), puts the local terminal
// into raw mode (golang.org/x/term), and streams bytes to and from the
// relay over a WebSocket (spec.md 1, 4.3.2).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"github.com/gorilla/websocket"
	"golang.org/x/term"

	"github.com/relaylabs/ptyshare/internal/codec"
)

type controlMessage struct {
	Type        string `json:"type"`
	ID          string `json:"id,omitempty"`
	Compression string `json:"compression,omitempty"`
	Cols        int    `json:"cols,omitempty"`
	Rows        int    `json:"rows,omitempty"`
	Code        int    `json:"code,omitempty"`
}

func main() {
	relayURL := flag.String("relay", "ws://localhost:3000", "relay base URL")
	token := flag.String("token", "secret", "shared auth token")
	id := flag.String("id", "", "reuse this session id instead of generating one")
	flag.Parse()

	shell := "/bin/sh"
	args := flag.Args()
	if len(args) > 0 {
		shell = args[0]
		args = args[1:]
	}

	u, err := url.Parse(*relayURL)
	if err != nil {
		log.Fatalf("runner: bad relay URL: %v", err)
	}
	u.Path = "/runner"
	q := u.Query()
	q.Set("token", *token)
	if *id != "" {
		q.Set("id", *id)
	}
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("runner: dial %s: %v", u.String(), err)
	}
	defer conn.Close()

	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Fatalf("runner: reading session frame: %v", err)
	}
	var sessionFrame controlMessage
	if err := json.Unmarshal(data, &sessionFrame); err != nil || sessionFrame.Type != "session" {
		log.Fatalf("runner: unexpected first frame: %s", data)
	}
	mode, err := codec.ParseMode(sessionFrame.Compression)
	if err != nil {
		log.Fatalf("runner: %v", err)
	}
	c, err := codec.New(mode)
	if err != nil {
		log.Fatalf("runner: %v", err)
	}
	fmt.Fprintf(os.Stderr, "session %s ready (compression=%s)\nviewer URL: %s/?id=%s&token=%s\n",
		sessionFrame.ID, mode, httpBase(u), sessionFrame.ID, *token)

	cmd := exec.Command(shell, args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	cols, rows := termSize()
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: cols, Rows: rows})
	if err != nil {
		log.Fatalf("runner: starting pty: %v", err)
	}
	defer ptmx.Close()

	stdinFd := int(os.Stdin.Fd())
	prevState, err := term.MakeRaw(stdinFd)
	if err == nil {
		defer term.Restore(stdinFd, prevState)
	}

	resizeCh := make(chan os.Signal, 1)
	signal.Notify(resizeCh, syscall.SIGWINCH)
	go func() {
		for range resizeCh {
			cols, rows := termSize()
			pty.Setsize(ptmx, &pty.Winsize{Cols: cols, Rows: rows})
			resize, _ := json.Marshal(controlMessage{Type: "resize", Cols: int(cols), Rows: int(rows)})
			conn.WriteMessage(websocket.TextMessage, resize)
		}
	}()

	done := make(chan struct{})

	// PTY output -> relay, compressed per the announced mode.
	go func() {
		defer close(done)
		buf := make([]byte, 32*1024)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				compressed, cErr := c.Compress(buf[:n])
				if cErr == nil {
					conn.WriteMessage(websocket.BinaryMessage, compressed)
				}
			}
			if err != nil {
				return
			}
		}
	}()

	// Relay -> PTY input (viewer keystrokes) and control messages.
	go func() {
		for {
			messageType, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			switch messageType {
			case websocket.BinaryMessage:
				ptmx.Write(data)
			case websocket.TextMessage:
				var msg controlMessage
				if json.Unmarshal(data, &msg) == nil && msg.Type == "resize" && msg.Cols > 0 && msg.Rows > 0 {
					pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(msg.Cols), Rows: uint16(msg.Rows)})
				}
			}
		}
	}()

	<-done

	exitCode := 0
	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	exitMsg, _ := json.Marshal(controlMessage{Type: "exit", Code: exitCode})
	conn.WriteMessage(websocket.TextMessage, exitMsg)
}

func termSize() (cols, rows uint16) {
	w, h, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return uint16(w), uint16(h)
}

func httpBase(u *url.URL) string {
	scheme := "http"
	if u.Scheme == "wss" {
		scheme = "https"
	}
	return scheme + "://" + u.Host
}
