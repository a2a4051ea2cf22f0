// Command relay runs the ptyshare relay server: it multiplexes one PTY
// runner and any number of browser viewers per session (spec.md 1).
package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/relaylabs/ptyshare/internal/assets"
	"github.com/relaylabs/ptyshare/internal/auth"
	"github.com/relaylabs/ptyshare/internal/codec"
	"github.com/relaylabs/ptyshare/internal/config"
	"github.com/relaylabs/ptyshare/internal/relay"
	"github.com/relaylabs/ptyshare/internal/session"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	sessions := session.NewManager(cfg.Compression, cfg.SessionTTL, cfg.StatsInterval, logger)
	go sessions.Stats().Run()

	checker := auth.NewChecker(cfg.Token)
	enableDeflate := cfg.Compression == codec.ModeDeflate
	server := relay.New(sessions, checker, assets.FS, enableDeflate, logger)

	addr := ":" + strconv.Itoa(cfg.Port)
	logger.Printf("relay listening on %s (compression=%s, session-ttl=%s, stats-interval=%s)",
		addr, cfg.Compression, cfg.SessionTTL, cfg.StatsInterval)

	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		logger.Fatalf("listen: %v", err)
	}
}
