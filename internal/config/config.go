// Package config centralizes the relay's process-wide, immutable
// startup configuration (spec.md 6): parsed once from flags with
// environment-variable fallbacks, in the teacher's os.Getenv-driven
// style (cmd/server/main.go's PORT lookup) generalized to flag.Parse.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/relaylabs/ptyshare/internal/codec"
)

const (
	DefaultPort          = 3000
	DefaultToken         = "secret"
	DefaultCompression   = codec.ModeDeflate
	DefaultSessionTTL    = 30 * time.Minute
	DefaultStatsInterval = 60 * time.Second
)

// Config holds the relay's startup parameters. Once constructed by
// Load, it is never mutated.
type Config struct {
	Port          int
	Token         string
	Compression   codec.Mode
	SessionTTL    time.Duration
	StatsInterval time.Duration
}

// Load parses args (typically os.Args[1:]) with flags, falling back to
// the RELAY_* environment variables, then the defaults above, per
// spec.md 6's configuration table.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("relay", flag.ContinueOnError)

	port := fs.Int("port", envInt("RELAY_PORT", DefaultPort), "HTTP listen port")
	token := fs.String("token", envString("RELAY_TOKEN", DefaultToken), "shared auth token for /runner and /ws")
	compression := fs.String("compression", envString("RELAY_COMPRESSION", string(DefaultCompression)), "binary codec: none|zstd|deflate|smaz")
	ttl := fs.Duration("session-ttl", envDuration("RELAY_SESSION_TTL", DefaultSessionTTL), "idle cleanup delay after a session exits with no viewers")
	statsInterval := fs.Duration("stats-interval", envDuration("RELAY_STATS_INTERVAL", DefaultStatsInterval), "periodic stats log cadence")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	mode, err := codec.ParseMode(*compression)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if *port < 1 || *port > 65535 {
		return Config{}, fmt.Errorf("config: port %d out of range [1,65535]", *port)
	}
	if *token == "" {
		return Config{}, fmt.Errorf("config: token must not be empty")
	}

	return Config{
		Port:          *port,
		Token:         *token,
		Compression:   mode,
		SessionTTL:    *ttl,
		StatsInterval: *statsInterval,
	}, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
