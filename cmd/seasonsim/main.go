package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/leduyquang2003/badminton-team-selector/internal/seasonsim"
	"github.com/leduyquang2003/badminton-team-selector/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumPlayers = 12
	defaultNumMatches = 200
	defaultSeed       = 42
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numPlayers = flag.Int("players", defaultNumPlayers, "Number of players to seed")
		numMatches = flag.Int("matches", defaultNumMatches, "Number of matches to play")
		seed       = flag.Int64("seed", defaultSeed, "Random seed for deterministic runs")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose    = flag.Bool("verbose", false, "Enable per-match logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &seasonsim.Config{
		BaseURL:    *baseURL,
		NumPlayers: *numPlayers,
		NumMatches: *numMatches,
		Seed:       *seed,
		Timeout:    *timeout,
		Verbose:    *verbose,
	}

	if err := seasonsim.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
