// Command board is a terminal dashboard for one campus location.
// It polls the API's bus list and redraws the Upcoming and Completed tables
// after every fetch until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/campusboard/busboard/internal/board"
	"github.com/campusboard/busboard/internal/config"
	"github.com/campusboard/busboard/internal/domain"
)

// clearScreen moves the cursor home and erases the terminal.
const clearScreen = "\033[H\033[2J"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	apiURL := flag.String("api", envOr("BOARD_API_URL", "http://localhost:8080"), "base URL of the bus API")
	location := flag.String("location", domain.DefaultViewLocation, "board view: Uniworld-1, Uniworld-2, Macro or Special")
	interval := flag.Duration("interval", board.DefaultInterval, "refresh interval")
	tz := flag.String("tz", envOr("BOARD_TIMEZONE", "Asia/Kolkata"), "time zone for day boundaries")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	view, ok := domain.ParseViewLocation(*location)
	if !ok {
		slog.Error("unknown location", "location", *location)
		os.Exit(2)
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		slog.Error("unknown time zone", "tz", *tz, "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := board.NewPoller(board.NewClient(*apiURL, nil), *interval, logger)
	p.OnUpdate = func(s board.Snapshot) {
		b := domain.BuildBoard(s.Entries, view, time.Now().In(loc))
		fmt.Fprint(os.Stdout, clearScreen)
		if err := board.Render(os.Stdout, b); err != nil {
			slog.Error("render failed", "error", err)
		}
		if s.Err != nil {
			fmt.Fprintf(os.Stdout, "\nlast refresh failed: %v\n", s.Err)
		}
	}

	slog.Info("board starting", "api", *apiURL, "location", view, "interval", interval.String())
	p.Run(ctx)
	slog.Info("board stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
