// Bun Bakery — a terminal burger kitchen.
//
// Usage:
//
//	bunbakery [-verbose] [-quiet] [-mute] [-save path] [-seed n]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/bunbaker/bunbakery/internal/clock"
	"github.com/bunbaker/bunbakery/internal/display"
	"github.com/bunbaker/bunbakery/internal/domain"
	"github.com/bunbaker/bunbakery/internal/engine"
	"github.com/bunbaker/bunbakery/internal/logger"
	"github.com/bunbaker/bunbakery/internal/sound"
	"github.com/bunbaker/bunbakery/internal/storage"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".bakery-logs/bakery.log", "file to write logs to (use \"stderr\" to log to console)")
	mute := flag.Bool("mute", false, "disable sound effects")
	savePath := flag.String("save", envOr("BAKERY_SAVE", filepath.Join("data", "game_data.json")), "path to the progress save file")
	seed := flag.Int64("seed", 0, "rng seed for order generation (0 = time-based)")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the game screen stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs) to the
	// same output so it doesn't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Wire dependencies.
	catalog := domain.DefaultCatalog()
	clk := clock.NewSystem()
	store := storage.NewFileStore(*savePath, catalog, log)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	// Sound: audio init failure is never fatal, it degrades to the log.
	var notifier domain.Notifier = sound.NewLogNotifier(log)
	if !*mute && os.Getenv("BAKERY_MUTE") == "" {
		player, err := sound.NewPlayer(log)
		if err != nil {
			log.Error("audio init failed, sound disabled: %v", err)
		} else {
			notifier = player
		}
	}

	eng, err := engine.New(context.Background(), catalog, store, notifier, clk, rng, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Bubble Tea owns the terminal — blocks until quit.
	ui := display.NewUI(eng, clk, log)
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
