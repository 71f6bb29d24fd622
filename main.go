package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/neuroforge/internal/config"
	"github.com/iburimskiy/neuroforge/internal/game"
	nflog "github.com/iburimskiy/neuroforge/internal/log"
	"github.com/iburimskiy/neuroforge/internal/notify"
	"github.com/iburimskiy/neuroforge/internal/particle"
	"github.com/iburimskiy/neuroforge/internal/prompt"
	"github.com/iburimskiy/neuroforge/internal/remote"
	"github.com/iburimskiy/neuroforge/internal/sound"
)

const (
	logDir      = "logs"
	logFileName = "neuroforge.log"
)

// setupLogging sends the standard logger to logs/neuroforge.log when debug
// is set and discards it otherwise. The returned file, if any, must be
// closed by the caller.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", logDir, err)
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	return f
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	if f := setupLogging(cfg.Debug); f != nil {
		defer f.Close()
	}
	logger := nflog.Std()
	if cfg.Debug {
		logger.SetLevel(nflog.LevelDebug)
	}

	seed := time.Now().UnixNano()
	client := remote.NewClient(cfg.FetchTimeout)

	player := sound.NewPlayer(cfg, logger)
	defer player.Close()

	notes := notify.NewCenter()
	notes.OnPush = func(n notify.Notification) {
		logger.Debugf("[NOTIFY] %s: %s", n.Severity, n.Message)
		player.Play(n.Severity)
		if cfg.DesktopNotify {
			go func() {
				if err := notify.Desktop(n); err != nil {
					logger.Warnf("[NOTIFY] desktop notification: %v", err)
				}
			}()
		}
	}

	g := game.New(game.Deps{
		Field:     particle.NewField(rand.New(rand.NewSource(seed))),
		Prompt:    prompt.NewController(prompt.NewStubGenerator(cfg.GenerateDelay, rand.New(rand.NewSource(seed+1))), client, logger),
		Downloads: prompt.NewDownloader(client, prompt.DialogPicker{}, logger),
		Notes:     notes,
		Cues:      player,
		Logger:    logger,
	})
	defer g.Close()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("NeuroForge - AI Art Generator")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Infof("[MAIN] NeuroForge loaded")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		panic(err)
	}
}
