package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/beamdeck/beam/internal/markdown"
	"github.com/beamdeck/beam/internal/presenter"
	"github.com/beamdeck/beam/internal/timelog"
	"github.com/beamdeck/beam/internal/tui"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var syncAddr string
	var timeLogPath string
	var serve bool
	var noWatch bool
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/beam/config.yml)")
	flag.StringVar(&syncAddr, "sync-addr", "", "listen address for presenter sync (implies -serve)")
	flag.StringVar(&timeLogPath, "timelog", "", "append per-slide timings to this file")
	flag.BoolVar(&serve, "serve", false, "serve presenter sync for beam-presenter clients")
	flag.BoolVar(&noWatch, "no-watch", false, "disable live reload of the deck file")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Beam - Terminal Presentation Host\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: beam [flags] <deck.md>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	deckPath := flag.Arg(0)

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if syncAddr != "" {
		cfg.SyncAddr = syncAddr
		serve = true
	}
	if timeLogPath != "" {
		cfg.TimeLog = timeLogPath
	}
	if noWatch {
		cfg.Watch = false
	}

	if err := run(deckPath, cfg, serve); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(deckPath string, cfg cliConfig, serve bool) error {
	global, slides, err := markdown.Load(deckPath)
	if err != nil {
		return fmt.Errorf("loading deck %s: %w", deckPath, err)
	}
	global = applyConfig(global, cfg)

	opts := tui.Options{
		Slides: slides,
		Global: global,
		Window: tui.NewAltScreenManager(cfg.Fullscreen),
	}

	if cfg.TimeLog != "" {
		tlog, err := timelog.Open(cfg.TimeLog)
		if err != nil {
			return fmt.Errorf("opening time log: %w", err)
		}
		defer tlog.Close()
		opts.TimeLog = tlog
	}

	var srv *presenter.Server
	if serve {
		srv = presenter.NewServer(cfg.SyncAddr)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("starting sync server: %w", err)
		}
		defer srv.Stop()
		opts.SyncClient = srv.LocalClient()
	}

	shell, err := tui.NewShell(opts)
	if err != nil {
		return err
	}
	defer shell.Close()

	progOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.Fullscreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(shell, progOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var g errgroup.Group

	if cfg.Watch {
		watcher, err := markdown.Watch(deckPath)
		if err != nil {
			return fmt.Errorf("watching deck: %w", err)
		}
		g.Go(func() error {
			defer watcher.Close()
			for {
				select {
				case reload, ok := <-watcher.Reloads():
					if !ok {
						return nil
					}
					p.Send(tui.DeckReloadedMsg{Reload: reload})
				case <-ctx.Done():
					return nil
				}
			}
		})
	}

	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil {
			if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
				return fmt.Errorf("beam requires a real terminal")
			}
			return fmt.Errorf("running presentation: %w", err)
		}
		return nil
	})

	// The watcher goroutine exits through the cancel once the program
	// finishes, so Wait does not hang on it.
	return g.Wait()
}
