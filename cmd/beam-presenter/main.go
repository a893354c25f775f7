package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/beamdeck/beam/internal/markdown"
	"github.com/beamdeck/beam/internal/presenter"
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
	var url string
	var showVersion bool

	flag.StringVar(&url, "url", "http://127.0.0.1:8765", "address of the beam host serving presenter sync")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Beam Presenter - Speaker View Client\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: beam-presenter [flags] <deck.md>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), url); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(deckPath, url string) error {
	global, slides, err := markdown.Load(deckPath)
	if err != nil {
		return fmt.Errorf("loading deck %s: %w", deckPath, err)
	}

	client, err := presenter.NewWSClient(url)
	if err != nil {
		return fmt.Errorf("cannot reach beam host at %s: %w\nIs beam running with -serve?", url, err)
	}

	shell, err := tui.NewShell(tui.Options{
		Slides:          slides,
		Global:          global,
		SyncClient:      client,
		IsPresenterView: true,
	})
	if err != nil {
		return err
	}
	defer shell.Close()

	p := tea.NewProgram(shell, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("beam-presenter requires a real terminal")
		}
		return fmt.Errorf("running presenter view: %w", err)
	}
	return nil
}
