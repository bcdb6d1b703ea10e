// parley - a terminal messaging client with AI-backed chats.
//
// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kestrelworks/parley/internal/assistant"
	"github.com/kestrelworks/parley/internal/config"
	"github.com/kestrelworks/parley/internal/export"
	"github.com/kestrelworks/parley/internal/state"
	"github.com/kestrelworks/parley/internal/store"
	"github.com/kestrelworks/parley/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	args := os.Args[1:]
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "":
		runTUI()
	case "version", "--version", "-v":
		fmt.Printf("parley %s (%s)\n", Version, GitCommit)
	case "config":
		handleConfig()
	case "export":
		handleExport(args[1:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`parley - terminal messaging with AI-backed chats

Usage:
  parley              start the client
  parley config       show the active configuration
  parley export NAME  export a chat transcript to Markdown
  parley version      print version information`)
}

// loadConfig loads configuration, degrading to defaults when the files on
// disk are unusable.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if cfg == nil {
		cfg = config.Default()
		cfg.ApplyEnvOverrides()
		cfg.SetDefaults()
	}
	return cfg
}

// openState loads config and the persisted snapshot.
func openState() (*config.Config, *state.State) {
	cfg := loadConfig()

	st, err := store.New(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open data directory %s: %v\n", cfg.DataDir, err)
		os.Exit(1)
	}
	return cfg, state.Open(st)
}

func runTUI() {
	cfg, st := openState()

	client := assistant.NewClient(cfg.Assistant)
	orch := assistant.NewOrchestrator(st, client, cfg.Assistant.TypingDelay)

	app := ui.New(cfg, st, orch)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func handleConfig() {
	fmt.Println(loadConfig().String())
}

// handleExport writes a named chat's transcript to the current directory.
func handleExport(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: parley export NAME")
		os.Exit(1)
	}
	name := strings.Join(args, " ")

	_, st := openState()
	for _, c := range st.Chats("") {
		if !strings.EqualFold(c.Name, name) {
			continue
		}
		path, err := export.ExportMarkdown(&export.Transcript{
			Chat:     c,
			Messages: st.Messages(c.ID),
		}, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported to %s\n", path)
		return
	}

	fmt.Fprintf(os.Stderr, "Error: no chat named %q\n", name)
	os.Exit(1)
}
