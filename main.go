// Package main is the entry point for the RSVP Keyboard parameter editor.
package main

import (
	"fmt"
	"os"

	"github.com/billie-coop/rsvp/internal/app"
	"github.com/billie-coop/rsvp/internal/config"
	"github.com/billie-coop/rsvp/internal/events"
	"github.com/billie-coop/rsvp/internal/tui"
	tea "github.com/charmbracelet/bubbletea/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, logFile, err := config.NewManager(cfg).OpenLog()
	if err != nil {
		return err
	}
	defer logFile.Close()

	store, err := app.LoadStore(cfg, logger)
	if err != nil {
		logger.Error("failed to load parameters", "path", cfg.Parameters, "error", err)
		return err
	}
	logger.Info("parameters loaded", "path", cfg.Parameters, "count", store.Len())

	broker := events.NewBroker()
	host := tui.NewHost()
	appInstance, err := app.New(cfg, store, host, broker, logger)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	if err := appInstance.Render(); err != nil {
		return fmt.Errorf("failed to render screens: %w", err)
	}

	p := tea.NewProgram(tui.New(appInstance, host), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	if store.Dirty() {
		logger.Warn("exited with unsaved changes")
	}
	return nil
}
