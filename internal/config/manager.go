package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed defaults/parameters.json
var defaultParameters []byte

// DefaultParameters returns the built-in parameters document.
func DefaultParameters() []byte {
	out := make([]byte, len(defaultParameters))
	copy(out, defaultParameters)
	return out
}

// Manager prepares the files the application reads on start-up.
type Manager struct {
	config Config
}

// NewManager creates a new configuration manager
func NewManager(cfg Config) *Manager {
	return &Manager{config: cfg}
}

// EnsureParameters makes sure the parameters document exists, writing the
// built-in defaults when it is missing and CreateMissing is set. It reports
// whether a file was created.
func (m *Manager) EnsureParameters() (created bool, err error) {
	path := m.config.Parameters
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat parameters file: %w", err)
	}
	if !m.config.CreateMissing {
		return false, fmt.Errorf("parameters file %s does not exist", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create parameters directory: %w", err)
		}
	}
	if err := os.WriteFile(path, defaultParameters, 0o644); err != nil {
		return false, fmt.Errorf("failed to write default parameters: %w", err)
	}
	return true, nil
}
