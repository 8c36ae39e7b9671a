// Package host is the surface add-ons register with: invocable commands and
// settings panels. The TUI and the CLI each render it their own way.
package host

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mmcdole/velocidad/internal/command"
)

// ErrPanelNotFound indicates no settings panel has the requested ID
var ErrPanelNotFound = errors.New("settings panel not found")

// Toggle is one boolean setting shown as a checkbox
type Toggle struct {
	Key   string
	Label string
	Value bool
}

// SettingsPanel is a page of toggles owned by an add-on. Load returns the
// current values; Save persists all of them at once.
type SettingsPanel struct {
	ID    string
	Title string
	Load  func() []Toggle
	Save  func(toggles []Toggle) error
}

// Host holds everything add-ons have registered
type Host struct {
	commands *command.Registry

	mu     sync.RWMutex
	panels []SettingsPanel
}

// New creates an empty host
func New() *Host {
	return &Host{commands: command.NewRegistry()}
}

// Commands returns the command registry
func (h *Host) Commands() *command.Registry {
	return h.commands
}

// RegisterCommand adds an invocable command
func (h *Host) RegisterCommand(cmd command.Command) error {
	return h.commands.Register(cmd)
}

// UnregisterCommand removes a command
func (h *Host) UnregisterCommand(id string) {
	h.commands.Unregister(id)
}

// RegisterSettingsPanel adds a settings panel
func (h *Host) RegisterSettingsPanel(panel SettingsPanel) error {
	if panel.ID == "" || panel.Load == nil || panel.Save == nil {
		return fmt.Errorf("settings panel %q is incomplete", panel.ID)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range h.panels {
		if p.ID == panel.ID {
			return fmt.Errorf("settings panel %q already registered", panel.ID)
		}
	}
	h.panels = append(h.panels, panel)
	return nil
}

// UnregisterSettingsPanel removes a settings panel; unknown IDs are ignored
func (h *Host) UnregisterSettingsPanel(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, p := range h.panels {
		if p.ID == id {
			h.panels = append(h.panels[:i], h.panels[i+1:]...)
			return
		}
	}
}

// Panel returns a registered settings panel
func (h *Host) Panel(id string) (SettingsPanel, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, p := range h.panels {
		if p.ID == id {
			return p, nil
		}
	}
	return SettingsPanel{}, fmt.Errorf("%w: %s", ErrPanelNotFound, id)
}

// Panels returns every settings panel in registration order
func (h *Host) Panels() []SettingsPanel {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]SettingsPanel(nil), h.panels...)
}
