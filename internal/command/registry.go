// Package command is the host's registry of user-invocable actions. Add-ons
// register commands here; the TUI binds them to keys and the command
// palette, the CLI resolves them by name.
package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"
)

// ErrNotFound indicates no registered command matches
var ErrNotFound = errors.New("command not found")

// ErrDuplicate indicates a command ID is already registered
var ErrDuplicate = errors.New("command already registered")

// Command is a user-invocable action
type Command struct {
	ID          string
	Description string
	Category    string
	Gesture     string // optional key binding, empty when unbound
	Run         func() error
}

// Match is a ranked palette hit
type Match struct {
	Command        Command
	MatchedIndexes []int // rune positions in Description
	Score          int
}

// Registry holds commands in registration order
type Registry struct {
	mu       sync.RWMutex
	commands []Command
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a command
func (r *Registry) Register(cmd Command) error {
	if cmd.ID == "" {
		return errors.New("command ID is required")
	}
	if cmd.Run == nil {
		return fmt.Errorf("command %q has no handler", cmd.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.commands {
		if c.ID == cmd.ID {
			return fmt.Errorf("%w: %s", ErrDuplicate, cmd.ID)
		}
	}
	r.commands = append(r.commands, cmd)
	return nil
}

// Unregister removes a command; unknown IDs are ignored
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.commands {
		if c.ID == id {
			r.commands = append(r.commands[:i], r.commands[i+1:]...)
			return
		}
	}
}

// Get returns the command with the given ID
func (r *Registry) Get(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.commands {
		if c.ID == id {
			return c, true
		}
	}
	return Command{}, false
}

// ByGesture returns the command bound to a key
func (r *Registry) ByGesture(gesture string) (Command, bool) {
	if gesture == "" {
		return Command{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.commands {
		if c.Gesture == gesture {
			return c, true
		}
	}
	return Command{}, false
}

// All returns every command in registration order
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Command(nil), r.commands...)
}

// descriptions implements sahilm/fuzzy.Source over lowercase descriptions
type descriptions []Command

func (d descriptions) String(i int) string { return strings.ToLower(d[i].Description) }
func (d descriptions) Len() int { return len(d) }

// Search ranks commands for the palette. An empty query lists everything.
func (r *Registry) Search(query string) []Match {
	cmds := r.All()

	query = strings.TrimSpace(query)
	if query == "" {
		matches := make([]Match, len(cmds))
		for i, c := range cmds {
			matches[i] = Match{Command: c}
		}
		return matches
	}

	hits := sfuzzy.FindFrom(strings.ToLower(query), descriptions(cmds))
	matches := make([]Match, len(hits))
	for i, h := range hits {
		matches[i] = Match{
			Command:        cmds[h.Index],
			MatchedIndexes: h.MatchedIndexes,
			Score:          h.Score,
		}
	}
	return matches
}

// Resolve finds a command by exact ID, then by closest description.
// Used by the CLI where the user types a loose name.
func (r *Registry) Resolve(name string) (Command, error) {
	name = strings.TrimSpace(name)
	if cmd, ok := r.Get(name); ok {
		return cmd, nil
	}

	cmds := r.All()
	targets := make([]string, len(cmds))
	for i, c := range cmds {
		targets[i] = c.Description
	}

	ranks := fuzzy.RankFindNormalizedFold(name, targets)
	if len(ranks) == 0 {
		return Command{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	sort.Sort(ranks)
	return cmds[ranks[0].OriginalIndex], nil
}
