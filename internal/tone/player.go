package tone

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/mmcdole/velocidad/internal/domain"
)

// argsFunc builds the arguments for a tone command
type argsFunc func(frequencyHz int, duration time.Duration) []string

// commandSpec describes one external tone generator
type commandSpec struct {
	command string
	args    argsFunc
}

// commands registry - every external tone generator we know how to drive
var commands = map[string]commandSpec{
	"sox": {
		command: "play",
		args: func(hz int, d time.Duration) []string {
			return []string{"-q", "-n", "synth", strconv.FormatFloat(d.Seconds(), 'f', 3, 64), "sine", strconv.Itoa(hz)}
		},
	},
	"beep": {
		command: "beep",
		args: func(hz int, d time.Duration) []string {
			return []string{"-f", strconv.Itoa(hz), "-l", strconv.FormatInt(d.Milliseconds(), 10)}
		},
	},
	"powershell": {
		command: "powershell",
		args: func(hz int, d time.Duration) []string {
			return []string{"-NoProfile", "-Command", fmt.Sprintf("[console]::beep(%d,%d)", hz, d.Milliseconds())}
		},
	},
}

// candidateCommands defines the preferred generator order for each platform
var candidateCommands = map[string][]string{
	"darwin":  {"sox"},
	"linux":   {"sox", "beep"},
	"windows": {"powershell"},
}

// lookPath is swapped in tests
var lookPath = exec.LookPath

// CommandPlayer plays tones through an external program
type CommandPlayer struct {
	name   string
	path   string
	args   argsFunc
	logger *slog.Logger
}

// Tone starts the generator and returns without waiting for it to finish
func (p *CommandPlayer) Tone(ctx context.Context, frequencyHz int, duration time.Duration) error {
	cmd := exec.CommandContext(ctx, p.path, p.args(frequencyHz, duration)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", p.name, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			p.logger.Debug("tone command exited", "player", p.name, "error", err)
		}
	}()
	return nil
}

// Name returns the generator name
func (p *CommandPlayer) Name() string {
	return p.name
}

// BellPlayer rings the terminal bell; pitch and length are not expressible
type BellPlayer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewBellPlayer creates a bell player writing to out
func NewBellPlayer(out io.Writer) *BellPlayer {
	return &BellPlayer{out: out}
}

// Tone writes a BEL character
func (p *BellPlayer) Tone(_ context.Context, _ int, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := io.WriteString(p.out, "\a")
	return err
}

// NullPlayer discards tones
type NullPlayer struct{}

// Tone does nothing
func (NullPlayer) Tone(context.Context, int, time.Duration) error { return nil }

// PlayerOptions selects and configures a tone player
type PlayerOptions struct {
	Name     string    // auto, sox, beep, powershell, bell, none
	Bell     io.Writer // bell output, nil disables the bell fallback
	Logger   *slog.Logger
	Platform string // defaults to runtime.GOOS
}

// NewPlayer resolves the configured tone player. Unknown or missing
// generators fall back to the terminal bell, then to silence.
func NewPlayer(opts PlayerOptions) domain.TonePlayer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	platform := opts.Platform
	if platform == "" {
		platform = runtime.GOOS
	}

	fallback := func() domain.TonePlayer {
		if opts.Bell == nil {
			return NullPlayer{}
		}
		return NewBellPlayer(opts.Bell)
	}

	switch opts.Name {
	case "none":
		return NullPlayer{}
	case "bell":
		return fallback()
	case "", "auto":
		candidates, ok := candidateCommands[platform]
		if !ok {
			candidates = candidateCommands["linux"] // default
		}
		for _, name := range candidates {
			if p, err := newCommandPlayer(name, logger); err == nil {
				logger.Info("using detected tone player", "player", name)
				return p
			}
			logger.Debug("tone player not available", "player", name)
		}
		logger.Info("no tone generator found, using terminal bell")
		return fallback()
	default:
		p, err := newCommandPlayer(opts.Name, logger)
		if err != nil {
			logger.Warn("configured tone player unavailable", "player", opts.Name, "error", err)
			return fallback()
		}
		return p
	}
}

func newCommandPlayer(name string, logger *slog.Logger) (*CommandPlayer, error) {
	def, ok := commands[name]
	if !ok {
		return nil, fmt.Errorf("unknown tone player %q", name)
	}
	path, err := lookPath(def.command)
	if err != nil {
		return nil, err
	}
	return &CommandPlayer{name: name, path: path, args: def.args, logger: logger}, nil
}
