package speech

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	// speakTimeout bounds a single utterance so a hung synthesizer cannot
	// stall the queue
	speakTimeout = 30 * time.Second

	// queueSize is how many notices can wait behind the one being spoken
	queueSize = 32
)

// voiceArgs builds the arguments for a speech command
type voiceArgs func(text string) []string

// voice describes one speech synthesizer
type voice struct {
	command string
	args    voiceArgs
}

// voices registry - every synthesizer we know how to drive
var voices = map[string]voice{
	"spd-say": {
		command: "spd-say",
		args:    func(text string) []string { return []string{"-l", "es", "--", text} },
	},
	"espeak-ng": {
		command: "espeak-ng",
		args:    func(text string) []string { return []string{"-v", "es", "--", text} },
	},
	"espeak": {
		command: "espeak",
		args:    func(text string) []string { return []string{"-v", "es", "--", text} },
	},
	"say": {
		command: "say",
		args:    func(text string) []string { return []string{"--", text} },
	},
	"powershell": {
		command: "powershell",
		args: func(text string) []string {
			quoted := strings.ReplaceAll(text, "'", "''")
			script := "Add-Type -AssemblyName System.Speech; " +
				"(New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak('" + quoted + "')"
			return []string{"-NoProfile", "-Command", script}
		},
	},
}

// candidateVoices defines the preferred synthesizer order for each platform
var candidateVoices = map[string][]string{
	"darwin":  {"say"},
	"linux":   {"spd-say", "espeak-ng", "espeak"},
	"windows": {"powershell"},
}

// lookPath is swapped in tests
var lookPath = exec.LookPath

// runFunc runs one synthesizer process to completion
type runFunc func(ctx context.Context, path string, args ...string) error

func execRun(ctx context.Context, path string, args ...string) error {
	return exec.CommandContext(ctx, path, args...).Run()
}

// Speaker speaks notices through an external synthesizer, one at a time
// and in the order they were given
type Speaker struct {
	name   string
	path   string
	args   voiceArgs
	run    runFunc
	logger *slog.Logger

	queue  chan string
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// SpeakerOptions selects the synthesizer
type SpeakerOptions struct {
	Command  string   // configured command, empty for auto-detection
	Args     []string // extra arguments placed before the text
	Platform string   // defaults to runtime.GOOS
	Logger   *slog.Logger

	run runFunc // replaced in tests
}

// NewSpeaker resolves the configured or detected synthesizer
func NewSpeaker(opts SpeakerOptions) (*Speaker, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	platform := opts.Platform
	if platform == "" {
		platform = runtime.GOOS
	}

	// Tier 1: User configured a specific command
	if opts.Command != "" {
		path, err := lookPath(opts.Command)
		if err != nil {
			return nil, fmt.Errorf("speech command %q not found: %w", opts.Command, err)
		}
		extra := append([]string{}, opts.Args...)
		args := func(text string) []string { return append(append([]string{}, extra...), text) }
		if v, ok := voices[opts.Command]; ok && len(extra) == 0 {
			args = v.args
		}
		logger.Info("using configured speech command", "command", opts.Command)
		return newSpeaker(opts.Command, path, args, opts.run, logger), nil
	}

	// Tier 2: Try candidate chain for the platform
	candidates, ok := candidateVoices[platform]
	if !ok {
		candidates = candidateVoices["linux"] // default
	}
	for _, name := range candidates {
		v := voices[name]
		path, err := lookPath(v.command)
		if err != nil {
			logger.Debug("speech command not available", "command", v.command, "error", err)
			continue
		}
		logger.Info("using detected speech command", "command", name)
		return newSpeaker(name, path, v.args, opts.run, logger), nil
	}

	return nil, fmt.Errorf("no speech synthesizer found for %s", platform)
}

// newSpeaker starts the worker that drains the queue
func newSpeaker(name, path string, args voiceArgs, run runFunc, logger *slog.Logger) *Speaker {
	if run == nil {
		run = execRun
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Speaker{
		name:   name,
		path:   path,
		args:   args,
		run:    run,
		logger: logger.With("command", name),
		queue:  make(chan string, queueSize),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.loop()
	return s
}

// Name returns the synthesizer name
func (s *Speaker) Name() string {
	return s.name
}

// Notify queues text behind any notice still being spoken. It never
// blocks; a full queue drops the notice with a warning.
func (s *Speaker) Notify(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.queue <- text:
	default:
		s.logger.Warn("speech queue full, notice dropped", "text", text)
	}
}

// Close stops the worker, interrupting the current utterance
func (s *Speaker) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	<-s.done
	return nil
}

// loop speaks queued notices sequentially until Close
func (s *Speaker) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case text := <-s.queue:
			s.speak(text)
		}
	}
}

func (s *Speaker) speak(text string) {
	ctx, cancel := context.WithTimeout(s.ctx, speakTimeout)
	defer cancel()
	if err := s.run(ctx, s.path, s.args(text)...); err != nil {
		s.logger.Debug("speech command failed", "error", err)
	}
}
