package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/mmcdole/velocidad/internal/domain"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// AppName names the config, data and log directories
const AppName = "velocidad"

// Namespace is the settings section owned by the speed test
const Namespace = "speedtestConfig"

// Config holds all application configuration
type Config struct {
	Speedtest domain.FeedbackConfig `mapstructure:"speedtestConfig"`
	Tones     TonesConfig           `mapstructure:"tones"`
	Speech    SpeechConfig          `mapstructure:"speech"`
	Provider  ProviderConfig        `mapstructure:"provider"`
	Logging   LoggingConfig         `mapstructure:"logging"`
}

// TonesConfig holds tone feedback configuration
type TonesConfig struct {
	Player   string        `mapstructure:"player"`   // auto, sox, beep, powershell, bell, none
	Interval time.Duration `mapstructure:"interval"` // pause between progress tones
	Duration time.Duration `mapstructure:"duration"` // length of each tone
}

// SpeechConfig holds spoken notice configuration
type SpeechConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Command string   `mapstructure:"command"` // empty for platform auto-detection
	Args    []string `mapstructure:"args"`
}

// ProviderConfig holds measurement provider configuration
type ProviderConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Speedtest: domain.DefaultFeedbackConfig(),
		Tones: TonesConfig{
			Player:   "auto",
			Interval: time.Second,
			Duration: 100 * time.Millisecond,
		},
		Speech: SpeechConfig{
			Enabled: true,
			Args:    []string{},
		},
		Provider: ProviderConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			File:  DefaultLogPath(),
			Level: "INFO",
		},
	}
}

// DefaultLogPath returns the default log file path
func DefaultLogPath() string {
	return filepath.Join(xdg.DataHome, AppName, AppName+".log")
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Store owns the on-disk configuration and the live settings
type Store struct {
	mu  sync.RWMutex
	v   *viper.Viper
	dir string
	cfg *Config
}

// NewStore creates a store rooted at dir; empty dir uses the XDG config home
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Environment variable overrides
	v.SetEnvPrefix("VELOCIDAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())

	return &Store{v: v, dir: dir, cfg: DefaultConfig()}
}

// setDefaults registers every key so env overrides and Unmarshal see them
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault(Namespace+".feedbackSound", cfg.Speedtest.FeedbackSound)
	v.SetDefault(Namespace+".resultsInWindow", cfg.Speedtest.ResultsInWindow)

	v.SetDefault("tones.player", cfg.Tones.Player)
	v.SetDefault("tones.interval", cfg.Tones.Interval)
	v.SetDefault("tones.duration", cfg.Tones.Duration)

	v.SetDefault("speech.enabled", cfg.Speech.Enabled)
	v.SetDefault("speech.command", cfg.Speech.Command)
	v.SetDefault("speech.args", cfg.Speech.Args)

	v.SetDefault("provider.enabled", cfg.Provider.Enabled)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Load reads the config file if present and returns the merged configuration
func (s *Store) Load() (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Read config file if it exists
	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := s.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	s.cfg = cfg
	return cfg, nil
}

// Config returns a copy of the last loaded configuration
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.cfg
}

// Feedback returns the current speed test settings
func (s *Store) Feedback() domain.FeedbackConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Speedtest
}

// SaveFeedback writes both speed test settings and persists the file.
// The live settings only change once the file has been written.
func (s *Store) SaveFeedback(fb domain.FeedbackConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set(Namespace+".feedbackSound", fb.FeedbackSound)
	s.v.Set(Namespace+".resultsInWindow", fb.ResultsInWindow)

	if err := s.write(); err != nil {
		s.v.Set(Namespace+".feedbackSound", s.cfg.Speedtest.FeedbackSound)
		s.v.Set(Namespace+".resultsInWindow", s.cfg.Speedtest.ResultsInWindow)
		return err
	}

	s.cfg.Speedtest = fb
	return nil
}

// Path returns the config file path
func (s *Store) Path() string {
	return filepath.Join(s.dir, "config.yaml")
}

// write persists the viper state. Caller holds mu.
//
// viper folds keys to lower case on write, so the document is rebuilt with
// the speed test section under its camel-cased namespace.
func (s *Store) write() error {
	// Ensure config directory exists
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s.document())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// document returns every setting ready for encoding
func (s *Store) document() map[string]any {
	doc := s.v.AllSettings()
	delete(doc, strings.ToLower(Namespace))
	doc[Namespace] = map[string]any{
		"feedbackSound":   s.v.GetBool(Namespace + ".feedbackSound"),
		"resultsInWindow": s.v.GetBool(Namespace + ".resultsInWindow"),
	}
	return encodeDurations(doc)
}

// encodeDurations writes durations as "1s" rather than nanoseconds
func encodeDurations(m map[string]any) map[string]any {
	for k, v := range m {
		switch val := v.(type) {
		case time.Duration:
			m[k] = val.String()
		case map[string]any:
			m[k] = encodeDurations(val)
		}
	}
	return m
}
