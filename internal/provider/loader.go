package provider

import (
	"log/slog"

	"github.com/mmcdole/velocidad/internal/domain"
)

// Factory creates a fresh speedtest.net provider for each run
type Factory struct {
	logger *slog.Logger
}

// NewProvider implements domain.ProviderFactory
func (f *Factory) NewProvider() (domain.Provider, error) {
	return NewSpeedtest(f.logger), nil
}

// Load resolves the measurement provider once, at activation. A disabled
// provider yields domain.ErrProviderUnavailable and a nil factory; callers
// keep the nil factory so every run reports the provider as unavailable.
func Load(enabled bool, logger *slog.Logger) (domain.ProviderFactory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !enabled {
		logger.Warn("measurement provider disabled by configuration")
		return nil, domain.ErrProviderUnavailable
	}
	logger.Debug("measurement provider loaded", "provider", "speedtest.net")
	return &Factory{logger: logger}, nil
}
