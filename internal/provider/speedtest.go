package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/velocidad/internal/domain"
	"github.com/showwin/speedtest-go/speedtest"
)

// candidateServers is how many of the closest servers are pinged when
// picking the reference server
const candidateServers = 5

// errNoServers is returned when the server list comes back empty
var errNoServers = errors.New("no speed test servers available")

// pingFunc measures latency for a server, filling in its Latency field
type pingFunc func(ctx context.Context, s *speedtest.Server) error

// Speedtest measures bandwidth with speedtest.net servers
type Speedtest struct {
	client *speedtest.Speedtest
	server *speedtest.Server
	ping   pingFunc
	logger *slog.Logger
}

// NewSpeedtest creates a provider backed by a fresh speedtest.net client
func NewSpeedtest(logger *slog.Logger) *Speedtest {
	if logger == nil {
		logger = slog.Default()
	}
	return &Speedtest{
		client: speedtest.New(),
		ping:   pingServer,
		logger: logger,
	}
}

// SelectServer fetches the server list and keeps the lowest-latency server
// among the closest candidates
func (p *Speedtest) SelectServer(ctx context.Context) (domain.ServerInfo, error) {
	servers, err := p.client.FetchServerListContext(ctx)
	if err != nil {
		return domain.ServerInfo{}, fmt.Errorf("failed to fetch server list: %w", err)
	}

	best, err := bestServer(ctx, servers, p.ping)
	if err != nil {
		return domain.ServerInfo{}, err
	}

	p.server = best
	p.logger.Info("selected speed test server",
		"id", best.ID, "name", best.Name, "sponsor", best.Sponsor,
		"country", best.Country, "latency", best.Latency)

	return serverInfo(best), nil
}

// MeasureDownload returns the download throughput in bits per second
func (p *Speedtest) MeasureDownload(ctx context.Context) (float64, error) {
	if p.server == nil {
		return 0, errors.New("no server selected")
	}
	if err := p.server.DownloadTestContext(ctx); err != nil {
		return 0, fmt.Errorf("download test failed: %w", err)
	}
	return bitsPerSecond(p.server.DLSpeed), nil
}

// MeasureUpload returns the upload throughput in bits per second
func (p *Speedtest) MeasureUpload(ctx context.Context) (float64, error) {
	if p.server == nil {
		return 0, errors.New("no server selected")
	}
	if err := p.server.UploadTestContext(ctx); err != nil {
		return 0, fmt.Errorf("upload test failed: %w", err)
	}
	return bitsPerSecond(p.server.ULSpeed), nil
}

func pingServer(ctx context.Context, s *speedtest.Server) error {
	return s.PingTestContext(ctx, nil)
}

// bestServer pings up to candidateServers entries (the list is ordered by
// distance) and returns the one with the lowest latency. Servers that fail
// to answer are skipped.
func bestServer(ctx context.Context, servers speedtest.Servers, ping pingFunc) (*speedtest.Server, error) {
	if len(servers) == 0 {
		return nil, errNoServers
	}

	candidates := servers
	if len(candidates) > candidateServers {
		candidates = candidates[:candidateServers]
	}

	var best *speedtest.Server
	var lastErr error
	for _, s := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := ping(ctx, s); err != nil {
			lastErr = err
			continue
		}
		if best == nil || s.Latency < best.Latency {
			best = s
		}
	}

	if best == nil {
		return nil, fmt.Errorf("no server answered: %w", lastErr)
	}
	return best, nil
}

// bitsPerSecond converts speedtest-go's bytes-per-second rate
func bitsPerSecond(rate speedtest.ByteRate) float64 {
	return float64(rate) * 8
}

func serverInfo(s *speedtest.Server) domain.ServerInfo {
	return domain.ServerInfo{
		ID:      s.ID,
		Name:    s.Name,
		Sponsor: s.Sponsor,
		Country: s.Country,
		Host:    s.Host,
		Latency: s.Latency,
	}
}
