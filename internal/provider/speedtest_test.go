package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/velocidad/internal/domain"
	"github.com/showwin/speedtest-go/speedtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePing assigns canned latencies by server ID
func fakePing(latencies map[string]time.Duration, failing ...string) pingFunc {
	return func(_ context.Context, s *speedtest.Server) error {
		for _, id := range failing {
			if s.ID == id {
				return errors.New("timeout")
			}
		}
		s.Latency = latencies[s.ID]
		return nil
	}
}

func TestBestServer_PicksLowestLatency(t *testing.T) {
	t.Parallel()

	servers := speedtest.Servers{
		{ID: "1", Name: "Monterrey"},
		{ID: "2", Name: "Guadalajara"},
		{ID: "3", Name: "CDMX"},
	}
	ping := fakePing(map[string]time.Duration{"1": 40 * time.Millisecond, "2": 12 * time.Millisecond, "3": 30 * time.Millisecond})

	best, err := bestServer(context.Background(), servers, ping)
	require.NoError(t, err)
	assert.Equal(t, "Guadalajara", best.Name)
}

func TestBestServer_OnlyPingsClosestCandidates(t *testing.T) {
	t.Parallel()

	var servers speedtest.Servers
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		servers = append(servers, &speedtest.Server{ID: id})
	}
	latencies := map[string]time.Duration{
		"a": 50 * time.Millisecond, "b": 40 * time.Millisecond, "c": 30 * time.Millisecond,
		"d": 20 * time.Millisecond, "e": 10 * time.Millisecond, "f": time.Millisecond,
	}

	best, err := bestServer(context.Background(), servers, fakePing(latencies))
	require.NoError(t, err)
	assert.Equal(t, "e", best.ID)
}

func TestBestServer_SkipsUnreachable(t *testing.T) {
	t.Parallel()

	servers := speedtest.Servers{{ID: "1"}, {ID: "2"}}
	ping := fakePing(map[string]time.Duration{"1": time.Millisecond, "2": 20 * time.Millisecond}, "1")

	best, err := bestServer(context.Background(), servers, ping)
	require.NoError(t, err)
	assert.Equal(t, "2", best.ID)
}

func TestBestServer_Errors(t *testing.T) {
	t.Parallel()

	_, err := bestServer(context.Background(), nil, fakePing(nil))
	assert.ErrorIs(t, err, errNoServers)

	_, err = bestServer(context.Background(), speedtest.Servers{{ID: "1"}}, fakePing(nil, "1"))
	assert.ErrorContains(t, err, "timeout")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bestServer(ctx, speedtest.Servers{{ID: "1"}}, fakePing(nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBitsPerSecond(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 50_000_000.0, bitsPerSecond(speedtest.ByteRate(6_250_000)), 1e-6)
}

func TestMeasureWithoutServer(t *testing.T) {
	t.Parallel()

	p := NewSpeedtest(nil)
	_, err := p.MeasureDownload(context.Background())
	assert.Error(t, err)
	_, err = p.MeasureUpload(context.Background())
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	factory, err := Load(false, nil)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.Nil(t, factory)

	factory, err = Load(true, nil)
	require.NoError(t, err)
	p, err := factory.NewProvider()
	require.NoError(t, err)
	assert.IsType(t, &Speedtest{}, p)
}
