package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGauge_NewIsIdle(t *testing.T) {
	t.Parallel()

	g := NewGauge()
	assert.Equal(t, GaugeSnapshot{Value: 0, Running: false}, g.Snapshot())

	select {
	case <-g.Done():
	default:
		t.Fatal("idle gauge should report done")
	}
}

func TestGauge_BeginAdmitsOnce(t *testing.T) {
	t.Parallel()

	g := NewGauge()
	require.True(t, g.Begin())
	assert.Equal(t, GaugeSnapshot{Value: GaugeSelect, Running: true}, g.Snapshot())

	g.Set(GaugeDownload)
	assert.False(t, g.Begin())
	assert.Equal(t, GaugeSnapshot{Value: GaugeDownload, Running: true}, g.Snapshot())
}

func TestGauge_CompleteThenRelease(t *testing.T) {
	t.Parallel()

	g := NewGauge()
	require.True(t, g.Begin())
	done := g.Done()

	g.Complete()
	assert.Equal(t, GaugeSnapshot{Value: GaugeComplete, Running: true}, g.Snapshot())
	select {
	case <-done:
	default:
		t.Fatal("done should be closed after Complete")
	}

	g.Release()
	assert.Equal(t, GaugeSnapshot{Value: GaugeComplete, Running: false}, g.Snapshot())

	// A second Complete must not panic on the closed channel
	g.Complete()
	assert.True(t, g.Begin())
}

func TestGauge_Reset(t *testing.T) {
	t.Parallel()

	g := NewGauge()
	require.True(t, g.Begin())
	done := g.Done()

	g.Reset()
	assert.Equal(t, GaugeSnapshot{Value: 0, Running: false}, g.Snapshot())
	select {
	case <-done:
	default:
		t.Fatal("done should be closed after Reset")
	}
}

func TestGauge_SetClamps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{250, 100},
	}

	g := NewGauge()
	for _, tt := range tests {
		g.Set(tt.in)
		assert.Equal(t, tt.want, g.Value(), "Set(%d)", tt.in)
	}
}

func TestNewResult_ConvertsToMbps(t *testing.T) {
	t.Parallel()

	r := NewResult(50_000_000, 10_000_000, ServerInfo{Name: "Madrid"}, time.Time{})
	assert.InDelta(t, 50.0, r.DownloadMbps, 1e-9)
	assert.InDelta(t, 10.0, r.UploadMbps, 1e-9)
	assert.Equal(t, "Madrid", r.Server.Name)
}

func TestMeasurementError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := error(&MeasurementError{Phase: PhaseDownload, Err: cause})

	assert.Equal(t, "download: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	var me *MeasurementError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "connection reset", me.Detail())
}
