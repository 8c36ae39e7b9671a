package domain

import "time"

// BitsPerMegabit converts the provider's raw bits-per-second figures
const BitsPerMegabit = 1_000_000

// ServerInfo describes the reference server picked for a run
type ServerInfo struct {
	ID      string
	Name    string
	Sponsor string
	Country string
	Host    string
	Latency time.Duration
}

// Result holds the outcome of one successful run
type Result struct {
	DownloadMbps float64
	UploadMbps   float64
	Server       ServerInfo
	MeasuredAt   time.Time
}

// ToMbps normalizes a raw bits-per-second measurement
func ToMbps(bitsPerSecond float64) float64 {
	return bitsPerSecond / BitsPerMegabit
}

// NewResult builds a Result from raw provider measurements
func NewResult(rawDownload, rawUpload float64, server ServerInfo, at time.Time) Result {
	return Result{
		DownloadMbps: ToMbps(rawDownload),
		UploadMbps:   ToMbps(rawUpload),
		Server:       server,
		MeasuredAt:   at,
	}
}
