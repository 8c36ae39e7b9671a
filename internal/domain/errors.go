package domain

import "errors"

// Sentinel errors for speed test operations
var (
	// ErrProviderUnavailable indicates the measurement library could not be loaded
	ErrProviderUnavailable = errors.New("measurement provider is unavailable")

	// ErrRunInProgress indicates a start request arrived while a run was active.
	// It is informational: the request is ignored, nothing failed.
	ErrRunInProgress = errors.New("speed test already in progress")

	// ErrClosed indicates the orchestrator has been shut down
	ErrClosed = errors.New("speed test orchestrator is closed")
)

// Phase identifies a step of the measurement sequence
type Phase string

const (
	PhaseSelectServer Phase = "select-server"
	PhaseDownload     Phase = "download"
	PhaseUpload       Phase = "upload"
)

// MeasurementError reports a failure during one measurement phase
type MeasurementError struct {
	Phase Phase
	Err   error
}

// Error implements the error interface
func (e *MeasurementError) Error() string {
	return string(e.Phase) + ": " + e.Err.Error()
}

// Unwrap returns the provider error
func (e *MeasurementError) Unwrap() error {
	return e.Err
}

// Detail returns the provider's own message, without the phase prefix
func (e *MeasurementError) Detail() string {
	return e.Err.Error()
}
