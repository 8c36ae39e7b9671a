package domain

// FeedbackConfig holds the two user-facing toggles of the speed test
type FeedbackConfig struct {
	FeedbackSound   bool `mapstructure:"feedbackSound"`   // rising tones while the test runs
	ResultsInWindow bool `mapstructure:"resultsInWindow"` // results window after a successful run
}

// DefaultFeedbackConfig returns the settings used before the user saves any
func DefaultFeedbackConfig() FeedbackConfig {
	return FeedbackConfig{
		FeedbackSound:   false,
		ResultsInWindow: true,
	}
}
