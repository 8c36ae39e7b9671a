package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/velocidad/internal/notice"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the speed test settings",
	Long: `Without flags, prints the speed test settings. With flags, updates
them and writes the configuration file; both values are saved together.

Examples:
  velocidad settings
  velocidad settings --feedback-sound
  velocidad settings --results-in-window=false`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

var (
	feedbackSoundFlag   bool
	resultsInWindowFlag bool
)

func init() {
	settingsCmd.Flags().BoolVar(&feedbackSoundFlag, "feedback-sound", false, notice.FeedbackSoundLabel)
	settingsCmd.Flags().BoolVar(&resultsInWindowFlag, "results-in-window", true, notice.ResultsWindowLabel)
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, _ []string) error {
	store, _, err := loadStore()
	if err != nil {
		return err
	}

	fb := store.Feedback()
	changed := false
	if cmd.Flags().Changed("feedback-sound") {
		fb.FeedbackSound = feedbackSoundFlag
		changed = true
	}
	if cmd.Flags().Changed("results-in-window") {
		fb.ResultsInWindow = resultsInWindowFlag
		changed = true
	}

	out := cmd.OutOrStdout()
	if changed {
		if err := store.SaveFeedback(fb); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Fprintln(out, notice.SettingsSaved)
	}

	fmt.Fprintln(out, notice.SettingsTitle)
	fmt.Fprintf(out, "  [%s] %s\n", check(fb.FeedbackSound), notice.FeedbackSoundLabel)
	fmt.Fprintf(out, "  [%s] %s\n", check(fb.ResultsInWindow), notice.ResultsWindowLabel)
	fmt.Fprintf(out, "\n%s\n", store.Path())
	return nil
}

func check(v bool) string {
	if v {
		return "x"
	}
	return " "
}
