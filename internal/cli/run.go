package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mmcdole/velocidad/internal/addon"
	"github.com/mmcdole/velocidad/internal/domain"
	"github.com/mmcdole/velocidad/internal/notice"
	"github.com/mmcdole/velocidad/internal/speech"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one speed test without the interactive host",
	Long: `Runs one speed test and prints every notice on its own line, so a
screen reader reading the terminal hears the same announcements as the
interactive host. The results window is printed as a framed block when
enabled in the settings.

Exits non-zero when the provider is unavailable or a phase fails.`,
	Args: cobra.NoArgs,
	RunE: runHeadless,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runHeadless(cmd *cobra.Command, _ []string) error {
	return invokeHeadless(cmd, addon.StartCommandID)
}

// invokeHeadless activates the add-on with line output, runs one command
// and waits for any speed test it started
func invokeHeadless(cmd *cobra.Command, name string) error {
	out := &syncWriter{w: cmd.OutOrStdout()}

	a, err := newApp(cmd.Context(), appOptions{
		sinks:     []domain.Notifier{speech.NewLineWriter(out)},
		presenter: &textPresenter{out: out},
		bell:      terminalBell(),
	})
	if err != nil {
		return err
	}
	defer a.Close()

	command, err := a.host.Commands().Resolve(name)
	if err != nil {
		return err
	}
	a.logger.Info("invoking command", "command", command.ID)

	if err := command.Run(); err != nil {
		return fmt.Errorf("%s: %w", command.ID, err)
	}

	if command.ID != addon.StartCommandID {
		return nil
	}
	if err := a.addon.Service().Wait(); err != nil {
		return fmt.Errorf("speed test failed: %w", err)
	}
	return nil
}

// textPresenter prints the results window as plain text
type textPresenter struct {
	out io.Writer
}

// PresentResults implements domain.ResultPresenter
func (p *textPresenter) PresentResults(result domain.Result) {
	fmt.Fprintf(p.out, "\n%s\n%s\n\n", notice.ResultsTitle,
		notice.WindowText(result.DownloadMbps, result.UploadMbps))
}

// syncWriter serializes writes from the measurement and UI goroutines
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
