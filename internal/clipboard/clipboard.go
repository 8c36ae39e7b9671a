package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported indicates no clipboard utility is available on this system
var ErrUnsupported = errors.New("clipboard is not supported on this system")

// System writes to the operating system clipboard
type System struct{}

// WriteText replaces the clipboard contents with text
func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
