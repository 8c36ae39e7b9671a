package components

import (
	"strings"

	"github.com/mmcdole/velocidad/internal/tui/styles"
)

// maxAnnouncements bounds the kept notice history
const maxAnnouncements = 200

// Announcements is the scrollback of every notice the user has been given
type Announcements struct {
	lines  []string
	width  int
	height int
}

// NewAnnouncements creates an empty log
func NewAnnouncements() Announcements {
	return Announcements{}
}

// Add appends a notice, dropping the oldest beyond the limit
func (a *Announcements) Add(line string) {
	a.lines = append(a.lines, line)
	if len(a.lines) > maxAnnouncements {
		a.lines = a.lines[len(a.lines)-maxAnnouncements:]
	}
}

// Lines returns the kept notices, oldest first
func (a Announcements) Lines() []string {
	return append([]string(nil), a.lines...)
}

// Last returns the latest notice
func (a Announcements) Last() string {
	if len(a.lines) == 0 {
		return ""
	}
	return a.lines[len(a.lines)-1]
}

// SetSize sets the render area
func (a *Announcements) SetSize(width, height int) {
	a.width = width
	a.height = height
}

// View renders the newest notices that fit, newest last
func (a Announcements) View() string {
	if a.height <= 0 {
		return ""
	}

	start := 0
	if len(a.lines) > a.height {
		start = len(a.lines) - a.height
	}

	visible := a.lines[start:]
	rendered := make([]string, 0, len(visible))
	for i, line := range visible {
		text := styles.Truncate(line, a.width)
		if i == len(visible)-1 {
			rendered = append(rendered, styles.TitleStyle.Render(text))
		} else {
			rendered = append(rendered, styles.SubtitleStyle.Render(text))
		}
	}
	return strings.Join(rendered, "\n")
}
