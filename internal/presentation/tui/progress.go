package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// ProgressBar draws a fixed-width bar for a percentage in [0,100].
func ProgressBar(percent, width int) string {
	percent = max(0, min(100, percent))
	filled := percent * width / 100

	p := termenv.EnvColorProfile()
	bar := termenv.String(strings.Repeat("█", filled)).Foreground(p.Color("#a78bfa")).String() +
		strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", bar, percent)
}
