package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the valueprop banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{` __     __    _            ____                  `, "#818cf8"},
		{` \ \   / /_ _| |_   _  ___|  _ \ _ __ ___  _ __  `, "#a78bfa"},
		{`  \ \ / / _' | | | | |/ _ \ |_) | '__/ _ \| '_ \ `, "#c084fc"},
		{`   \ V / (_| | | |_| |  __/  __/| | | (_) | |_) |`, "#e879f9"},
		{`    \_/ \__,_|_|\__,_|\___|_|   |_|  \___/| .__/ `, "#f472b6"},
		{`                                          |_|    `, "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
