package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintBanner writes the application banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()
	// Warm gradient, ember to flame.
	lines := []struct {
		text  string
		color string
	}{
		{"  _   _    ___   _   _  _   ___ ___ ___ ___ ", "#f59e0b"},
		{" | | | |  / __| /_\\ | \\| | | __|_ _| _ \\ __|", "#f97316"},
		{" | |_| | | (__ / _ \\| .` | | _| | ||   / _| ", "#ef4444"},
		{"  \\___/   \\___/_/ \\_\\_|\\_| |_| |___|_|_\\___|", "#dc2626"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// PrintStage writes a highlighted one-line stage summary to w.
func PrintStage(w io.Writer, stage domain.Stage) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()
	label := out.String(fmt.Sprintf(" Stage %d ", stage.ID)).
		Bold().
		Foreground(p.Color("#000000")).
		Background(p.Color("#fbbf24"))
	fmt.Fprintf(w, "%s %s\n", label, out.String(stage.Name).Bold())
}
