package handlers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/clusterup/internal/install"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// renderReport produces the run summary printed after an install.
func renderReport(report *install.Report, runErr error) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  clusterup %s (run %s)", report.Method, report.RunID)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 40)))
	b.WriteString("\n")

	state := string(report.State)
	if state == "" {
		state = "none"
	}
	b.WriteString(fmt.Sprintf("    Last state:  %s\n", state))

	for _, p := range report.Phases {
		line := fmt.Sprintf("    %-11s  %d/%d succeeded in %v", p.Name+":", p.Succeeded, p.Dispatched, p.Duration.Round(time.Second))
		if p.Failed > 0 {
			line = errorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case runErr != nil:
		b.WriteString(errorStyle.Render("  Install failed"))
	case report.InstallerAddress != "":
		b.WriteString(successStyle.Render("  Web installer ready: " + report.InstallerAddress))
	default:
		b.WriteString(successStyle.Render("  Cluster ready: " + report.WebAddress))
	}
	b.WriteString("\n")

	return b.String()
}

func printReport(w io.Writer, report *install.Report, runErr error) {
	fmt.Fprint(w, renderReport(report, runErr))
}
