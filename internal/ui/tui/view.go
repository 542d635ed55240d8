package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderPhases(&b, m)
	renderMachines(&b, m)
	if len(m.Output) > 0 {
		renderOutput(&b, m)
	}
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("clusterup: %s", m.ClusterName)
	if m.Method != "" {
		title += fmt.Sprintf(" (%s)", m.Method)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Done && m.Err != nil:
		status += failedStyle.Render("Failed")
	case m.Done:
		status += readyStyle.Render("Complete")
	default:
		if active := m.activePhase(); active != "" {
			status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render(active)
		} else {
			status += dimStyle.Render("Starting...")
		}
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 30
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))
	done, total := m.machineCounts()
	fmt.Fprintf(b, "  %s %d%%  %d/%d machines done\n", bar, int(progress*100), done, total)
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Phases"))
	b.WriteString("\n")

	if len(m.Phases) == 0 {
		fmt.Fprintf(b, "    %s\n", dimStyle.Render("waiting for the first phase"))
		return
	}
	for _, p := range m.Phases {
		icon, style := statusIcon(p.Status, m.SpinnerFrame)
		dur := ""
		switch {
		case p.Status == StatusActive && !p.Started.IsZero():
			dur = formatDuration(time.Since(p.Started))
		case p.Duration > 0:
			dur = formatDuration(p.Duration)
		}
		fmt.Fprintf(b, "    %s %-20s %s\n", style(icon), style(p.Name), dimStyle.Render(dur))
		if p.Status == StatusFailed && p.Message != "" {
			fmt.Fprintf(b, "         %s\n", failedStyle.Render(firstLine(p.Message)))
		}
	}
}

func renderMachines(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Machines"))
	b.WriteString("\n")

	for _, row := range m.Machines {
		icon, style := statusIcon(row.Status, m.SpinnerFrame)
		detail := row.Task
		if row.Err != "" {
			detail = failedStyle.Render(firstLine(row.Err))
		}
		fmt.Fprintf(b, "    %s %-12s %-14s %s\n", style(icon), style(row.Name), dimStyle.Render(row.Role), detail)
	}
}

func renderOutput(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Output"))
	b.WriteString("\n")

	for _, line := range m.Output {
		if m.Width > 8 && lipgloss.Width(line) > m.Width-6 {
			line = line[:m.Width-9] + "..."
		}
		fmt.Fprintf(b, "    %s\n", dimStyle.Render(line))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed: %s  |  q: hide dashboard", elapsed)))
	b.WriteString("\n")
}

// Helper functions

func statusIcon(s Status, frame int) (string, styleFunc) {
	switch s {
	case StatusDone:
		return checkMark, sf(readyStyle)
	case StatusFailed:
		return crossMark, sf(failedStyle)
	case StatusActive:
		return currentSpinner(frame), sf(activeStyle)
	default:
		return pending, sf(dimStyle)
	}
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

// activePhase returns the most recently started phase still running.
func (m Model) activePhase() string {
	for i := len(m.Phases) - 1; i >= 0; i-- {
		if m.Phases[i].Status == StatusActive {
			return m.Phases[i].Name
		}
	}
	return ""
}

func (m Model) machineCounts() (done, total int) {
	for _, row := range m.Machines {
		if row.Status == StatusDone {
			done++
		}
	}
	return done, len(m.Machines)
}

// calculateProgress is the share of finished phases. The number of phases
// is not known up front, so a running phase counts as half.
func calculateProgress(m Model) float64 {
	if m.Done && m.Err == nil {
		return 1.0
	}
	if len(m.Phases) == 0 {
		return 0
	}
	var score float64
	for _, p := range m.Phases {
		switch p.Status {
		case StatusDone, StatusFailed:
			score++
		case StatusActive:
			score += 0.5
		}
	}
	// Leave room for phases that have not started yet.
	progress := score / float64(len(m.Phases)+1)
	if progress > 1.0 {
		progress = 1.0
	}
	return progress
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
