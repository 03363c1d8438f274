package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// renderList renders items with a cursor marker on the selected line.
func renderList(items []string, cursor int) string {
	var b strings.Builder

	for i, item := range items {
		if i == cursor {
			b.WriteString(selectedStyle.Render("> " + item))
		} else {
			b.WriteString("  " + item)
		}

		b.WriteString("\n")
	}

	return b.String()
}

//nolint:cyclop // One branch per view state
func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("filecensus"))
	b.WriteString("\n\n")

	switch m.state {
	case stateVolumes:
		b.WriteString("Select a volume:\n\n")

		switch {
		case m.volErr != nil:
			b.WriteString(errorStyle.Render(m.volErr.Error()) + "\n")
		case len(m.volumes) == 0:
			b.WriteString(dimStyle.Render("No volumes found.") + "\n")
		default:
			labels := make([]string, len(m.volumes))
			for i, vol := range m.volumes {
				labels[i] = vol.label()
			}

			b.WriteString(renderList(labels, m.cursor))
		}

	case stateMenu:
		fmt.Fprintf(&b, "Volume: %s\n\n", m.base)
		b.WriteString(renderList(menuItems, m.cursor))

	case stateBrowser:
		fmt.Fprintf(&b, "Folder: %s\n\n", m.path)

		if len(m.subdirs) == 0 {
			b.WriteString(dimStyle.Render("No subfolders. Press s to scan this folder.") + "\n")
		} else {
			b.WriteString(renderList(m.subdirs, m.cursor))
		}

		if m.status != "" {
			b.WriteString("\n" + warningStyle.Render(m.status) + "\n")
		}

	case stateScanning:
		fmt.Fprintf(&b, "Counting files in %s\n\n", m.target)

		if m.total == 0 {
			b.WriteString(m.spinner.View() + " Scanning folder structure…\n")
		} else {
			fmt.Fprintf(&b, "%s\n\n%s of %s folders\n",
				m.bar.ViewAs(float64(m.done)/float64(m.total)),
				humanize.Comma(int64(m.done)), humanize.Comma(int64(m.total)))
		}

		b.WriteString("\n" + dimStyle.Render("esc to cancel") + "\n")

	case stateResults:
		b.WriteString(m.renderResults())
	}

	b.WriteString("\n" + m.help.View(m.keys))

	return b.String()
}

func (m model) renderResults() string {
	var b strings.Builder

	switch {
	case m.scanErr != nil && !m.canceled:
		fmt.Fprintf(&b, "Scan of %s failed:\n\n", m.target)
		b.WriteString(errorStyle.Render(m.scanErr.Error()) + "\n")

		return b.String()
	case m.canceled:
		fmt.Fprintf(&b, "Scan of %s cancelled; partial totals:\n\n", m.target)
	default:
		fmt.Fprintf(&b, "Results for %s\n\n", m.target)
	}

	if m.result == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "Total folders: %s\n", humanize.Comma(m.result.Folders))
	fmt.Fprintf(&b, "Total files:   %s\n", humanize.Comma(m.result.Files))

	if len(m.result.Categories) > 0 {
		b.WriteString("\nFile type breakdown:\n")

		for _, label := range m.result.CategoriesByCount() {
			fmt.Fprintf(&b, "  %-13s %s\n", label+":", humanize.Comma(m.result.Categories[label]))
		}
	}

	if m.result.SkippedDirs > 0 {
		fmt.Fprintf(&b, "\n%s\n",
			warningStyle.Render(fmt.Sprintf("%s folders were unreadable and skipped",
				humanize.Comma(m.result.SkippedDirs))))
	}

	fmt.Fprintf(&b, "\nCompleted in %v.\n", m.result.Elapsed)

	return b.String()
}
