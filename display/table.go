// Package display renders session records as a table for the terminal.
package display

import (
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/mattsolo1/nexus/session"
)

// fixedColumnWidth is the combined width of every column except COMMAND
// and DIRECTORY: borders, padding, and the other four data columns.
const fixedColumnWidth = 56

// minWrapWidth is the floor below which truncation stops trying to be
// clever and just takes a fixed slice.
const minWrapWidth = 12

// terminalWidth returns the caller's terminal width, or 0 if stdout is
// not a terminal (piped output is never truncated).
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// truncate shortens s to fit within width, marking the cut with an
// ellipsis. width <= 0 disables truncation entirely.
func truncate(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	deadStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	unreachStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	borderColor    = lipgloss.Color("240")
	rowStyleNormal = lipgloss.NewStyle().Padding(0, 1)
)

// Row is one line of the rendered session table: the qualified identity
// plus its record, or an unreachable marker with no record.
type Row struct {
	Node        string
	Record      session.Record
	Unreachable bool
	Warning     string
}

// SessionTable renders rows as a bordered table with columns
// NODE/SESSION, WINDOWS, ATTACHED, COMMAND, DIRECTORY, STATUS.
func SessionTable(rows []Row) string {
	colWidth := 0
	if tw := terminalWidth(); tw > fixedColumnWidth+minWrapWidth {
		colWidth = (tw - fixedColumnWidth) / 2
	}

	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers("NODE/SESSION", "WINDOWS", "ATTACHED", "COMMAND", "DIRECTORY", "STATUS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return rowStyleNormal
		})

	for _, r := range rows {
		if r.Unreachable {
			t.Row(unreachStyle.Render(r.Node+"/*"), "-", "-", "-", "-", unreachStyle.Render("[UNREACHABLE] "+r.Warning))
			continue
		}
		status := "running"
		style := lipgloss.NewStyle()
		if r.Record.IsDead {
			status = "dead (" + strconv.Itoa(r.Record.ExitStatus) + ")"
			style = deadStyle
		}
		identity := r.Node + "/" + r.Record.Name
		t.Row(
			style.Render(identity),
			strconv.Itoa(r.Record.Windows),
			strconv.Itoa(r.Record.Attached),
			truncate(r.Record.Command, colWidth),
			truncate(r.Record.WorkingDirectory, colWidth),
			style.Render(status),
		)
	}

	return t.String()
}
