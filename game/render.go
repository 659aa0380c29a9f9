package game

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	blueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	goalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	legendStyle = lipgloss.NewStyle().MarginLeft(2)
)

// Render draws the board with a legend beside it. Each cell reads
// <robot><goal><red supply><blue supply>, with '.' for nothing.
func Render(s GameState, colored bool) string {
	paint := func(style lipgloss.Style, text string) string {
		if !colored {
			return text
		}
		return style.Render(text)
	}

	var board strings.Builder
	for r := 0; r < Rows; r++ {
		cells := make([]string, Cols)
		for c := 0; c < Cols; c++ {
			cell := Cell{Row: r, Col: c}
			var b strings.Builder

			switch cell {
			case s.Players[Red].Position:
				b.WriteString(paint(redStyle, "R"))
			case s.Players[Blue].Position:
				b.WriteString(paint(blueStyle, "B"))
			default:
				b.WriteString(paint(mutedStyle, "."))
			}

			if _, ok := s.FreeGoalAt(cell); ok {
				b.WriteString(paint(goalStyle, "G"))
			} else {
				b.WriteString(paint(mutedStyle, "."))
			}

			b.WriteString(supplyDigit(s.Supply[Red][cell.Index()], redStyle, paint))
			b.WriteString(supplyDigit(s.Supply[Blue][cell.Index()], blueStyle, paint))
			cells[c] = b.String()
		}
		board.WriteString(strings.Join(cells, " "))
		if r < Rows-1 {
			board.WriteString("\n")
		}
	}

	scores := Scores(s)
	legend := []string{
		fmt.Sprintf("step %d/%d", s.StepCount, MaxSteps),
		fmt.Sprintf("to move: %s", s.CurrentPlayer),
		fmt.Sprintf("score red %d blue %d", scores[Red], scores[Blue]),
	}
	for i, g := range s.Goals {
		where := fmt.Sprintf("free at (%d,%d)", g.Position.Row, g.Position.Col)
		if g.Placement == Held {
			where = fmt.Sprintf("held by %s", g.Carrier)
		}
		legend = append(legend, fmt.Sprintf("goal %d: %s r%d b%d", i, where, g.Rings[Red], g.Rings[Blue]))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		boardStyle.Render(board.String()),
		legendStyle.Render(strings.Join(legend, "\n")),
	)
}

func supplyDigit(count int, style lipgloss.Style, paint func(lipgloss.Style, string) string) string {
	if count == 0 {
		return paint(mutedStyle, ".")
	}
	return paint(style, fmt.Sprintf("%d", count))
}
