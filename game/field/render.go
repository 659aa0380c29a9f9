package field

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ringrush/game"
)

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	blueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	goalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	stakeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	legendStyle = lipgloss.NewStyle().MarginLeft(2)
)

// Render draws the field with a legend. Each cell reads
// <robot><goal or stake><red supply><blue supply>; a tipped goal shows as 't'
// and a wall stake as 'S'.
func (f Field) Render(colored bool) string {
	paint := func(style lipgloss.Style, text string) string {
		if !colored {
			return text
		}
		return style.Render(text)
	}
	digit := func(count int, style lipgloss.Style) string {
		if count == 0 {
			return paint(mutedStyle, ".")
		}
		return paint(style, fmt.Sprintf("%d", count))
	}

	var board strings.Builder
	for r := 0; r < Rows; r++ {
		cells := make([]string, Cols)
		for c := 0; c < Cols; c++ {
			cell := game.Cell{Row: r, Col: c}
			var b strings.Builder

			switch cell {
			case f.Robots[game.Red].Position:
				b.WriteString(paint(redStyle, "R"))
			case f.Robots[game.Blue].Position:
				b.WriteString(paint(blueStyle, "B"))
			default:
				b.WriteString(paint(mutedStyle, "."))
			}

			if goal, ok := f.freeGoalAt(cell); ok {
				mark := "G"
				if f.Goals[goal].Tipped {
					mark = "t"
				}
				b.WriteString(paint(goalStyle, mark))
			} else if _, ok := f.stakeAt(cell); ok {
				b.WriteString(paint(stakeStyle, "S"))
			} else {
				b.WriteString(paint(mutedStyle, "."))
			}

			b.WriteString(digit(f.Supply[game.Red][cell.Index()], redStyle))
			b.WriteString(digit(f.Supply[game.Blue][cell.Index()], blueStyle))
			cells[c] = b.String()
		}
		board.WriteString(strings.Join(cells, " "))
		if r < Rows-1 {
			board.WriteString("\n")
		}
	}

	scores := f.Scores()
	legend := []string{
		fmt.Sprintf("time remaining %d/%d", f.TimeRemaining, Rounds),
		fmt.Sprintf("to move: %s", f.ToMove),
		fmt.Sprintf("score red %d blue %d", scores[game.Red], scores[game.Blue]),
	}
	for i, g := range f.Goals {
		where := fmt.Sprintf("at (%d,%d)", g.Position.Row, g.Position.Col)
		if !g.IsFree() {
			where = "held"
		}
		if g.Tipped {
			where += " tipped"
		}
		legend = append(legend, fmt.Sprintf("goal %d: %s [%s]", i, where, g.Rings))
	}
	for i, s := range f.Stakes {
		legend = append(legend, fmt.Sprintf("stake %d: [%s]", i, s.Rings))
	}
	for i, r := range f.Robots {
		legend = append(legend, fmt.Sprintf("robot %s: [%s]", game.Player(i), r.Rings))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		boardStyle.Render(board.String()),
		legendStyle.Render(strings.Join(legend, "\n")),
	)
}
