package observer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/fish/internal/board"
	"github.com/janpfeifer/fish/internal/state"
	"golang.org/x/term"
)

// colorStyles maps a seated color to the lipgloss style used to render its
// penguins and score line, adapted from the teacher's piece-coloring table
// in internal/ui/cli.
var colorStyles = map[state.Color]lipgloss.Style{
	state.Red:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	state.White: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	state.Brown: lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	state.Black: lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
}

var dimStyle = lipgloss.NewStyle().Faint(true)

// CLI is a terminal Observer: it renders the board when it receives a
// Register event, prints one line for each placement, action and
// disqualification, and the winners at end of game. The board is not redrawn
// after later events and no score table is printed. It is built on
// the same libraries (lipgloss for styling, x/term for width detection) and
// the same "ask the terminal for its width, center the block" technique as
// the teacher's internal/ui/cli package, retargeted from Hive's piece
// stacks to Fish's hex board and running score table.
type CLI struct {
	out io.Writer
}

// NewCLI returns a CLI observer writing to os.Stdout.
func NewCLI() *CLI {
	return &CLI{out: os.Stdout}
}

func (c *CLI) printCentered(block string) {
	lines := strings.Split(block, "\n")
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	blockWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > blockWidth {
			blockWidth = w
		}
	}
	indent := (width - blockWidth) / 2
	if indent < 0 {
		indent = 0
	}
	pad := strings.Repeat(" ", indent)
	for _, line := range lines {
		fmt.Fprintf(c.out, "%s%s\n", pad, line)
	}
}

func (c *CLI) renderBoard(gs *state.GameState) string {
	b := gs.Board()
	occupant := make(map[string]state.Color)
	for _, p := range gs.Players() {
		for _, pg := range p.Penguins {
			occupant[pg.Pos.String()] = p.Color
		}
	}

	var sb strings.Builder
	for row := 0; row < b.Height(); row++ {
		if row%2 == 1 {
			sb.WriteString(" ")
		}
		for col := 0; col < b.Width(); col++ {
			pos := board.NewPosition(uint16(row), uint16(col))
			tile, _ := b.TileAt(pos)
			cell := "  ."
			if tile.IsHole() {
				cell = dimStyle.Render("  x")
			} else if color, ok := occupant[pos.String()]; ok {
				cell = colorStyles[color].Render(fmt.Sprintf(" %s", string(color.String()[0])))
			} else {
				cell = fmt.Sprintf(" %d", tile.FishCount)
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (c *CLI) renderScores(gs *state.GameState) string {
	var sb strings.Builder
	for _, p := range gs.Players() {
		style := colorStyles[p.Color]
		sb.WriteString(style.Render(fmt.Sprintf("%s: %d", p.Color, p.Score)))
		sb.WriteString("  ")
	}
	return sb.String()
}

// Notify implements Observer.
func (c *CLI) Notify(e Event) error {
	switch e.Kind {
	case RegisterEvent:
		fmt.Fprintln(c.out, "Match started.")
		c.printCentered(c.renderBoard(e.State))
	case PenguinPlacementEvent:
		fmt.Fprintf(c.out, "Placed penguin at %s\n", e.Pos)
	case TurnActionEvent:
		fmt.Fprintf(c.out, "Action: %s\n", e.Action)
	case DisqualifyEvent:
		fmt.Fprintf(c.out, "Disqualified: %s\n", e.Color)
	case EndOfGameEvent:
		fmt.Fprintln(c.out, "Match over.")
		if e.Result != nil {
			fmt.Fprintf(c.out, "Winners: %v\n", e.Result.Winners)
		}
	}
	return nil
}
