// Package debugger is an interactive Bubbletea step-debugger for the mines
// runtime: it renders the board and stack after every command and lets a
// human step through, or auto-run, a program.
package debugger

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dnek/mines/internal/board"
	"github.com/dnek/mines/internal/debugconfig"
	"github.com/dnek/mines/internal/runtime"
)

type tickMsg struct{}

func tickCmd(ms int) tea.Cmd {
	return tea.Tick(time.Duration(ms)*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Model is the Bubbletea model driving one runtime.Runner.
type Model struct {
	runner   *runtime.Runner
	cfg      *debugconfig.Store
	width    int
	height   int
	done     bool
	autoRun  bool
	finished bool
	stepNum  int
}

// New builds a debugger Model over runner, loading persisted preferences
// (falling back to defaults on any load error).
func New(runner *runtime.Runner) Model {
	cfg, _ := debugconfig.Load()
	return Model{runner: runner, cfg: cfg}
}

// Init returns nil; no initial command needed.
func (m Model) Init() tea.Cmd {
	return nil
}

// Done returns true once the user asked to quit.
func (m Model) Done() bool {
	return m.done
}

// Update handles input and, in auto-run mode, timed steps.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.autoRun && !m.finished {
			m.step()
			if m.autoRun && !m.finished {
				return m, tickCmd(m.cfg.Config.TickMs())
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg.String())
	}
	return m, nil
}

func (m Model) updateKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q", "esc":
		m.done = true
		return m, tea.Quit

	case " ", "enter":
		if !m.finished {
			m.step()
		}
		return m, nil

	case "a":
		if m.finished {
			return m, nil
		}
		m.autoRun = !m.autoRun
		if m.autoRun {
			return m, tickCmd(m.cfg.Config.TickMs())
		}
		return m, nil

	case "up":
		m.cycleDelay(1)
		m.cfg.Save()
		return m, nil
	case "down":
		m.cycleDelay(-1)
		m.cfg.Save()
		return m, nil
	case "t":
		m.cycleTheme()
		m.cfg.Save()
		return m, nil
	}
	return m, nil
}

var delayOrder = []debugconfig.StepDelay{
	debugconfig.DelayOff,
	debugconfig.DelayFast,
	debugconfig.DelayNormal,
	debugconfig.DelaySlow,
}

func (m *Model) cycleDelay(dir int) {
	idx := 0
	for i, d := range delayOrder {
		if d == m.cfg.Config.StepDelay {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(delayOrder)) % len(delayOrder)
	m.cfg.Config.StepDelay = delayOrder[idx]
}

var themeOrder = []debugconfig.Theme{
	debugconfig.ThemeMatrix,
	debugconfig.ThemeAmber,
	debugconfig.ThemeBlue,
	debugconfig.ThemeRed,
}

func (m *Model) cycleTheme() {
	idx := 0
	for i, th := range themeOrder {
		if th == m.cfg.Config.Theme {
			idx = i
			break
		}
	}
	idx = (idx + 1) % len(themeOrder)
	m.cfg.Config.Theme = themeOrder[idx]
}

func (m *Model) step() {
	if !m.runner.Step() {
		m.finished = true
		m.autoRun = false
		return
	}
	m.stepNum++
}

// View renders the board, stack, and status/footer.
func (m Model) View() string {
	if m.runner == nil {
		return ""
	}

	var sections []string
	sections = append(sections,
		titleStyle(m.cfg.Config.Theme).Render("M I N E S   D E B U G G E R"),
		"",
		m.renderStatus(),
		"",
		m.renderGrid(),
		"",
		m.renderStack(),
		"",
	)

	if m.finished {
		sections = append(sections, doneStyle(m.cfg.Config.Theme).Render("PROGRAM HALTED"), "")
	}

	footer := fmt.Sprintf(
		"Space/Enter Step | A Auto-run(%s) | T Theme(%s) | Up/Down Speed | Q Quit",
		onOff(m.autoRun), m.cfg.Config.Theme,
	)
	sections = append(sections, footerStyle.Render(footer))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m Model) renderStatus() string {
	p := m.runner.State.Player
	status := fmt.Sprintf(
		"Step %d | Status: %s | Mines left: %d | Safe left: %d",
		m.stepNum, p.Status(), p.RestMineCount(), p.RestSafeCount(),
	)
	if last := m.runner.LastStep; last != nil {
		status += fmt.Sprintf(" | Last: %s", last.CommandType)
		if last.CommandErrorType != nil {
			status += fmt.Sprintf(" (%s)", *last.CommandErrorType)
		}
	}
	return statusStyle.Render(status)
}

func (m Model) renderGrid() string {
	p := m.runner.State.Player
	size := p.BoardSize()

	var rows []string
	for row := 0; row < size.Height; row++ {
		var cells []string
		for col := 0; col < size.Width; col++ {
			cell := board.Cell{Column: col, Row: row}
			cells = append(cells, cellStyle(m.cfg.Config.Theme, p.CellState(cell), p.CellDigit(cell)).Render(cellText(p.CellState(cell), p.CellDigit(cell))))
		}
		rows = append(rows, strings.Join(cells, ""))
	}
	return strings.Join(rows, "\n")
}

func cellText(state board.CellState, digit board.Digit) string {
	switch state {
	case board.Flagged:
		return "FF"
	case board.Opened:
		if digit == board.DigitMine {
			return "* "
		}
		if digit == 0 {
			return "  "
		}
		return fmt.Sprintf("%d ", digit)
	default:
		return "##"
	}
}

func (m Model) renderStack() string {
	top := m.runner.State.Stack.Top(m.cfg.Config.ShowStackSize)
	if len(top) == 0 {
		return statusStyle.Render("stack: (empty)")
	}
	values := make([]string, len(top))
	for i, v := range top {
		values[i] = v.String()
	}
	label := "stack (top first)"
	if m.runner.State.Stack.Len() > len(top) {
		label = fmt.Sprintf("%s, %d more below", label, m.runner.State.Stack.Len()-len(top))
	}
	return statusStyle.Render(fmt.Sprintf("%s: %s", label, strings.Join(values, " ")))
}
