package debugger

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dnek/mines/internal/board"
	"github.com/dnek/mines/internal/debugconfig"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func titleStyle(theme debugconfig.Theme) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(accentColor(theme))
}

func doneStyle(theme debugconfig.Theme) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(accentColor(theme))
}

func accentColor(theme debugconfig.Theme) lipgloss.Color {
	switch theme {
	case debugconfig.ThemeAmber:
		return lipgloss.Color("#FFB000")
	case debugconfig.ThemeBlue:
		return lipgloss.Color("#4DA6FF")
	case debugconfig.ThemeRed:
		return lipgloss.Color("#FF4D4D")
	default: // ThemeMatrix
		return lipgloss.Color("#00E632")
	}
}

func cellStyle(theme debugconfig.Theme, state board.CellState, digit board.Digit) lipgloss.Style {
	base := lipgloss.NewStyle().Width(2)

	switch state {
	case board.Unopened:
		return base.Foreground(lipgloss.Color("#808080"))
	case board.Flagged:
		return base.Foreground(accentColor(theme))
	case board.Opened:
		if digit == board.DigitMine {
			return base.Foreground(lipgloss.Color("#FF0000")).Bold(true)
		}
		return base.Foreground(digitColor(digit))
	}
	return base
}

func digitColor(digit board.Digit) lipgloss.Color {
	switch digit {
	case 1:
		return lipgloss.Color("#0000FF")
	case 2:
		return lipgloss.Color("#008200")
	case 3:
		return lipgloss.Color("#FF0000")
	case 4:
		return lipgloss.Color("#000084")
	case 5:
		return lipgloss.Color("#840000")
	case 6:
		return lipgloss.Color("#008284")
	case 7:
		return lipgloss.Color("#840084")
	case 8:
		return lipgloss.Color("#808080")
	default:
		return lipgloss.Color("#FFFFFF")
	}
}
