package player

import (
	"testing"

	"github.com/dnek/mines/internal/board"
	"github.com/dnek/mines/internal/operation"
)

// newTestPlayer builds a 5x5 player with mines at the four corners and the
// center, matching the teacher's own five-mine fixture layout:
//
//	M 1 0 1 M
//	1 2 1 2 1
//	0 1 M 1 0
//	1 2 1 2 1
//	M 1 0 1 M
func newTestPlayer() *Player {
	mines := map[board.Cell]bool{
		{Column: 0, Row: 0}: true,
		{Column: 0, Row: 4}: true,
		{Column: 2, Row: 2}: true,
		{Column: 4, Row: 0}: true,
		{Column: 4, Row: 4}: true,
	}
	size := board.Size{Width: 5, Height: 5}
	digits := board.NewValues(size, func(c board.Cell) board.Digit {
		if mines[c] {
			return board.DigitMine
		}
		count := 0
		for _, n := range size.AdjacentCells(c) {
			if mines[n] {
				count++
			}
		}
		return board.Digit(count)
	})
	return New(digits)
}

func TestAdjacentDigits(t *testing.T) {
	p := newTestPlayer()

	tests := []struct {
		name string
		cell board.Cell
		want board.Digit
	}{
		{"edge cell (1,0) near 1 mine", board.Cell{Column: 1, Row: 0}, 1},
		{"cell (1,1) near 2 mines", board.Cell{Column: 1, Row: 1}, 2},
		{"cell (2,1) near 1 mine", board.Cell{Column: 2, Row: 1}, 1},
		{"edge cell (0,2) near no mine", board.Cell{Column: 0, Row: 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.CellDigit(tt.cell); got != tt.want {
				t.Errorf("CellDigit(%v) = %d, want %d", tt.cell, got, tt.want)
			}
		})
	}
}

func TestClickOpenFloodFill(t *testing.T) {
	p := newTestPlayer()

	// (0,2) has digit 0; opening it should flood through the connected
	// zero region and stop at the numeric frontier.
	p.PerformOperation(operation.Click{Cell: board.Cell{Column: 0, Row: 2}, IsLeftButton: true})

	result := p.LastClickResult()
	if result == nil || result.OpenResult == nil || result.OpenResult.Over {
		t.Fatalf("expected a successful open, got %+v", result)
	}
	if len(result.OpenResult.Cells) == 0 {
		t.Fatal("expected at least one opened cell")
	}
	if p.CellState(board.Cell{Column: 0, Row: 2}) != board.Opened {
		t.Error("(0,2) should be opened")
	}
}

func TestClickMineEndsGame(t *testing.T) {
	p := newTestPlayer()

	p.PerformOperation(operation.Click{Cell: board.Cell{Column: 0, Row: 0}, IsLeftButton: true})

	if p.Status() != board.Over {
		t.Fatalf("Status() = %v, want Over", p.Status())
	}
	result := p.LastClickResult()
	if result == nil || result.OpenResult == nil || !result.OpenResult.Over {
		t.Fatalf("expected Over open result, got %+v", result)
	}
	if p.CellState(board.Cell{Column: 0, Row: 0}) != board.Unopened {
		t.Error("mine cell state must be unchanged on Over")
	}
}

func TestFlagTogglesRestMineCount(t *testing.T) {
	p := newTestPlayer()
	cell := board.Cell{Column: 0, Row: 0}
	before := p.RestMineCount()

	p.PerformOperation(operation.Click{Cell: cell, IsLeftButton: false})
	if p.CellState(cell) != board.Flagged {
		t.Fatal("expected cell to be flagged")
	}
	if p.RestMineCount() != before-1 {
		t.Errorf("RestMineCount() = %d, want %d", p.RestMineCount(), before-1)
	}

	p.PerformOperation(operation.Click{Cell: cell, IsLeftButton: false})
	if p.CellState(cell) != board.Unopened {
		t.Fatal("expected cell to be unflagged")
	}
	if p.RestMineCount() != before {
		t.Errorf("RestMineCount() = %d, want %d", p.RestMineCount(), before)
	}
}

func TestChordOpensWhenFlagCountMatches(t *testing.T) {
	p := newTestPlayer()
	center := board.Cell{Column: 1, Row: 1} // digit 2, neighbors include two mines

	p.PerformOperation(operation.Click{Cell: center, IsLeftButton: true})
	p.PerformOperation(operation.Click{Cell: board.Cell{Column: 0, Row: 0}, IsLeftButton: false})
	p.PerformOperation(operation.Click{Cell: board.Cell{Column: 2, Row: 2}, IsLeftButton: false})

	p.PerformOperation(operation.Click{Cell: center, IsLeftButton: false})
	result := p.LastClickResult()
	if result == nil || result.OpenResult == nil || result.OpenResult.Over {
		t.Fatalf("expected chord to open cells, got %+v", result)
	}
	if len(result.OpenResult.Cells) == 0 {
		t.Error("expected chord to open at least one cell")
	}
}

func TestChordNoopWhenFlagCountMismatches(t *testing.T) {
	p := newTestPlayer()
	center := board.Cell{Column: 1, Row: 1}

	p.PerformOperation(operation.Click{Cell: center, IsLeftButton: true})
	// No flags placed: flagged count (0) != digit (2), chord must be a noop.
	p.PerformOperation(operation.Click{Cell: center, IsLeftButton: false})

	result := p.LastClickResult()
	if result == nil || result.OpenResult != nil {
		t.Fatalf("expected no open result, got %+v", result)
	}
}

func TestRestartResetsState(t *testing.T) {
	p := newTestPlayer()
	p.PerformOperation(operation.Click{Cell: board.Cell{Column: 0, Row: 0}, IsLeftButton: true})
	if p.Status() != board.Over {
		t.Fatal("setup: expected game over")
	}

	p.PerformOperation(operation.Restart{})

	if p.Status() != board.Playing {
		t.Errorf("Status() after restart = %v, want Playing", p.Status())
	}
	for _, cell := range p.BoardSize().Cells() {
		if p.CellState(cell) != board.Unopened {
			t.Errorf("cell %v not reset to unopened", cell)
		}
	}
	if p.RestMineCount() != p.MineNumber() {
		t.Errorf("RestMineCount() = %d, want %d", p.RestMineCount(), p.MineNumber())
	}
}

func TestSwitchTogglesButtons(t *testing.T) {
	p := newTestPlayer()
	cell := board.Cell{Column: 1, Row: 0}

	p.PerformOperation(operation.Switch{})
	p.PerformOperation(operation.Click{Cell: cell, IsLeftButton: false})

	result := p.LastClickResult()
	if result == nil || !result.IsLeftClick {
		t.Fatalf("expected effective left click after switch, got %+v", result)
	}
}

func TestReplaceCellDigitsSafely(t *testing.T) {
	p := newTestPlayer()
	size := p.BoardSize()

	sameShape := board.NewValues(size, func(c board.Cell) board.Digit {
		return p.CellDigit(c)
	})
	if !p.ReplaceCellDigitsSafely(sameShape) {
		t.Fatal("expected replace to succeed before any cell is opened")
	}

	p.PerformOperation(operation.Click{Cell: board.Cell{Column: 0, Row: 2}, IsLeftButton: true})

	wrongShape := board.NewValues(board.Size{Width: 3, Height: 3}, func(board.Cell) board.Digit { return 0 })
	if p.ReplaceCellDigitsSafely(wrongShape) {
		t.Error("expected replace to fail on size mismatch")
	}
}
