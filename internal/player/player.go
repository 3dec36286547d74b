// Package player maintains the live board state (which cells are
// unopened/flagged/opened, the game status) and resolves clicks against it:
// opening with flood-fill, flagging, chording, and restarting.
package player

import (
	"github.com/dnek/mines/internal/board"
	"github.com/dnek/mines/internal/operation"
)

// Player owns cell state for one run of a program. The cell digits are
// immutable except through ReplaceCellDigitsSafely.
type Player struct {
	boardSize  board.Size
	cellDigits board.Values[board.Digit]
	mineNumber int

	status          board.Status
	cellStates      board.Values[board.CellState]
	flagMode        bool
	restMineCount   int
	restSafeCount   int
	lastClickResult *operation.ClickResult
}

// New creates a Player over the given (immutable) cell digit grid, with
// every cell unopened and status playing.
func New(cellDigits board.Values[board.Digit]) *Player {
	p := &Player{
		boardSize:  cellDigits.Size(),
		cellDigits: cellDigits,
		mineNumber: countMines(cellDigits),
	}
	p.resetState()
	return p
}

func countMines(cellDigits board.Values[board.Digit]) int {
	count := 0
	for _, d := range cellDigits.All() {
		if d == board.DigitMine {
			count++
		}
	}
	return count
}

func (p *Player) resetState() {
	p.status = board.Playing
	p.cellStates = board.NewValues(p.boardSize, func(board.Cell) board.CellState {
		return board.Unopened
	})
	p.restMineCount = p.mineNumber
	p.restSafeCount = p.InitialSafeCount()
}

// InitialSafeCount is the number of non-mine cells on the board.
func (p *Player) InitialSafeCount() int {
	return p.boardSize.Width*p.boardSize.Height - p.mineNumber
}

// BoardSize returns the board's dimensions.
func (p *Player) BoardSize() board.Size {
	return p.boardSize
}

// CellDigit returns the mine-adjacency digit (or 9 for a mine) of cell.
func (p *Player) CellDigit(cell board.Cell) board.Digit {
	return p.cellDigits.Get(cell)
}

// CellState returns the visibility state of cell.
func (p *Player) CellState(cell board.Cell) board.CellState {
	return p.cellStates.Get(cell)
}

// MineNumber returns the total number of mines on the board.
func (p *Player) MineNumber() int {
	return p.mineNumber
}

// Status returns the current game status.
func (p *Player) Status() board.Status {
	return p.status
}

// RestMineCount returns mineNumber minus the number of flagged cells.
func (p *Player) RestMineCount() int {
	return p.restMineCount
}

// RestSafeCount returns the number of non-mine cells not yet opened.
func (p *Player) RestSafeCount() int {
	return p.restSafeCount
}

// LastClickResult returns the ClickResult recorded by the most recently
// performed operation, or nil if that operation was not a click (or no
// operation has been performed yet).
func (p *Player) LastClickResult() *operation.ClickResult {
	return p.lastClickResult
}

// openSafeCells opens cells via BFS flood-fill: opening a zero-digit cell
// enqueues its neighbors. Assumes none of cells is a mine.
func (p *Player) openSafeCells(cells []board.Cell) []board.Cell {
	opened := make([]board.Cell, 0, len(cells))
	queue := append([]board.Cell(nil), cells...)

	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]

		if p.cellStates.Get(cell) != board.Unopened {
			continue
		}

		p.cellStates.Set(cell, board.Opened)
		p.restSafeCount--
		opened = append(opened, cell)

		if p.cellDigits.Get(cell) == 0 {
			queue = append(queue, p.boardSize.AdjacentCells(cell)...)
		}
	}

	if p.restSafeCount == 0 {
		p.status = board.Cleared
	}

	return opened
}

// openCellsOrOver opens cells, or ends the game if any of them is a mine.
func (p *Player) openCellsOrOver(cells []board.Cell) *operation.OpenResult {
	for _, cell := range cells {
		if p.cellDigits.Get(cell) == board.DigitMine {
			p.status = board.Over
			return &operation.OpenResult{Over: true}
		}
	}
	return &operation.OpenResult{Cells: p.openSafeCells(cells)}
}

// chordCells returns the unopened neighbors of cell if its flagged-neighbor
// count matches its digit, else an empty slice.
func (p *Player) chordCells(cell board.Cell) []board.Cell {
	var unopened []board.Cell
	flaggedCount := 0

	for _, next := range p.boardSize.AdjacentCells(cell) {
		switch p.cellStates.Get(next) {
		case board.Unopened:
			unopened = append(unopened, next)
		case board.Flagged:
			flaggedCount++
		case board.Opened:
		}
	}

	if flaggedCount == int(p.cellDigits.Get(cell)) {
		return unopened
	}
	return nil
}

func (p *Player) performClick(click operation.Click) {
	cell := click.Cell
	cellState := p.cellStates.Get(cell)
	isLeftClick := click.IsLeftButton != p.flagMode
	var openResult *operation.OpenResult

	switch cellState {
	case board.Unopened:
		if isLeftClick {
			openResult = p.openCellsOrOver([]board.Cell{cell})
		} else {
			p.cellStates.Set(cell, board.Flagged)
			p.restMineCount--
		}
	case board.Flagged:
		if !isLeftClick {
			p.cellStates.Set(cell, board.Unopened)
			p.restMineCount++
		}
	case board.Opened:
		if !isLeftClick {
			if chord := p.chordCells(cell); len(chord) > 0 {
				openResult = p.openCellsOrOver(chord)
			}
		}
	}

	p.lastClickResult = &operation.ClickResult{
		PreviousCellState: cellState,
		IsLeftClick:       isLeftClick,
		ClickedCell:       cell,
		OpenResult:        openResult,
	}
}

func (p *Player) performSwitch() {
	p.flagMode = !p.flagMode
}

func (p *Player) performRestart() {
	for _, cell := range p.boardSize.Cells() {
		p.cellStates.Set(cell, board.Unopened)
	}
	p.restMineCount = p.mineNumber
	p.restSafeCount = p.InitialSafeCount()
	p.status = board.Playing
}

// PerformOperation dispatches op, updating player state and, for clicks,
// LastClickResult.
func (p *Player) PerformOperation(op operation.Operation) {
	p.lastClickResult = nil

	switch o := op.(type) {
	case operation.Click:
		p.performClick(o)
	case operation.Switch:
		p.performSwitch()
	case operation.Restart:
		p.performRestart()
	case operation.NoOp:
	}
}

// ReplaceCellDigitsSafely swaps in a new cell-digit grid, used by a game
// front-end to implement "safe first click". Accepted only while playing,
// with matching board size and mine count, and only if every already-opened
// cell keeps its digit. Returns false (no-op) otherwise.
func (p *Player) ReplaceCellDigitsSafely(cellDigits board.Values[board.Digit]) bool {
	if p.status != board.Playing {
		return false
	}
	if cellDigits.Size() != p.boardSize {
		return false
	}
	if countMines(cellDigits) != p.mineNumber {
		return false
	}
	for _, cell := range p.boardSize.Cells() {
		if p.cellStates.Get(cell) != board.Opened {
			continue
		}
		if cellDigits.Get(cell) != p.cellDigits.Get(cell) {
			return false
		}
	}

	p.cellDigits = cellDigits
	return true
}
