// Package operation defines the Operation sum type parsed from a Mines
// source file's trailing op-list, and the ClickResult record the player
// produces while resolving one.
package operation

import "github.com/dnek/mines/internal/board"

// Operation is a closed sum type: NoOp, Switch, Restart, or Click.
type Operation interface {
	isOperation()
}

// NoOp is an empty operation line; it does nothing.
type NoOp struct{}

func (NoOp) isOperation() {}

// Switch toggles the player's flag mode.
type Switch struct{}

func (Switch) isOperation() {}

// Restart resets all cell states to unopened and the game status to playing.
type Restart struct{}

func (Restart) isOperation() {}

// Click simulates a mouse click on a cell.
type Click struct {
	Cell         board.Cell
	IsLeftButton bool
}

func (Click) isOperation() {}

// OpenResult is the outcome of an open-or-over attempt: nil if nothing was
// opened, a result with Over set if a mine was hit, or the list of cells
// opened by flood-fill.
type OpenResult struct {
	Over  bool
	Cells []board.Cell
}

// ClickResult captures everything the command selector needs to know about
// one click attempt.
type ClickResult struct {
	PreviousCellState board.CellState
	IsLeftClick       bool
	ClickedCell       board.Cell
	OpenResult        *OpenResult
}
