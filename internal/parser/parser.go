// Package parser derives a Program (board cell digits plus operation list)
// from Mines source text, per the grammar in spec.md §4.1/§6.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dnek/mines/internal/board"
	"github.com/dnek/mines/internal/operation"
)

// Program is the immutable result of parsing: a cell-digit grid and the
// ordered operation list that follows it.
type Program struct {
	CellDigits    board.Values[board.Digit]
	OperationList []operation.Operation
}

// SyntaxError is the common type of every static parse failure.
type SyntaxError struct {
	Kind    string
	Message string
}

func (e *SyntaxError) Error() string {
	return e.Message
}

func integerSyntaxError(value string) error {
	return &SyntaxError{Kind: "IntegerSyntax", Message: fmt.Sprintf("Number %q is not a valid integer.", value)}
}

func operationSyntaxError(line string) error {
	return &SyntaxError{Kind: "OperationSyntax", Message: fmt.Sprintf("Operation %q is inconsistent.", line)}
}

func noBoardSyntaxError() error {
	return &SyntaxError{Kind: "NoBoard", Message: "No board."}
}

func noOperationsSyntaxError() error {
	return &SyntaxError{Kind: "NoOperations", Message: "No operations."}
}

var integerRe = regexp.MustCompile(`^[+-]?[0-9]+$`)
var whitespaceStripper = strings.NewReplacer(" ", "", "\t", "", "\v", "", "\f", "", "\r", "")

func parseInt(value string) (int, error) {
	if !integerRe.MatchString(value) {
		return 0, integerSyntaxError(value)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, integerSyntaxError(value)
	}
	return n, nil
}

// parseClickOperation attempts to split line on the button separator
// (',' for left, ';' for right) and parse both sides as signed integers.
// Returns (op, true) on success, (zero, false) if the separator is absent.
func parseClickOperation(line string, size board.Size, isLeftButton bool) (operation.Click, bool, error) {
	separator := ","
	if !isLeftButton {
		separator = ";"
	}

	idx := strings.Index(line, separator)
	if idx < 0 {
		return operation.Click{}, false, nil
	}

	columnStr := line[:idx]
	rowStr := line[idx+1:]

	column, err := parseInt(columnStr)
	if err != nil {
		return operation.Click{}, true, err
	}
	row, err := parseInt(rowStr)
	if err != nil {
		return operation.Click{}, true, err
	}

	return operation.Click{
		Cell:         size.WrappedCell(column, row),
		IsLeftButton: isLeftButton,
	}, true, nil
}

func parseOperation(line string, size board.Size) (operation.Operation, error) {
	switch line {
	case "":
		return operation.NoOp{}, nil
	case "!":
		return operation.Switch{}, nil
	case "@":
		return operation.Restart{}, nil
	}

	if click, attempted, err := parseClickOperation(line, size, true); attempted {
		if err != nil {
			return nil, err
		}
		return click, nil
	}
	if click, attempted, err := parseClickOperation(line, size, false); attempted {
		if err != nil {
			return nil, err
		}
		return click, nil
	}

	return nil, operationSyntaxError(line)
}

// formatLine truncates at the first '#' (comment start) and strips all
// space, tab, vertical tab, form feed, and CR characters.
func formatLine(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	return whitespaceStripper.Replace(line)
}

func isBoardLine(line string, width int) bool {
	if len(line) != width {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] != '.' && line[i] != '*' {
			return false
		}
	}
	return true
}

// Parse parses Mines source text into a Program, or returns a *SyntaxError.
// A single trailing newline ends the last line; it does not start an extra
// (empty) operation line.
func Parse(code string) (*Program, error) {
	rawLines := strings.Split(strings.TrimSuffix(code, "\n"), "\n")
	lines := make([]string, len(rawLines))
	for i, line := range rawLines {
		lines[i] = formatLine(line)
	}

	headerCount := len(lines)
	for i, line := range lines {
		if len(line) > 0 {
			headerCount = i
			break
		}
	}
	if headerCount == len(lines) {
		return nil, noBoardSyntaxError()
	}

	boardWidth := len(lines[headerCount])

	boardHeight := 0
	for i := headerCount; i < len(lines); i++ {
		if !isBoardLine(lines[i], boardWidth) {
			break
		}
		boardHeight++
	}

	if boardWidth*boardHeight == 0 {
		return nil, noBoardSyntaxError()
	}

	size := board.Size{Width: boardWidth, Height: boardHeight}

	cellDigits := board.NewValues(size, func(cell board.Cell) board.Digit {
		line := lines[headerCount+cell.Row]
		if line[cell.Column] == '*' {
			return board.DigitMine
		}
		mineCount := 0
		for _, next := range size.AdjacentCells(cell) {
			if lines[headerCount+next.Row][next.Column] == '*' {
				mineCount++
			}
		}
		return board.Digit(mineCount)
	})

	operationLines := lines[headerCount+boardHeight:]
	operationList := make([]operation.Operation, 0, len(operationLines))
	for _, line := range operationLines {
		op, err := parseOperation(line, size)
		if err != nil {
			return nil, err
		}
		operationList = append(operationList, op)
	}

	if len(operationList) == 0 {
		return nil, noOperationsSyntaxError()
	}

	return &Program{CellDigits: cellDigits, OperationList: operationList}, nil
}
