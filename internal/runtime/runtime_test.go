package runtime

import (
	"math/big"
	"strings"
	"testing"

	"github.com/dnek/mines/internal/operation"
	"github.com/dnek/mines/internal/parser"
)

func bigInt(n int64) *big.Int {
	return big.NewInt(n)
}

// literalInputSource is a fully-buffered InputSource over a fixed string,
// used by tests in place of a real stdin/file reader.
type literalInputSource struct {
	runes []rune
}

func newLiteralInputSource(s string) *literalInputSource {
	return &literalInputSource{runes: []rune(s)}
}

func (l *literalInputSource) Peek(n int) []rune {
	if n > len(l.runes) {
		n = len(l.runes)
	}
	return l.runes[:n]
}

func (l *literalInputSource) Dequeue() rune {
	r := l.runes[0]
	l.runes = l.runes[1:]
	return r
}

func (l *literalInputSource) BufferedLen() int {
	return len(l.runes)
}

func (l *literalInputSource) IsEOFConfirmed() bool {
	return true
}

func mustParse(t *testing.T, code string) *parser.Program {
	t.Helper()
	prog, err := parser.Parse(code)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return prog
}

// runProgram runs program to completion (or stepLimit steps, whichever
// comes first, to guard against runaway test programs) and returns the
// output and every step's result.
func runProgram(t *testing.T, code, input string, stepLimit int) (string, []StepResult) {
	t.Helper()
	prog := mustParse(t, code)
	var out strings.Builder
	var steps []StepResult
	runner := NewRunner(prog, newLiteralInputSource(input), &out, func(sr StepResult) {
		steps = append(steps, sr)
	})
	for i := 0; i < stepLimit; i++ {
		if !runner.Step() {
			break
		}
	}
	return out.String(), steps
}

// S1: opening the zero region above a row of mines pushes the flood-filled
// cell count (9) without clearing the board (the row below the mines stays
// unopened, so the runner keeps going); right-clicking the opened zero-digit
// cell then pushes its digit (0).
func TestScenarioS1PushCountThenPushZero(t *testing.T) {
	code := "...\n...\n...\n***\n...\n0,0\n5;0\n"
	_, steps := runProgram(t, code, "", 2)

	if len(steps) != 2 {
		t.Fatalf("len(steps) = %d, want 2", len(steps))
	}
	if steps[0].CommandType != PushCount {
		t.Errorf("step 0 command = %s, want push(count)", steps[0].CommandType)
	}
	if steps[1].CommandType != PushN {
		t.Errorf("step 1 command = %s, want push(n)", steps[1].CommandType)
	}
}

// S3: opening a mine ends the game with Over and leaves cell state
// unchanged; a following restart returns to Playing.
func TestScenarioS3MineThenRestart(t *testing.T) {
	code := "*.\n..\n0,0\n@\n"
	_, steps := runProgram(t, code, "", 3)

	if len(steps) < 2 {
		t.Fatalf("len(steps) = %d, want at least 2", len(steps))
	}
	// Step 0 is the mine click: command selector picks reset(l) for an
	// unopened+left click on a mine cell.
	if steps[0].CommandType != ResetL {
		t.Errorf("step 0 command = %s, want reset(l)", steps[0].CommandType)
	}
	// reset(l) enqueues a Restart that fires on the very next step, ahead
	// of the operation pointer's own "@" line.
	if _, ok := steps[1].Operation.(operation.Restart); !ok {
		t.Errorf("step 1 operation = %T, want Restart", steps[1].Operation)
	}
}

// S6: skip(1) causes the operation after next to run, rather than the
// immediately-next one.
func TestScenarioS6Skip(t *testing.T) {
	prog := mustParse(t, "...\n...\n...\n0,0\n1,0\n2,0\n0,1\n")
	pointer := NewOperationPointer(prog.OperationList)
	state := &State{OperationPointer: pointer, Stack: NewStack()}

	pointer.RequestOperation() // consume operation 0, index now at 1

	state.Stack.Push(bigInt(1))
	runSkip(state)

	if op := pointer.RequestOperation(); op != prog.OperationList[2] {
		t.Errorf("skip(1) from index 1 should land on operation 2, got %v", op)
	}
}

func TestOperationPointerAdvanceWraps(t *testing.T) {
	code := "...\n...\n...\n0,0\n0,0\n0,0\n"
	prog := mustParse(t, code)
	pointer := NewOperationPointer(prog.OperationList)
	pointer.Advance(big.NewInt(int64(-len(prog.OperationList))))
	if op := pointer.RequestOperation(); op != prog.OperationList[0] {
		t.Errorf("after advancing by -len, expected operation 0")
	}
}

func TestInNOnLoneMinusRejects(t *testing.T) {
	source := newLiteralInputSource("-")
	buf := NewInputBuffer(source)
	if buf.ValidateRequestInteger() {
		t.Fatal("expected a lone '-' to be rejected")
	}
	if source.BufferedLen() != 1 {
		t.Errorf("'-' should remain buffered, BufferedLen() = %d", source.BufferedLen())
	}
}

func TestOutCRangeValidation(t *testing.T) {
	out := NewOutputBuffer(&strings.Builder{})
	bigMinus1 := bigInt(-1)
	bigOver := bigInt(0x110000)
	if out.ValidateWriteAsChar(bigMinus1) {
		t.Error("expected -1 to fail Unicode range validation")
	}
	if out.ValidateWriteAsChar(bigOver) {
		t.Error("expected 0x110000 to fail Unicode range validation")
	}
}

func TestDivModZeroDivision(t *testing.T) {
	s := &State{Stack: NewStack()}
	s.Stack.Push(bigInt(10), bigInt(0))
	if err := validateDivisorNonZero(s); err == nil || *err != ZeroDivisionError {
		t.Fatalf("err = %v, want ZeroDivisionError", err)
	}
}

func TestFloorDivModNegativeOperands(t *testing.T) {
	q, r := floorDivMod(bigInt(-7), bigInt(2))
	if q.Int64() != -4 || r.Int64() != 1 {
		t.Errorf("floorDivMod(-7,2) = (%d,%d), want (-4,1)", q.Int64(), r.Int64())
	}
	q, r = floorDivMod(bigInt(7), bigInt(-2))
	if q.Int64() != -4 || r.Int64() != -1 {
		t.Errorf("floorDivMod(7,-2) = (%d,%d), want (-4,-1)", q.Int64(), r.Int64())
	}
}
