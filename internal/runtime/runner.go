package runtime

import (
	"io"

	"github.com/dnek/mines/internal/board"
	"github.com/dnek/mines/internal/operation"
	"github.com/dnek/mines/internal/parser"
	"github.com/dnek/mines/internal/player"
)

// StepResult describes the outcome of one Runner step, handed to a
// StepListener after every step.
type StepResult struct {
	Operation        operation.Operation
	CommandType      CommandType
	CommandErrorType *CommandErrorType
}

// StepListener is notified after every step; it is the debugger's only
// window into the running interpreter.
type StepListener func(StepResult)

// Runner drives the main loop: pop an operation, apply it to the player,
// select and run a command, notify the listener, repeat until the game
// status is Cleared.
type Runner struct {
	State        *State
	stepListener StepListener
	// LastStep holds the result of the most recent Step call, for callers
	// (like the debugger) that poll rather than subscribe.
	LastStep *StepResult
}

// NewRunner builds a Runner for program, reading input from source and
// writing output to w. stepListener may be nil.
func NewRunner(program *parser.Program, source InputSource, w io.Writer, stepListener StepListener) *Runner {
	p := player.New(program.CellDigits)
	pointer := NewOperationPointer(program.OperationList)
	state := NewState(p, pointer, NewInputBuffer(source), NewOutputBuffer(w))
	return &Runner{State: state, stepListener: stepListener}
}

func (r *Runner) nextOperation() operation.Operation {
	if len(r.State.OperationQueue) == 0 {
		r.State.OperationQueue = append(r.State.OperationQueue, r.State.OperationPointer.RequestOperation())
	}
	op := r.State.OperationQueue[0]
	r.State.OperationQueue = r.State.OperationQueue[1:]
	return op
}

// Step processes exactly one operation and returns false once the game
// status is Cleared (nothing was done).
func (r *Runner) Step() bool {
	if r.State.Player.Status() == board.Cleared {
		return false
	}

	op := r.nextOperation()
	r.State.Player.PerformOperation(op)
	command := SelectCommand(op, r.State.Player)

	var commandError *CommandErrorType
	if command.Validate != nil {
		commandError = command.Validate(r.State)
	}
	if commandError == nil {
		command.Execute(r.State)
	}

	result := StepResult{
		Operation:        op,
		CommandType:      command.Name,
		CommandErrorType: commandError,
	}
	r.LastStep = &result
	if r.stepListener != nil {
		r.stepListener(result)
	}

	return true
}

// Run steps the interpreter until the game is Cleared.
func (r *Runner) Run() {
	for r.Step() {
	}
}
