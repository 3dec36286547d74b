package runtime

import (
	"math/big"

	"github.com/dnek/mines/internal/board"
	"github.com/dnek/mines/internal/operation"
)

// Command is one of the 25 stack-machine commands: a name, an optional
// validator (run before execution; if it reports an error the command is
// skipped), and an executor.
type Command struct {
	Name     CommandType
	Validate func(*State) *CommandErrorType
	Execute  func(*State)
}

func requireClickResult(s *State) *operation.ClickResult {
	result := s.Player.LastClickResult()
	if result == nil {
		panic("command: last click result is nil")
	}
	return result
}

func requireOpenedCells(result *operation.ClickResult) []board.Cell {
	if result.OpenResult == nil || result.OpenResult.Over {
		panic("command: open result is not a cell list")
	}
	return result.OpenResult.Cells
}

func popValidator(popCount int) func(*State) *CommandErrorType {
	return func(s *State) *CommandErrorType {
		if s.Stack.Len() < popCount {
			return errPtr(StackUnderflowError)
		}
		return nil
	}
}

func errPtr(e CommandErrorType) *CommandErrorType {
	return &e
}

func pushWithConstantPops(s *State, popCount int, fn func([]*big.Int) *big.Int) {
	s.Stack.Push(fn(s.Stack.Pop(popCount)))
}

var runPushN = func(s *State) {
	result := requireClickResult(s)
	digit := s.Player.CellDigit(result.ClickedCell)
	s.Stack.Push(big.NewInt(int64(digit)))
}

var runPushCount = func(s *State) {
	result := requireClickResult(s)
	cells := requireOpenedCells(result)
	s.Stack.Push(big.NewInt(int64(len(cells))))
}

var runPushSum = func(s *State) {
	result := requireClickResult(s)
	cells := requireOpenedCells(result)
	sum := int64(0)
	for _, cell := range cells {
		sum += int64(s.Player.CellDigit(cell))
	}
	s.Stack.Push(big.NewInt(sum))
}

var runPop = func(s *State) {
	s.Stack.Pop(1)
}

var runPositive = func(s *State) {
	pushWithConstantPops(s, 1, func(pops []*big.Int) *big.Int {
		if pops[0].Sign() > 0 {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	})
}

var runDup = func(s *State) {
	pops := s.Stack.Pop(1)
	s.Stack.Push(pops[0], new(big.Int).Set(pops[0]))
}

var runAdd = func(s *State) {
	pushWithConstantPops(s, 2, func(pops []*big.Int) *big.Int {
		return new(big.Int).Add(pops[1], pops[0])
	})
}

var runSub = func(s *State) {
	pushWithConstantPops(s, 2, func(pops []*big.Int) *big.Int {
		return new(big.Int).Sub(pops[1], pops[0])
	})
}

var runMul = func(s *State) {
	pushWithConstantPops(s, 2, func(pops []*big.Int) *big.Int {
		return new(big.Int).Mul(pops[1], pops[0])
	})
}

// floorDivMod returns floor division/modulo of a by b: the quotient rounds
// toward negative infinity and the remainder always has b's sign (or is
// zero), matching Python's // and % rather than Go's truncated / and %.
func floorDivMod(a, b *big.Int) (q, r *big.Int) {
	q, r = new(big.Int), new(big.Int)
	q.QuoRem(a, b, r)
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
		r.Add(r, b)
	}
	return q, r
}

func validateDivisorNonZero(s *State) *CommandErrorType {
	if s.Stack.Len() < 2 {
		return errPtr(StackUnderflowError)
	}
	if s.Stack.Peek(0).Sign() == 0 {
		return errPtr(ZeroDivisionError)
	}
	return nil
}

var runDiv = func(s *State) {
	pushWithConstantPops(s, 2, func(pops []*big.Int) *big.Int {
		q, _ := floorDivMod(pops[1], pops[0])
		return q
	})
}

var runMod = func(s *State) {
	pushWithConstantPops(s, 2, func(pops []*big.Int) *big.Int {
		_, r := floorDivMod(pops[1], pops[0])
		return r
	})
}

var runNot = func(s *State) {
	pushWithConstantPops(s, 1, func(pops []*big.Int) *big.Int {
		if pops[0].Sign() == 0 {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	})
}

func validateRoll(s *State) *CommandErrorType {
	if s.Stack.Len() < 2 {
		return errPtr(StackUnderflowError)
	}
	absDepth := new(big.Int).Abs(s.Stack.Peek(1))
	// No real stack can ever be long enough to satisfy a depth that doesn't
	// even fit in an int64, so an unrepresentable depth is just an
	// underflow: there is never enough stack to roll.
	if !absDepth.IsInt64() {
		return errPtr(StackUnderflowError)
	}
	minLen := int64(2) + absDepth.Int64()
	if int64(s.Stack.Len()) < minLen {
		return errPtr(StackUnderflowError)
	}
	return nil
}

var runRoll = func(s *State) {
	pops := s.Stack.Pop(2)
	rollTime := pops[0]
	// validateRoll has already proven |depth| fits in an int64 (and in
	// fact in the stack's length), so this conversion is safe.
	depth := int(pops[1].Int64())
	s.Stack.Roll(depth, rollTime)
}

func validateInN(s *State) *CommandErrorType {
	if !s.InputBuffer.ValidateRequestInteger() {
		return errPtr(InputMismatchError)
	}
	return nil
}

func validateInC(s *State) *CommandErrorType {
	if !s.InputBuffer.ValidateRequestChar() {
		return errPtr(InputMismatchError)
	}
	return nil
}

func validateOutC(s *State) *CommandErrorType {
	if s.Stack.Len() < 1 {
		return errPtr(StackUnderflowError)
	}
	if !s.OutputBuffer.ValidateWriteAsChar(s.Stack.Peek(0)) {
		return errPtr(UnicodeRangeError)
	}
	return nil
}

var runInN = func(s *State) {
	s.Stack.Push(s.InputBuffer.RequestInteger())
}

var runInC = func(s *State) {
	s.Stack.Push(s.InputBuffer.RequestChar())
}

var runOutN = func(s *State) {
	pops := s.Stack.Pop(1)
	s.OutputBuffer.WriteAsInteger(pops[0])
}

var runOutC = func(s *State) {
	pops := s.Stack.Pop(1)
	s.OutputBuffer.WriteAsChar(pops[0])
}

var runSkip = func(s *State) {
	pops := s.Stack.Pop(1)
	s.OperationPointer.Advance(pops[0])
}

func clickOperationFromStack(s *State, isLeftButton bool) operation.Click {
	pops := s.Stack.Pop(2)
	cell := s.Player.BoardSize().WrappedCellBig(pops[1], pops[0])
	return operation.Click{Cell: cell, IsLeftButton: isLeftButton}
}

var runPerformL = func(s *State) {
	s.OperationQueue = append(s.OperationQueue, clickOperationFromStack(s, true))
}

var runPerformR = func(s *State) {
	s.OperationQueue = append(s.OperationQueue, clickOperationFromStack(s, false))
}

var runResetL = func(s *State) {
	s.OperationQueue = append(s.OperationQueue, operation.Restart{})
}

var runResetR = func(s *State) {
	s.Stack.Clear()
	s.OperationQueue = append(s.OperationQueue, operation.Restart{})
}

var runSwap = func(s *State) {
	pops := s.Stack.Pop(2)
	s.Stack.Push(pops[0], pops[1])
}

var runReverse = func(s *State) {
	s.Stack.Reverse()
}

var runNoop = func(*State) {}

var (
	PushNCommand     = Command{Name: PushN, Execute: runPushN}
	PushCountCommand = Command{Name: PushCount, Execute: runPushCount}
	PushSumCommand   = Command{Name: PushSum, Execute: runPushSum}

	PopCommand      = Command{Name: Pop, Validate: popValidator(1), Execute: runPop}
	PositiveCommand = Command{Name: Positive, Validate: popValidator(1), Execute: runPositive}
	DupCommand      = Command{Name: Dup, Validate: popValidator(1), Execute: runDup}

	AddCommand = Command{Name: Add, Validate: popValidator(2), Execute: runAdd}
	SubCommand = Command{Name: Sub, Validate: popValidator(2), Execute: runSub}
	MulCommand = Command{Name: Mul, Validate: popValidator(2), Execute: runMul}
	DivCommand = Command{Name: Div, Validate: validateDivisorNonZero, Execute: runDiv}
	ModCommand = Command{Name: Mod, Validate: validateDivisorNonZero, Execute: runMod}

	NotCommand  = Command{Name: Not, Validate: popValidator(1), Execute: runNot}
	RollCommand = Command{Name: Roll, Validate: validateRoll, Execute: runRoll}

	InNCommand  = Command{Name: InN, Validate: validateInN, Execute: runInN}
	InCCommand  = Command{Name: InC, Validate: validateInC, Execute: runInC}
	OutNCommand = Command{Name: OutN, Validate: popValidator(1), Execute: runOutN}
	OutCCommand = Command{Name: OutC, Validate: validateOutC, Execute: runOutC}

	SkipCommand     = Command{Name: Skip, Validate: popValidator(1), Execute: runSkip}
	PerformLCommand = Command{Name: PerformL, Validate: popValidator(2), Execute: runPerformL}
	PerformRCommand = Command{Name: PerformR, Validate: popValidator(2), Execute: runPerformR}
	ResetLCommand   = Command{Name: ResetL, Execute: runResetL}
	ResetRCommand   = Command{Name: ResetR, Execute: runResetR}

	SwapCommand       = Command{Name: Swap, Validate: popValidator(2), Execute: runSwap}
	ReverseCommand    = Command{Name: ReverseCmd, Execute: runReverse}
	NoopCommand       = Command{Name: Noop, Execute: runNoop}
)
