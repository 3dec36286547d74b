package runtime

import "math/big"

// minAbsRollDepth is the smallest |depth| roll acts on; anything smaller
// leaves the stack unchanged.
const minAbsRollDepth = 2

// Stack is an unbounded-integer deque with a logical "top" that can be
// flipped between ends in O(1) via reverse(). Values are stored in a plain
// slice; isReversed decides whether push/pop act on the back (false) or the
// front (true) of that slice, so reversing never copies elements.
type Stack struct {
	values     []*big.Int
	isReversed bool
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int {
	return len(s.values)
}

// Peek returns the value topIndex positions below the top (0 = the top
// itself) without removing it.
func (s *Stack) Peek(topIndex int) *big.Int {
	if s.isReversed {
		return s.values[topIndex]
	}
	return s.values[len(s.values)-1-topIndex]
}

// Pop removes and returns the top popCount values, in top-to-bottom order.
func (s *Stack) Pop(popCount int) []*big.Int {
	popped := make([]*big.Int, popCount)
	if s.isReversed {
		for i := 0; i < popCount; i++ {
			popped[i] = s.values[0]
			s.values = s.values[1:]
		}
		return popped
	}
	for i := 0; i < popCount; i++ {
		last := len(s.values) - 1
		popped[i] = s.values[last]
		s.values = s.values[:last]
	}
	return popped
}

// Push pushes values onto the top, in the order given (the last argument
// ends up on top).
func (s *Stack) Push(values ...*big.Int) {
	if s.isReversed {
		for _, v := range values {
			s.values = append([]*big.Int{v}, s.values...)
		}
		return
	}
	s.values = append(s.values, values...)
}

// Reverse flips which end of the deque is considered "top". O(1).
func (s *Stack) Reverse() {
	s.isReversed = !s.isReversed
}

// Roll rotates the top |depth| values by rollTime positions. depth's sign
// selects the rotation's reflection (see spec.md §4.4/§4.5); depths with
// |depth| < 2 are a no-op. Callers must ensure the stack holds at least
// |depth| values. rollTime comes straight off the arbitrary-precision
// stack, so it is reduced modulo depth in big.Int arithmetic before ever
// touching a machine int.
func (s *Stack) Roll(depth int, rollTime *big.Int) {
	if abs(depth) < minAbsRollDepth {
		return
	}

	if depth < -1 {
		s.Reverse()
		s.Roll(-depth, rollTime)
		s.Reverse()
		return
	}

	// big.Int.Mod is Euclidean: the result is always in [0, depth).
	rollTimeRem := int(new(big.Int).Mod(rollTime, big.NewInt(int64(depth))).Int64())
	if rollTimeRem == 0 {
		return
	}

	bottoms := s.Pop(rollTimeRem)
	tops := s.Pop(depth - rollTimeRem)
	s.Push(reversedCopy(bottoms)...)
	s.Push(reversedCopy(tops)...)
}

// Top returns up to n values from the top, top-to-bottom, without removing
// them. Used by the debugger to render the stack; never mutates.
func (s *Stack) Top(n int) []*big.Int {
	if n > len(s.values) {
		n = len(s.values)
	}
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		out[i] = s.Peek(i)
	}
	return out
}

// Clear empties the stack, leaving orientation unchanged.
func (s *Stack) Clear() {
	s.values = nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func reversedCopy(values []*big.Int) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v
	}
	return out
}
