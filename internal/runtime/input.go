package runtime

import "math/big"

// InputSource is a lookahead-capable character stream: Peek lets the input
// buffer scan ahead without consuming, Dequeue consumes one character.
type InputSource interface {
	// Peek returns up to n buffered runes without consuming them. It may
	// return fewer than n only once the source is exhausted (see
	// IsEOFConfirmed); otherwise it blocks until n runes are available.
	Peek(n int) []rune
	// Dequeue consumes and returns one rune. It must only be called after
	// Peek(1) returned at least one rune.
	Dequeue() rune
	// BufferedLen returns how many runes are currently buffered.
	BufferedLen() int
	// IsEOFConfirmed reports whether the source is exhausted: BufferedLen
	// will never increase again.
	IsEOFConfirmed() bool
}

// InputBuffer wraps an InputSource with the integer/char request contract
// the in(n)/in(c) commands need.
type InputBuffer struct {
	source InputSource
}

// NewInputBuffer wraps source.
func NewInputBuffer(source InputSource) *InputBuffer {
	return &InputBuffer{source: source}
}

// parseNextInteger scans from the head of the source, skipping ASCII
// whitespace, then matching an optional sign followed by one or more
// digits; it stops at the first character that can't continue the match.
// Returns (spaceCount, digits, ok): ok is false if no valid integer (a bare
// sign, or nothing at all) was found.
func (b *InputBuffer) parseNextInteger() (spaceCount int, digits string, ok bool) {
	matched := ""
	window := 0

	for {
		peeked := b.source.Peek(window + 1)
		if len(peeked) <= window {
			break // EOF: no more characters available.
		}
		c := peeked[window]

		if len(matched) == 0 {
			if isSpaceRune(c) {
				spaceCount++
				window++
				continue
			}
			if isDigitRune(c) || c == '+' || c == '-' {
				matched += string(c)
				window++
				continue
			}
			break
		}

		if isDigitRune(c) {
			matched += string(c)
			window++
			continue
		}
		break
	}

	if matched == "" || matched == "+" || matched == "-" {
		return 0, "", false
	}
	return spaceCount, matched, true
}

// ValidateRequestInteger reports whether the next scan would succeed,
// without consuming anything.
func (b *InputBuffer) ValidateRequestInteger() bool {
	_, _, ok := b.parseNextInteger()
	return ok
}

// RequestInteger consumes and returns the next integer in the input,
// leaving the stop character buffered. Callers must validate first.
func (b *InputBuffer) RequestInteger() *big.Int {
	spaceCount, digits, ok := b.parseNextInteger()
	if !ok {
		panic("input buffer: RequestInteger called without a valid integer")
	}
	for i := 0; i < spaceCount+len(digits); i++ {
		b.source.Dequeue()
	}
	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		panic("input buffer: internal error, matched digits are not a valid integer: " + digits)
	}
	return value
}

// ValidateRequestChar reports whether a character is available.
func (b *InputBuffer) ValidateRequestChar() bool {
	return len(b.source.Peek(1)) > 0
}

// RequestChar consumes one character and returns its Unicode code point.
func (b *InputBuffer) RequestChar() *big.Int {
	return big.NewInt(int64(b.source.Dequeue()))
}

func isSpaceRune(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func isDigitRune(c rune) bool {
	return c >= '0' && c <= '9'
}

