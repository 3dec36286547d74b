package runtime

import (
	"io"
	"math/big"
)

// maxUnicodeCodepoint is the highest valid Unicode scalar value.
const maxUnicodeCodepoint = 0x10FFFF

// OutputBuffer writes stack values to a text sink, either as decimal text
// or as the character whose code point equals the value.
type OutputBuffer struct {
	w io.Writer
}

// NewOutputBuffer wraps w.
func NewOutputBuffer(w io.Writer) *OutputBuffer {
	return &OutputBuffer{w: w}
}

// WriteAsInteger writes value's decimal representation.
func (o *OutputBuffer) WriteAsInteger(value *big.Int) {
	io.WriteString(o.w, value.String())
}

// ValidateWriteAsChar reports whether value is a valid Unicode code point.
func (o *OutputBuffer) ValidateWriteAsChar(value *big.Int) bool {
	if !value.IsInt64() {
		return false
	}
	v := value.Int64()
	return v >= 0 && v <= maxUnicodeCodepoint
}

// WriteAsChar writes the character whose code point equals value. Callers
// must validate first.
func (o *OutputBuffer) WriteAsChar(value *big.Int) {
	io.WriteString(o.w, string(rune(value.Int64())))
}
