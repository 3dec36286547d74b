// Package iosource provides InputSource implementations for the runtime's
// in(n)/in(c) commands: an interactive stdin reader, a literal echo string,
// and a file reader.
package iosource

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// bufferedSource is the shared lookahead buffer used by every InputSource
// here: a growing rune slice plus a fill function that appends more runes
// (or confirms EOF) once the buffer runs dry.
type bufferedSource struct {
	buf    []rune
	eof    bool
	fill   func() []rune
	filled bool // fill already returned empty once; avoid calling it again
}

func (b *bufferedSource) Peek(n int) []rune {
	for len(b.buf) < n && !b.eof {
		b.fillOnce()
	}
	if n > len(b.buf) {
		n = len(b.buf)
	}
	return b.buf[:n]
}

func (b *bufferedSource) fillOnce() {
	if b.filled {
		b.eof = true
		return
	}
	more := b.fill()
	if len(more) == 0 {
		b.filled = true
		b.eof = true
		return
	}
	b.buf = append(b.buf, more...)
}

func (b *bufferedSource) Dequeue() rune {
	r := b.buf[0]
	b.buf = b.buf[1:]
	return r
}

func (b *bufferedSource) BufferedLen() int {
	return len(b.buf)
}

func (b *bufferedSource) IsEOFConfirmed() bool {
	return b.eof && len(b.buf) == 0
}

// Echo is a fully-buffered InputSource over a literal string, used for the
// --echo flag: the whole string is available up front and EOF is immediate
// once it's consumed.
func Echo(s string) *bufferedSource {
	return &bufferedSource{buf: []rune(s), eof: true}
}

// File reads the entire contents of path up front and serves it as a
// buffered InputSource, the same shape as Echo.
func File(path string) (*bufferedSource, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the CLI's own -i flag
	if err != nil {
		return nil, fmt.Errorf("iosource: read %s: %w", path, err)
	}
	return Echo(string(data)), nil
}

// Stdin reads from r (ordinarily os.Stdin) a line at a time, prompting on
// stderr when r is an interactive terminal, mirroring the reference
// interpreter's behavior of only nagging a human for more input.
func Stdin(r *os.File) *bufferedSource {
	reader := bufio.NewReader(r)
	interactive := isatty.IsTerminal(r.Fd())

	return &bufferedSource{
		fill: func() []rune {
			if interactive {
				fmt.Fprint(os.Stderr, "add input or EOF(^D) >>> ")
			}
			line, err := reader.ReadString('\n')
			if len(line) == 0 && err != nil {
				if interactive {
					fmt.Fprintln(os.Stderr, "EOF")
				}
				return nil
			}
			return []rune(line)
		},
	}
}
