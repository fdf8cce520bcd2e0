package iocli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Stdio writes to an output stream, os.Stdout by default.
type Stdio struct {
	out io.Writer
	fd  int
	tty bool
}

// NewStdio returns IO bound to os.Stdout.
func NewStdio() IO {
	fd := int(os.Stdout.Fd())
	return &Stdio{
		out: os.Stdout,
		fd:  fd,
		tty: term.IsTerminal(fd),
	}
}

// NewWriter returns IO writing to w. Output to w is never treated as a terminal.
func NewWriter(w io.Writer) IO {
	return &Stdio{out: w, fd: -1}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) IsTerminal() bool {
	return s.tty
}

// Width returns the terminal width. Output that is not a terminal has no
// width limit and gets 0.
func (s *Stdio) Width() int {
	if !s.tty {
		return 0
	}
	w, _, err := term.GetSize(s.fd)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
