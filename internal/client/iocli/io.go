package iocli

//go:generate moq -out io_mock.go . IO

// IO is the output side of the command line client.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	Write(p []byte) (n int, err error)
	// IsTerminal reports whether output goes to an interactive terminal
	IsTerminal() bool
	// Width returns the line width available for output, 0 if unlimited
	Width() int
}
