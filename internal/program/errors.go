package program

import "fmt"

// compileError reports a parse or validation failure with its source line.
type compileError struct {
	line int
	msg  string
}

func (e compileError) Error() string {
	return fmt.Sprintf("program compile error at line %d: %s", e.line, e.msg)
}

// ErrCompile constructs a compile error at the given line.
func ErrCompile(line int, msg string) error { return compileError{line: line, msg: msg} }

// IsCompile reports whether err is a program compile error.
func IsCompile(err error) bool {
	_, ok := err.(compileError)
	return ok
}
