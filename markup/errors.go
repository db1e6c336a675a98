package markup

import "fmt"

// Error is a document error carrying the source line of the offending
// element.
type Error struct {
	Line int
	Msg  string
	Err  error // underlying build error, if any
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func errAt(n *Node, format string, args ...any) *Error {
	line := 0
	if n != nil {
		line = n.Line
	}
	return &Error{Line: line, Msg: fmt.Sprintf(format, args...)}
}

func wrapAt(n *Node, err error) *Error {
	line := 0
	if n != nil {
		line = n.Line
	}
	return &Error{Line: line, Msg: err.Error(), Err: err}
}
