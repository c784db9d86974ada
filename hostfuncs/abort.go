package hostfuncs

// abortPanic carries a fatal host error across the script boundary.
// It is deliberately not an error: the engine converts native-function
// panics carrying error values into script-catchable exceptions, and an
// abort must unwind past script try/catch to the host's recover point.
type abortPanic struct {
	err error
}

// Abort unwinds a fatal host error through the scripting engine to the
// host's recover point. Script code cannot intercept it.
func Abort(err error) {
	panic(abortPanic{err: err})
}

// AbortCause returns the error carried by a recovered Abort panic value.
// The second return value is false for any other panic value.
func AbortCause(r any) (error, bool) {
	if a, ok := r.(abortPanic); ok {
		return a.err, true
	}
	return nil, false
}
