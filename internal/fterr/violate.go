package fterr

import (
	"fmt"
	"runtime"
)

// Violate panics with an ImplementationError: an unreachable branch or
// broken internal invariant, never a user-facing condition. Per spec
// §7, ImplementationError is never caught — callers use this only for
// conditions that indicate a bug in gofta itself (an unknown enum
// variant, an unexpected line kind inside an already-typed paragraph,
// and the like).
func Violate(format string, args ...any) {
	msg := fmt.Sprintf("IMPLEMENTATION ERROR: "+format, args...)
	pc := make([]uintptr, 8)
	n := runtime.Callers(2, pc)
	frames := runtime.CallersFrames(pc[:n])
	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}
	panic(msg)
}

// Assert panics with Violate if cond is false. Use for internal
// consistency checks (loop progress, exhaustive switch defaults) that
// must hold if the rest of the package is correct.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		Violate(format, args...)
	}
}
