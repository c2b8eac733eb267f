package pathway

import "fmt"

// GraphInvariantViolated reports a compiled graph failing one of the
// structural invariants it is supposed to hold by construction (acyclic,
// single source/sink, every edge indexed). Seeing this means compile has
// a bug, not that the input definition was malformed - malformed
// definitions fail in the parser.
type GraphInvariantViolated struct {
	Detail string
}

func (e *GraphInvariantViolated) Error() string {
	return fmt.Sprintf("pathway: graph invariant violated: %s", e.Detail)
}

// UnknownModule is returned by catalog lookups for a module id that was
// never built, or was skipped during a build because it failed to parse
// or compile.
type UnknownModule struct {
	ModuleID string
}

func (e *UnknownModule) Error() string {
	return fmt.Sprintf("pathway: unknown module %q", e.ModuleID)
}
