package catalogstore

import "fmt"

// BuildFailure records one module that failed to parse or compile
// during a catalog build. The module is skipped; the build as a whole
// only fails if BuildFromTables is called with force set to false and
// the failure list is non-empty.
type BuildFailure struct {
	ModuleID string
	Err      error
}

func (f BuildFailure) String() string {
	return fmt.Sprintf("%s: %v", f.ModuleID, f.Err)
}

// BuildAborted is returned when one or more modules failed to parse or
// compile and the build was not forced past them.
type BuildAborted struct {
	Failures []BuildFailure
}

func (e *BuildAborted) Error() string {
	return fmt.Sprintf("catalogstore: build aborted, %d module(s) failed to compile (use --force to build anyway)", len(e.Failures))
}
