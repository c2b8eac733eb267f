package enrichment

import "fmt"

// BackgroundMismatch is returned when the query KO set is not a subset
// of the background universe.
type BackgroundMismatch struct {
	Extra []string
}

func (e *BackgroundMismatch) Error() string {
	return fmt.Sprintf("enrichment: %d query KO(s) not in background: %v", len(e.Extra), e.Extra)
}
