package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// InvalidRequestError reports a scoring input that is malformed or missing
// required fields for its category. Fields maps field name to the reason it
// was rejected; nothing is ever silently defaulted.
type InvalidRequestError struct {
	Fields map[string]string
}

func (e *InvalidRequestError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid request: %s", strings.Join(names, ", "))
}

// EmptyCandidateSetError reports that no supplied vendor can serve the
// request's category. It is a retryable "no results" outcome, not a fault.
type EmptyCandidateSetError struct {
	Message string
}

func (e *EmptyCandidateSetError) Error() string {
	return fmt.Sprintf("emptyCandidateSet: %s", e.Message)
}

func newEmptyCandidateSetError(msg string) error {
	return &EmptyCandidateSetError{Message: msg}
}
