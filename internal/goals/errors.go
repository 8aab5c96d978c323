package goals

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("financial goal not found")
	ErrInvalidValue = errors.New("invalid field value")
)

// Failure is one request of a batch save that did not succeed
type Failure struct {
	ID  Identity
	Err error
}

// BatchError is returned by SaveAll when some of its requests fail. Entries
// named here keep their local edits.
type BatchError struct {
	Total    int
	Failures []Failure
}

func (e *BatchError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Err.Error())
	}
	return fmt.Sprintf("failed to save %d of %d financial goals: %s", len(e.Failures), e.Total, strings.Join(msgs, "; "))
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Failed lists the identities whose save failed
func (e *BatchError) Failed() []Identity {
	ids := make([]Identity, 0, len(e.Failures))
	for _, f := range e.Failures {
		ids = append(ids, f.ID)
	}
	return ids
}
