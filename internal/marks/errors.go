package marks

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfirmed is returned by DeleteAll when the caller's input does
// not match ConfirmPhrase exactly.
var ErrNotConfirmed = errors.New("marks: deletion not confirmed")

type deleteError struct {
	path string
	err  error
}

// deleteErrors aggregates per-entry removal failures so a single bad
// entry does not abort the whole batch.
type deleteErrors []deleteError

func (e deleteErrors) Error() string {
	parts := make([]string, len(e))
	for i, d := range e {
		parts[i] = fmt.Sprintf("%s: %v", d.path, d.err)
	}
	return strings.Join(parts, "; ")
}
