package facts

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable reports that the fact store could not be consulted,
// as opposed to a lookup that completed and found nothing.
var ErrStoreUnavailable = errors.New("fact store unavailable")

// StoreError wraps the underlying cause of a failed lookup. It matches both
// ErrStoreUnavailable and the cause under errors.Is.
type StoreError struct {
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%v: looking up %q: %v", ErrStoreUnavailable, e.Key, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.Err}
}
