package search

import (
	"errors"
	"fmt"
)

// ErrFetchFailed is the single failure kind of the fetch capability. Every
// network, status or decode failure satisfies errors.Is(err, ErrFetchFailed).
var ErrFetchFailed = errors.New("fetch failed")

// FetchError carries the detail behind an ErrFetchFailed for logging.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes every FetchError match ErrFetchFailed.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
