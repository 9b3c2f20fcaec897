package fetch

import (
	"errors"
	"fmt"

	"hnsearch/internal/domain"
)

// ErrUnknownAction is returned by Reduce for an unrecognized action variant
var ErrUnknownAction = errors.New("unknown fetch action")

// ActionKind tags the transition variants
type ActionKind string

const (
	KindRequestStart   ActionKind = "REQUEST_START"
	KindRequestSuccess ActionKind = "REQUEST_SUCCESS"
	KindRequestFailure ActionKind = "REQUEST_FAILURE"
)

// Action is a state transition. The set of variants is closed: only the
// types in this package implement it.
type Action interface {
	Kind() ActionKind
	action()
}

// RequestStart enters loading for a new request target
type RequestStart struct {
	Generation uint64
	Target     string
}

func (RequestStart) Kind() ActionKind { return KindRequestStart }
func (RequestStart) action()          {}

// RequestSuccess stores the payload of a resolved request
type RequestSuccess struct {
	Generation uint64
	Payload    domain.ResultSet
}

func (RequestSuccess) Kind() ActionKind { return KindRequestSuccess }
func (RequestSuccess) action()          {}

// RequestFailure flags a failed request; Err is kept for logging only
type RequestFailure struct {
	Generation uint64
	Err        error
}

func (RequestFailure) Kind() ActionKind { return KindRequestFailure }
func (RequestFailure) action()          {}

// Reduce applies a to s and returns the next state. On an unknown variant
// the state is returned unchanged together with ErrUnknownAction.
func Reduce(s State, a Action) (State, error) {
	switch a := a.(type) {
	case RequestStart:
		s.Status = StatusLoading
		s.IsLoading = true
		s.IsError = false
		return s, nil

	case RequestSuccess:
		s.Status = StatusSuccess
		s.IsLoading = false
		s.IsError = false
		s.Data = a.Payload
		if s.Data.Hits == nil {
			s.Data.Hits = []domain.Record{}
		}
		return s, nil

	case RequestFailure:
		s.Status = StatusError
		s.IsLoading = false
		s.IsError = true
		return s, nil

	default:
		return s, fmt.Errorf("reduce %T: %w", a, ErrUnknownAction)
	}
}
