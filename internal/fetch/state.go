// Package fetch owns the lifecycle of the search request tied to the current
// request target: idle → loading → success | error, re-entering loading on
// every new target. Fetches run as tea.Cmds and resolve back into Update as
// ResultMsg values, so all transitions happen on the bubbletea event loop.
package fetch

import "hnsearch/internal/domain"

// Status is the machine's current state
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the observable fetch state. IsLoading and IsError are never both
// true. Data is only replaced by a successful resolution.
type State struct {
	Status    Status
	IsLoading bool
	IsError   bool
	Data      domain.ResultSet
}

// NewState returns the idle state holding initial data
func NewState(initial domain.ResultSet) State {
	if initial.Hits == nil {
		initial.Hits = []domain.Record{}
	}
	return State{Status: StatusIdle, Data: initial}
}
