// Package view implements the leaderboard view lifecycle as an explicit state
// machine. Every activation funnels through Transition, so overlapping fetches
// cannot race: a response is applied only when it matches the request the
// current state is waiting for.
package view

import (
	"github.com/louisbranch/xpboard/internal/leaderboard"
)

// Status is the coarse view state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is an immutable view state value.
type State struct {
	Status   Status
	Identity string
	// Seq identifies the most recent fetch issued for this view.
	Seq   uint64
	Board leaderboard.Board
	Err   error
}

// Event drives Transition.
type Event interface {
	isEvent()
}

// IdentityResolved reports the current viewer identity. An empty Identity
// means nobody is signed in.
type IdentityResolved struct {
	Identity string
}

// Refresh re-activates the view for the current identity.
type Refresh struct{}

// ResponseReceived carries the outcome of a fetch.
type ResponseReceived struct {
	Seq      uint64
	Identity string
	Snapshot leaderboard.Snapshot
	Err      error
}

func (IdentityResolved) isEvent() {}
func (Refresh) isEvent()          {}
func (ResponseReceived) isEvent() {}

// Fetch asks the caller to load a snapshot for Identity and report back with
// a ResponseReceived carrying the same Seq.
type Fetch struct {
	Seq      uint64
	Identity string
}

// Machine holds the parameters Transition needs to turn snapshots into boards.
type Machine struct {
	TopSize int
}

// Transition returns the next state for ev. A non-nil Fetch must be executed
// by the caller.
func (m Machine) Transition(s State, ev Event) (State, *Fetch) {
	switch ev := ev.(type) {
	case IdentityResolved:
		if ev.Identity == "" {
			// Responses only apply while loading, so going idle drops any
			// in-flight request. Seq is kept so it never repeats.
			if s.Status == StatusIdle && s.Identity == "" {
				return s, nil
			}
			return State{Status: StatusIdle, Seq: s.Seq}, nil
		}
		if ev.Identity == s.Identity && s.Status != StatusIdle {
			return s, nil
		}
		return m.load(s, ev.Identity)
	case Refresh:
		// A read already in flight for this viewer answers the refresh.
		if s.Identity == "" || s.Status == StatusLoading {
			return s, nil
		}
		return m.load(s, s.Identity)
	case ResponseReceived:
		if s.Status != StatusLoading || ev.Seq != s.Seq || ev.Identity != s.Identity {
			return s, nil
		}
		if ev.Err != nil {
			return State{Status: StatusFailed, Identity: s.Identity, Seq: s.Seq, Err: ev.Err}, nil
		}
		if err := ev.Snapshot.Validate(m.TopSize); err != nil {
			return State{Status: StatusFailed, Identity: s.Identity, Seq: s.Seq, Err: err}, nil
		}
		return State{
			Status:   StatusLoaded,
			Identity: s.Identity,
			Seq:      s.Seq,
			Board:    leaderboard.Build(ev.Snapshot, m.TopSize),
		}, nil
	default:
		return s, nil
	}
}

func (m Machine) load(s State, identity string) (State, *Fetch) {
	next := State{Status: StatusLoading, Identity: identity, Seq: s.Seq + 1}
	return next, &Fetch{Seq: next.Seq, Identity: identity}
}

// Transition applies ev with the default top size.
func Transition(s State, ev Event) (State, *Fetch) {
	return Machine{TopSize: leaderboard.DefaultTopSize}.Transition(s, ev)
}
