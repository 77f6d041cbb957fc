package disambiguate

import "fmt"

// State is a step of the per-query decision cycle.
type State int

const (
	// StateScoring selects and ranks candidates.
	StateScoring State = iota
	// StateDeciding compares the best composite with the threshold.
	StateDeciding
	// StateAutoAccept takes the top candidate without asking.
	StateAutoAccept
	// StateAwaitInput waits for one operator reply.
	StateAwaitInput
	// StateResolved hands the outcome back to the session.
	StateResolved
	// StateTerminatedEarly ends the whole session.
	StateTerminatedEarly
)

var stateNames = [...]string{
	StateScoring:         "SCORING",
	StateDeciding:        "DECIDING",
	StateAutoAccept:      "AUTO_ACCEPT",
	StateAwaitInput:      "AWAIT_INPUT",
	StateResolved:        "RESOLVED",
	StateTerminatedEarly: "TERMINATED_EARLY",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Transition is reported to a StateHook on every state change.
type Transition struct {
	Query string
	From  State
	To    State
}

// StateHook observes controller transitions.
type StateHook func(Transition)
