// Package fsm interprets declarative state tables. A Machine is an immutable
// table of states, each holding ordered actions and guarded transitions; it
// drives any number of Agents one tick at a time.
//
// A tick runs every action of the agent's current state in order, then
// evaluates every transition of that state in order. A true decision selects
// OnTrue when set, a false one selects OnFalse when set. Later selections
// override earlier ones, so the last transition that fires wins. The new
// state takes effect on the next tick.
package fsm

// StateID identifies a state within one Machine. IDs are assigned from 1 in
// declaration order; StateNone means "no target".
type StateID int

// StateNone is the absent transition target
const StateNone StateID = 0

// Action is a unit of behavior run while an agent is in a state
type Action interface {
	Act(agent *Agent)
}

// ActionFunc adapts a function to Action
type ActionFunc func(agent *Agent)

// Act calls f(agent)
func (f ActionFunc) Act(agent *Agent) {
	f(agent)
}

// Decision is a predicate over the agent and its world
type Decision interface {
	Decide(agent *Agent) bool
}

// DecisionFunc adapts a function to Decision
type DecisionFunc func(agent *Agent) bool

// Decide calls f(agent)
func (f DecisionFunc) Decide(agent *Agent) bool {
	return f(agent)
}

// Not inverts a decision
func Not(d Decision) Decision {
	return DecisionFunc(func(agent *Agent) bool {
		return !d.Decide(agent)
	})
}

// Transition is a decision with optional targets for each outcome
type Transition struct {
	Decision Decision
	OnTrue   StateID
	OnFalse  StateID
}

// State is one row of a machine's table
type State struct {
	ID          StateID
	Name        string
	Actions     []Action
	Transitions []Transition
}
