package fsm

import (
	"fmt"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/logging"
)

// Machine is a validated state table. It holds no per-agent data and is safe
// to share between goroutines.
type Machine struct {
	name    string
	initial StateID
	states  []State
	byName  map[string]StateID
}

// Name returns the table name
func (m *Machine) Name() string {
	return m.name
}

// Initial returns the state new agents start in
func (m *Machine) Initial() StateID {
	return m.initial
}

// NewAgent creates an agent in the initial state
func (m *Machine) NewAgent(id string) *Agent {
	return NewAgent(id, m.initial)
}

// State returns a copy of the state with the given id
func (m *Machine) State(id StateID) (State, bool) {
	s, ok := m.lookup(id)
	if !ok {
		return State{}, false
	}
	out := *s
	out.Actions = append([]Action(nil), s.Actions...)
	out.Transitions = append([]Transition(nil), s.Transitions...)
	return out, true
}

func (m *Machine) lookup(id StateID) (*State, bool) {
	if id <= StateNone || int(id) > len(m.states) {
		return nil, false
	}
	return &m.states[id-1], true
}

// StateID resolves a state name
func (m *Machine) StateID(name string) (StateID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

// StateName returns the name of id, or a placeholder for unknown ids
func (m *Machine) StateName(id StateID) string {
	if s, ok := m.lookup(id); ok {
		return s.Name
	}
	return fmt.Sprintf("state(%d)", id)
}

// States lists state names in declaration order
func (m *Machine) States() []string {
	names := make([]string, len(m.states))
	for i, s := range m.states {
		names[i] = s.Name
	}
	return names
}

// SetState forces the agent into id. Unknown ids leave the agent where it is.
func (m *Machine) SetState(agent *Agent, id StateID) error {
	if agent == nil {
		return errors.InvalidArgument("agent is required")
	}
	if _, ok := m.lookup(id); !ok {
		return errors.NotFoundf("machine %s has no state %d", m.name, id).
			WithMeta(errors.MetaAgent, agent.ID)
	}
	if agent.current != id {
		agent.moveTo(id)
	}
	return nil
}

// Tick runs one step for the agent. Panicking actions and decisions are
// logged and skipped; a skipped decision selects neither target.
func (m *Machine) Tick(agent *Agent) error {
	if agent == nil {
		return errors.InvalidArgument("agent is required")
	}
	state, ok := m.lookup(agent.current)
	if !ok {
		return errors.NotFoundf("machine %s has no state %d", m.name, agent.current).
			WithMeta(errors.MetaAgent, agent.ID)
	}

	for i, action := range state.Actions {
		m.runAction(agent, state, i, action)
	}
	agent.ticksInState++

	next := agent.current
	for i, t := range state.Transitions {
		fired, ok := m.decide(agent, state, i, t.Decision)
		if !ok {
			continue
		}
		if fired && t.OnTrue != StateNone {
			next = t.OnTrue
		} else if !fired && t.OnFalse != StateNone {
			next = t.OnFalse
		}
	}

	if next != agent.current {
		logging.Debug().
			Add(logging.Agent(agent.ID)).
			Add(logging.Transition(state.Name, m.StateName(next))).
			Msg("fsm transition")
		agent.moveTo(next)
	}
	return nil
}

func (m *Machine) runAction(agent *Agent, state *State, index int, action Action) {
	defer func() {
		if r := recover(); r != nil {
			m.logSkip(agent, state, "action", index, r)
		}
	}()
	action.Act(agent)
}

func (m *Machine) decide(agent *Agent, state *State, index int, decision Decision) (fired, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logSkip(agent, state, "decision", index, r)
			fired, ok = false, false
		}
	}()
	return decision.Decide(agent), true
}

func (m *Machine) logSkip(agent *Agent, state *State, kind string, index int, recovered any) {
	logging.Warn().
		Add(logging.Agent(agent.ID)).
		Add(logging.State(state.Name)).
		Str("unit", kind).
		Int("index", index).
		Str("panic", fmt.Sprint(recovered)).
		Msg("fsm unit panicked, skipping")
}
