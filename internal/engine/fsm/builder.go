package fsm

import (
	"fmt"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

type stateDef struct {
	name        string
	actions     []Action
	transitions []transitionDef
}

type transitionDef struct {
	decision Decision
	onTrue   string
	onFalse  string
}

// Builder assembles a Machine. Calls chain; problems are collected and
// reported together by Build.
//
//	m, err := fsm.NewBuilder("grunt").
//		State("idle").Transition(seesPlayer, "chase", "").
//		State("chase").Action(moveToward).Transition(seesPlayer, "", "idle").
//		Build("idle")
type Builder struct {
	name    string
	states  []*stateDef
	current *stateDef
	vb      *errors.ValidationBuilder
}

// NewBuilder starts a table with the given name
func NewBuilder(name string) *Builder {
	return &Builder{
		name: name,
		vb:   errors.NewValidationBuilder(),
	}
}

// State declares a new state; following Action and Transition calls attach to it
func (b *Builder) State(name string) *Builder {
	if name == "" {
		b.vb.Fieldf("states", "state %d has no name", len(b.states)+1)
	}
	b.current = &stateDef{name: name}
	b.states = append(b.states, b.current)
	return b
}

// Action appends actions to the current state
func (b *Builder) Action(actions ...Action) *Builder {
	if b.current == nil {
		b.vb.Field("states", "action declared before any state")
		return b
	}
	for _, a := range actions {
		if a == nil {
			b.vb.Fieldf(b.field(), "action %d is nil", len(b.current.actions))
			continue
		}
		b.current.actions = append(b.current.actions, a)
	}
	return b
}

// Transition appends a transition to the current state. An empty target
// keeps the agent in place for that outcome.
func (b *Builder) Transition(d Decision, onTrue, onFalse string) *Builder {
	if b.current == nil {
		b.vb.Field("states", "transition declared before any state")
		return b
	}
	if d == nil {
		b.vb.Fieldf(b.field(), "transition %d has no decision", len(b.current.transitions))
		return b
	}
	b.current.transitions = append(b.current.transitions, transitionDef{
		decision: d,
		onTrue:   onTrue,
		onFalse:  onFalse,
	})
	return b
}

func (b *Builder) field() string {
	return fmt.Sprintf("states.%s", b.current.name)
}

// Build resolves every state name and returns the machine
func (b *Builder) Build(initial string) (*Machine, error) {
	if len(b.states) == 0 {
		b.vb.Field("states", "at least one state is required")
	}

	byName := make(map[string]StateID, len(b.states))
	for i, def := range b.states {
		if def.name == "" {
			continue
		}
		if _, dup := byName[def.name]; dup {
			b.vb.Fieldf("states", "duplicate state %q", def.name)
			continue
		}
		byName[def.name] = StateID(i + 1)
	}

	resolve := func(field, target string) StateID {
		if target == "" {
			return StateNone
		}
		id, ok := byName[target]
		if !ok {
			b.vb.Fieldf(field, "unknown target state %q", target)
		}
		return id
	}

	states := make([]State, len(b.states))
	for i, def := range b.states {
		field := fmt.Sprintf("states.%s", def.name)
		transitions := make([]Transition, len(def.transitions))
		for j, t := range def.transitions {
			transitions[j] = Transition{
				Decision: t.decision,
				OnTrue:   resolve(field, t.onTrue),
				OnFalse:  resolve(field, t.onFalse),
			}
		}
		actions := make([]Action, len(def.actions))
		copy(actions, def.actions)

		states[i] = State{
			ID:          StateID(i + 1),
			Name:        def.name,
			Actions:     actions,
			Transitions: transitions,
		}
	}

	initialID, ok := byName[initial]
	if !ok {
		b.vb.Fieldf("initial", "unknown initial state %q", initial)
	}

	if err := b.vb.Build(); err != nil {
		return nil, errors.Wrapf(err, "invalid state table %s", b.name)
	}

	return &Machine{
		name:    b.name,
		initial: initialID,
		states:  states,
		byName:  byName,
	}, nil
}
