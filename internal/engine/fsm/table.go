package fsm

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// UnitSpec names a registered action or decision and its arguments
type UnitSpec struct {
	Name string `yaml:"name" json:"name"`
	Args Args   `yaml:"args,omitempty" json:"args,omitempty"`
}

// TransitionSpec is a transition as written in a table file
type TransitionSpec struct {
	Decision UnitSpec `yaml:"decision" json:"decision"`
	OnTrue   string   `yaml:"on_true,omitempty" json:"on_true,omitempty"`
	OnFalse  string   `yaml:"on_false,omitempty" json:"on_false,omitempty"`
}

// StateSpec is a state as written in a table file
type StateSpec struct {
	Name        string           `yaml:"name" json:"name"`
	Actions     []UnitSpec       `yaml:"actions,omitempty" json:"actions,omitempty"`
	Transitions []TransitionSpec `yaml:"transitions,omitempty" json:"transitions,omitempty"`
}

// Table is the serialized form of a machine
//
//	name: grunt
//	initial: idle
//	states:
//	  - name: idle
//	    actions:
//	      - name: detect_target
//	        args: {radius: 120}
//	    transitions:
//	      - decision: {name: has_target}
//	        on_true: chase
type Table struct {
	Name    string      `yaml:"name" json:"name"`
	Initial string      `yaml:"initial" json:"initial"`
	States  []StateSpec `yaml:"states" json:"states"`
}

// ParseTable decodes a YAML table. Unknown keys are rejected.
func ParseTable(r io.Reader) (*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Table
	if err := dec.Decode(&t); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse state table")
	}
	return &t, nil
}

// Build resolves every unit against reg and assembles the machine
func (t *Table) Build(reg *Registry) (*Machine, error) {
	if reg == nil {
		return nil, errors.InvalidArgument("registry is required")
	}

	b := NewBuilder(t.Name)
	for _, s := range t.States {
		b.State(s.Name)

		for i, spec := range s.Actions {
			action, err := reg.Action(spec.Name, spec.Args)
			if err != nil {
				return nil, unitError(err, t.Name, s.Name, "action", i)
			}
			b.Action(action)
		}

		for i, spec := range s.Transitions {
			decision, err := reg.Decision(spec.Decision.Name, spec.Decision.Args)
			if err != nil {
				return nil, unitError(err, t.Name, s.Name, "transition", i)
			}
			b.Transition(decision, spec.OnTrue, spec.OnFalse)
		}
	}

	return b.Build(t.Initial)
}

func unitError(err error, table, state, kind string, index int) error {
	return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "table %s state %s: %s %d", table, state, kind, index).
		WithMeta(errors.MetaState, state).
		WithMeta(errors.MetaUnit, fmt.Sprintf("%s[%d]", kind, index))
}

// LoadTable parses a YAML table and builds it against reg
func LoadTable(r io.Reader, reg *Registry) (*Machine, error) {
	t, err := ParseTable(r)
	if err != nil {
		return nil, err
	}
	return t.Build(reg)
}
