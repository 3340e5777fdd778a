package fsm

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// Args are the parameters of a named unit in a state table
type Args map[string]any

// Float returns key as float64, or def when absent
func (a Args) Float(key string, def float64) (float64, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, errors.InvalidArgumentf("arg %s must be a number, got %T", key, v)
	}
}

// Int returns key as int, or def when absent. Whole floats are accepted.
func (a Args) Int(key string, def int) (int, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, errors.InvalidArgumentf("arg %s must be a whole number, got %v", key, n)
		}
		return int(n), nil
	default:
		return 0, errors.InvalidArgumentf("arg %s must be an integer, got %T", key, v)
	}
}

// String returns key as a string, or def when absent
func (a Args) String(key, def string) (string, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.InvalidArgumentf("arg %s must be a string, got %T", key, v)
	}
	return s, nil
}

// Duration returns key as a duration, or def when absent. Strings use
// time.ParseDuration syntax; bare numbers are seconds.
func (a Args) Duration(key string, def time.Duration) (time.Duration, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "arg %s is not a duration", key)
		}
		return parsed, nil
	case int, int64, float64:
		secs, err := a.Float(key, 0)
		if err != nil {
			return 0, err
		}
		return time.Duration(secs * float64(time.Second)), nil
	default:
		return 0, errors.InvalidArgumentf("arg %s must be a duration, got %T", key, v)
	}
}

// AsArgs converts a nested mapping from a table into Args. yaml.v3 hands
// nested mappings back as Args when decoding into Args, and as
// map[string]any elsewhere.
func AsArgs(v any) (Args, bool) {
	switch m := v.(type) {
	case Args:
		return m, true
	case map[string]any:
		return Args(m), true
	default:
		return nil, false
	}
}

// Unit returns a nested unit reference such as the decision wrapped by "not"
func (a Args) Unit(key string) (UnitSpec, error) {
	v, ok := a[key]
	if !ok {
		return UnitSpec{}, errors.InvalidArgumentf("arg %s is required", key)
	}
	if u, ok := v.(UnitSpec); ok {
		return u, nil
	}

	u, ok := AsArgs(v)
	if !ok {
		return UnitSpec{}, errors.InvalidArgumentf("arg %s must be a unit, got %T", key, v)
	}
	name, _ := u["name"].(string)
	if name == "" {
		return UnitSpec{}, errors.InvalidArgumentf("arg %s needs a name", key)
	}
	spec := UnitSpec{Name: name}
	if raw, present := u["args"]; present && raw != nil {
		nested, ok := AsArgs(raw)
		if !ok {
			return UnitSpec{}, errors.InvalidArgumentf("arg %s.args must be a mapping, got %T", key, raw)
		}
		spec.Args = nested
	}
	return spec, nil
}

// ActionFactory builds an action from its table arguments
type ActionFactory func(args Args) (Action, error)

// DecisionFactory builds a decision from its table arguments
type DecisionFactory func(args Args) (Decision, error)

// Registry maps unit names used in tables to factories
type Registry struct {
	mu        sync.RWMutex
	actions   map[string]ActionFactory
	decisions map[string]DecisionFactory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		actions:   make(map[string]ActionFactory),
		decisions: make(map[string]DecisionFactory),
	}
}

// RegisterAction adds an action factory under name
func (r *Registry) RegisterAction(name string, factory ActionFactory) error {
	if name == "" || factory == nil {
		return errors.InvalidArgument("action name and factory are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[name]; exists {
		return errors.AlreadyExistsf("action %q already registered", name)
	}
	r.actions[name] = factory
	return nil
}

// RegisterDecision adds a decision factory under name
func (r *Registry) RegisterDecision(name string, factory DecisionFactory) error {
	if name == "" || factory == nil {
		return errors.InvalidArgument("decision name and factory are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.decisions[name]; exists {
		return errors.AlreadyExistsf("decision %q already registered", name)
	}
	r.decisions[name] = factory
	return nil
}

// Action builds the named action
func (r *Registry) Action(name string, args Args) (Action, error) {
	r.mu.RLock()
	factory, ok := r.actions[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("unknown action %q", name)
	}

	action, err := factory(args)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build action %q", name)
	}
	return action, nil
}

// Decision builds the named decision
func (r *Registry) Decision(name string, args Args) (Decision, error) {
	r.mu.RLock()
	factory, ok := r.decisions[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("unknown decision %q", name)
	}

	decision, err := factory(args)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build decision %q", name)
	}
	return decision, nil
}

// Actions lists registered action names, sorted
func (r *Registry) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.actions)
}

// Decisions lists registered decision names, sorted
func (r *Registry) Decisions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.decisions)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
