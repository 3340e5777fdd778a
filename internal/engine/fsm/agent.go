package fsm

import "time"

// Agent is the per-entity side of a machine: its current state and a small
// memory that actions and decisions share. An agent must be ticked by one
// goroutine at a time.
type Agent struct {
	ID string

	current      StateID
	ticksInState int
	memory       map[string]any
}

// NewAgent creates an agent in the given state. Most callers want
// Machine.NewAgent instead.
func NewAgent(id string, state StateID) *Agent {
	return &Agent{
		ID:      id,
		current: state,
		memory:  make(map[string]any),
	}
}

// State returns the agent's current state
func (a *Agent) State() StateID {
	return a.current
}

// TicksInState returns how many ticks ran since the last state change
func (a *Agent) TicksInState() int {
	return a.ticksInState
}

// Set stores a value in the agent's memory
func (a *Agent) Set(key string, value any) {
	a.memory[key] = value
}

// Get returns a value from memory
func (a *Agent) Get(key string) (any, bool) {
	v, ok := a.memory[key]
	return v, ok
}

// Delete removes a value from memory
func (a *Agent) Delete(key string) {
	delete(a.memory, key)
}

// String returns a string value from memory
func (a *Agent) String(key string) (string, bool) {
	v, ok := a.memory[key].(string)
	return v, ok
}

// Float returns a numeric value from memory as float64
func (a *Agent) Float(key string) (float64, bool) {
	switch v := a.memory[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// Bool returns a boolean from memory, false when unset
func (a *Agent) Bool(key string) bool {
	v, _ := a.memory[key].(bool)
	return v
}

// Duration returns a duration from memory
func (a *Agent) Duration(key string) (time.Duration, bool) {
	v, ok := a.memory[key].(time.Duration)
	return v, ok
}

func (a *Agent) moveTo(id StateID) {
	a.current = id
	a.ticksInState = 0
}
