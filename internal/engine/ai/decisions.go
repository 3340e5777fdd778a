package ai

import (
	"github.com/KirkDiggler/rpg-dungeon/internal/engine/fsm"
)

// HasTarget is true while the agent remembers a target
type HasTarget struct{}

// Decide implements fsm.Decision
func (HasTarget) Decide(agent *fsm.Agent) bool {
	_, ok := agent.String(TargetKey)
	return ok
}

// TargetInRange is true when the target is within Range
type TargetInRange struct {
	World World
	Range float64
}

// Decide implements fsm.Decision
func (t *TargetInRange) Decide(agent *fsm.Agent) bool {
	self, target, ok := targetPositions(t.World, agent)
	return ok && self.DistanceTo(target) <= t.Range
}

// HealthBelow is true when the agent's health fraction is under Fraction
type HealthBelow struct {
	World    World
	Fraction float64
}

// Decide implements fsm.Decision
func (h *HealthBelow) Decide(agent *fsm.Agent) bool {
	return h.World.Health(agent.ID) < h.Fraction
}

// TimeInState is true once the agent has spent Ticks ticks in its state
type TimeInState struct {
	Ticks int
}

// Decide implements fsm.Decision
func (t TimeInState) Decide(agent *fsm.Agent) bool {
	return agent.TicksInState() >= t.Ticks
}
