package ai

import (
	"math"
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine/fsm"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

// targetPositions returns the agent and target positions when both exist
func targetPositions(w World, agent *fsm.Agent) (self, target entities.Vec, ok bool) {
	id, ok := agent.String(TargetKey)
	if !ok {
		return entities.Vec{}, entities.Vec{}, false
	}
	self, ok = w.Position(agent.ID)
	if !ok {
		return entities.Vec{}, entities.Vec{}, false
	}
	target, ok = w.Position(id)
	if !ok {
		return entities.Vec{}, entities.Vec{}, false
	}
	return self, target, true
}

// countdown subtracts the tick delta from a cooldown in memory and reports
// whether it has run out
func countdown(agent *fsm.Agent, key string, delta time.Duration) bool {
	left, _ := agent.Duration(key)
	if left <= 0 {
		return true
	}
	left -= delta
	if left < 0 {
		left = 0
	}
	agent.Set(key, left)
	return left == 0
}

// DetectTarget looks for a hostile within Radius, setting or clearing the target
type DetectTarget struct {
	World  World
	Radius float64
}

// Act implements fsm.Action
func (d *DetectTarget) Act(agent *fsm.Agent) {
	self, ok := d.World.Position(agent.ID)
	if !ok {
		agent.Delete(TargetKey)
		return
	}
	if id, found := d.World.FindTarget(self, d.Radius); found {
		agent.Set(TargetKey, id)
		return
	}
	agent.Delete(TargetKey)
}

// MoveToward walks the agent toward its target
type MoveToward struct {
	World World
	Speed float64
}

// Act implements fsm.Action
func (m *MoveToward) Act(agent *fsm.Agent) {
	_, target, ok := targetPositions(m.World, agent)
	if !ok {
		return
	}
	m.World.Move(agent.ID, target, m.Speed)
}

// Attack hits the target when it is within Range, then waits Cooldown.
// Ranged attacks fire a projectile toward the target instead of applying
// damage directly.
type Attack struct {
	World    World
	Range    float64
	Damage   float64
	Cooldown time.Duration
	Ranged   bool
	// Key names the cooldown slot in agent memory
	Key string
}

func (a *Attack) key() string {
	if a.Key == "" {
		return "attack.cooldown"
	}
	return a.Key
}

// Act implements fsm.Action
func (a *Attack) Act(agent *fsm.Agent) {
	if !countdown(agent, a.key(), a.World.Delta()) {
		return
	}

	self, target, ok := targetPositions(a.World, agent)
	if !ok || self.DistanceTo(target) > a.Range {
		return
	}

	if a.Ranged {
		a.World.Fire(self, target.Sub(self).Normalize(), a.Damage)
	} else {
		id, _ := agent.String(TargetKey)
		a.World.Damage(id, a.Damage)
	}
	agent.Set(a.key(), a.Cooldown)
}

// Pattern is one boss attack
type Pattern struct {
	Name     string  `yaml:"name" json:"name"`
	MinRange float64 `yaml:"min_range" json:"min_range"`
	// MaxRange of zero means unbounded
	MaxRange float64 `yaml:"max_range" json:"max_range"`
	// HealthThreshold enables the pattern once health drops to it; zero means always
	HealthThreshold float64       `yaml:"health_threshold" json:"health_threshold"`
	Cooldown        time.Duration `yaml:"cooldown" json:"cooldown"`
	Damage          float64       `yaml:"damage" json:"damage"`
	Projectiles     int           `yaml:"projectiles" json:"projectiles"`
}

func (p Pattern) inRange(distance float64) bool {
	if distance < p.MinRange {
		return false
	}
	return p.MaxRange <= 0 || distance <= p.MaxRange
}

func (p Pattern) enabledAt(health float64) bool {
	return p.HealthThreshold <= 0 || health <= p.HealthThreshold
}

// PatternAttack picks a random eligible pattern and fires a ring of
// projectiles, the first aimed at the target
type PatternAttack struct {
	World          World
	Random         Random
	Patterns       []Pattern
	GlobalCooldown time.Duration
}

const patternGlobalKey = "pattern.global"

func patternKey(name string) string {
	return "pattern." + name
}

// Eligible returns the patterns usable this tick without advancing cooldowns
func (p *PatternAttack) Eligible(agent *fsm.Agent) []Pattern {
	self, target, ok := targetPositions(p.World, agent)
	if !ok {
		return nil
	}
	distance := self.DistanceTo(target)
	health := p.World.Health(agent.ID)

	var eligible []Pattern
	for _, pattern := range p.Patterns {
		if left, _ := agent.Duration(patternKey(pattern.Name)); left > 0 {
			continue
		}
		if pattern.inRange(distance) && pattern.enabledAt(health) {
			eligible = append(eligible, pattern)
		}
	}
	return eligible
}

// Act implements fsm.Action
func (p *PatternAttack) Act(agent *fsm.Agent) {
	delta := p.World.Delta()
	for _, pattern := range p.Patterns {
		countdown(agent, patternKey(pattern.Name), delta)
	}
	if !countdown(agent, patternGlobalKey, delta) {
		return
	}

	eligible := p.Eligible(agent)
	if len(eligible) == 0 {
		return
	}
	chosen := eligible[p.Random.Intn(len(eligible))]

	self, target, _ := targetPositions(p.World, agent)
	aim := target.Sub(self).Normalize()
	n := chosen.Projectiles
	if n < 1 {
		n = 1
	}
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		p.World.Fire(self, aim.Rotate(step*float64(i)), chosen.Damage)
	}

	agent.Set(patternKey(chosen.Name), chosen.Cooldown)
	agent.Set(patternGlobalKey, p.GlobalCooldown)
}
