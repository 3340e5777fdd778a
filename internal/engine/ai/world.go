// Package ai provides the stock enemy actions and decisions for fsm tables.
// Units keep their per-agent state in agent memory, so one Machine can drive
// every enemy of a kind.
package ai

//go:generate mockgen -destination=mock/mock_world.go -package=aimock github.com/KirkDiggler/rpg-dungeon/internal/engine/ai World

import (
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

// TargetKey is the agent memory key holding the current target id
const TargetKey = "target"

// World is the game state the units read and act on. Every call is
// synchronous against already-resident state.
type World interface {
	// Position returns where an entity is
	Position(id string) (entities.Vec, bool)
	// FindTarget returns the nearest hostile within radius of center
	FindTarget(center entities.Vec, radius float64) (string, bool)
	// Move steps an entity toward a point
	Move(id string, toward entities.Vec, speed float64)
	// Damage applies melee damage
	Damage(id string, amount float64)
	// Fire launches a projectile from a point in a direction
	Fire(from, dir entities.Vec, damage float64)
	// Health returns the entity's health as a fraction of its maximum
	Health(id string) float64
	// Delta is the time covered by the current tick
	Delta() time.Duration
}

// Random picks among eligible attack patterns. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}
