package main

import (
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine/ai"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

const (
	enemyID  = "enemy"
	playerID = "player"

	playerMaxHealth = 100
)

// arena is a minimal ai.World: one enemy and one stationary player on an
// open plane.
type arena struct {
	positions map[string]entities.Vec
	health    map[string]float64
	delta     time.Duration
	shots     int
	hits      int
}

var _ ai.World = (*arena)(nil)

func newArena(distance, enemyHealth float64, delta time.Duration) *arena {
	return &arena{
		positions: map[string]entities.Vec{
			enemyID:  {},
			playerID: {X: distance},
		},
		health: map[string]float64{
			enemyID:  enemyHealth,
			playerID: 1,
		},
		delta: delta,
	}
}

func (a *arena) Position(id string) (entities.Vec, bool) {
	p, ok := a.positions[id]
	return p, ok
}

func (a *arena) FindTarget(center entities.Vec, radius float64) (string, bool) {
	if a.health[playerID] <= 0 {
		return "", false
	}
	if a.positions[playerID].Sub(center).Len() > radius {
		return "", false
	}
	return playerID, true
}

func (a *arena) Move(id string, toward entities.Vec, speed float64) {
	from, ok := a.positions[id]
	if !ok {
		return
	}
	offset := toward.Sub(from)
	step := speed * a.delta.Seconds()
	if dist := offset.Len(); dist <= step || dist == 0 {
		a.positions[id] = toward
		return
	}
	a.positions[id] = from.Add(offset.Normalize().Scale(step))
}

func (a *arena) Damage(id string, amount float64) {
	a.hits++
	if id == playerID {
		a.health[id] -= amount / playerMaxHealth
	}
}

func (a *arena) Fire(_, _ entities.Vec, _ float64) {
	a.shots++
}

func (a *arena) Health(id string) float64 {
	return a.health[id]
}

func (a *arena) Delta() time.Duration {
	return a.delta
}
