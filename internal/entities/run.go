package entities

import (
	"fmt"
	"time"
)

// RunStatus is the lifecycle state of a dungeon run
type RunStatus string

// Run statuses
const (
	RunStatusExploring RunStatus = "exploring"
	RunStatusBossFight RunStatus = "boss_fight"
	RunStatusCleared   RunStatus = "cleared"
	RunStatusFailed    RunStatus = "failed"
	RunStatusAbandoned RunStatus = "abandoned"
)

// Active reports whether the run can still progress
func (s RunStatus) Active() bool {
	return s == RunStatusExploring || s == RunStatusBossFight
}

// Valid reports whether s is a known status
func (s RunStatus) Valid() bool {
	switch s {
	case RunStatusExploring, RunStatusBossFight, RunStatusCleared, RunStatusFailed, RunStatusAbandoned:
		return true
	}
	return false
}

// Spawn is a number of monsters of one kind
type Spawn struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// RoomSpawns is the spawn plan for one room
type RoomSpawns struct {
	Position GridPosition `json:"position"`
	Spawns   []Spawn      `json:"spawns"`
}

// Total returns the number of monsters planned for the room
func (r RoomSpawns) Total() int {
	n := 0
	for _, s := range r.Spawns {
		n += s.Count
	}
	return n
}

// Run is one player's pass through a generated dungeon
type Run struct {
	ID        string         `json:"id"`
	PlayerID  string         `json:"player_id"`
	Seed      int64          `json:"seed"`
	Dungeon   *Dungeon       `json:"dungeon"`
	Current   GridPosition   `json:"current"`
	Cleared   []GridPosition `json:"cleared"`
	Spawns    []RoomSpawns   `json:"spawns,omitempty"`
	Status    RunStatus      `json:"status"`
	StartedAt time.Time      `json:"started_at"`
	EndedAt   time.Time      `json:"ended_at,omitempty"`
}

// GetID returns the run ID
func (r *Run) GetID() string {
	return r.ID
}

// GetType returns the entity type for the core.Entity contract
func (r *Run) GetType() string {
	return "dungeon_run"
}

// IsCleared reports whether the room at pos has been cleared
func (r *Run) IsCleared(pos GridPosition) bool {
	for _, c := range r.Cleared {
		if c == pos {
			return true
		}
	}
	return false
}

// MarkCleared records pos as cleared, returning false if it already was
func (r *Run) MarkCleared(pos GridPosition) bool {
	if r.IsCleared(pos) {
		return false
	}
	r.Cleared = append(r.Cleared, pos)
	return true
}

// SpawnsAt returns the spawn plan for pos
func (r *Run) SpawnsAt(pos GridPosition) (RoomSpawns, bool) {
	for _, s := range r.Spawns {
		if s.Position == pos {
			return s, true
		}
	}
	return RoomSpawns{}, false
}

// Elapsed returns how long the run has lasted. Finished runs are frozen at EndedAt.
func (r *Run) Elapsed(now time.Time) time.Duration {
	end := now
	if !r.EndedAt.IsZero() {
		end = r.EndedAt
	}
	if end.Before(r.StartedAt) {
		return 0
	}
	return end.Sub(r.StartedAt)
}

// FormatElapsed renders a duration as MM:SS
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
