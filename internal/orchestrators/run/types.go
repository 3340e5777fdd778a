package run

import (
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

// GenerateDungeonInput defines the request for a standalone dungeon
type GenerateDungeonInput struct {
	// Seed makes the layout reproducible; zero picks one
	Seed int64
	// Config overrides the service's dungeon settings when set
	Config *dungeon.Config
}

// GenerateDungeonOutput defines the response for a standalone dungeon
type GenerateDungeonOutput struct {
	Dungeon  *entities.Dungeon
	Seed     int64
	Attempts int
}

// StartRunInput defines the request for starting a run
type StartRunInput struct {
	PlayerID string
	Seed     int64
}

// StartRunOutput defines the response for starting a run
type StartRunOutput struct {
	Run        *entities.Run
	EntryPoint entities.Vec
}

// GetRunInput defines the request for loading a run
type GetRunInput struct {
	RunID string
}

// DoorState is an exit of the current room and whether it can be used now
type DoorState struct {
	Direction entities.Direction
	Target    entities.GridPosition
	Locked    bool
	Reason    string
}

// GetRunOutput defines the response for loading a run
type GetRunOutput struct {
	Run     *entities.Run
	Doors   []DoorState
	Elapsed time.Duration
}

// TraverseInput defines the request for walking through a door
type TraverseInput struct {
	RunID     string
	Direction entities.Direction
}

// TraverseOutput defines where the player ended up
type TraverseOutput struct {
	Run        *entities.Run
	Room       *entities.Room
	EntryPoint entities.Vec
	Spawns     []entities.Spawn
}

// ClearRoomInput defines the request for clearing the current room
type ClearRoomInput struct {
	RunID string
}

// ClearRoomOutput defines the response for clearing the current room
type ClearRoomOutput struct {
	Run *entities.Run
	// AlreadyCleared is set when the room had been cleared before
	AlreadyCleared bool
}

// FailRunInput defines the request for ending a run early
type FailRunInput struct {
	RunID string
	// Abandon ends the run as abandoned instead of failed
	Abandon bool
}

// FailRunOutput defines the response for ending a run early
type FailRunOutput struct {
	Run *entities.Run
}
