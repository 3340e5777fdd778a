package dungeon

import (
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// Layout maps grid cells into world space
type Layout struct {
	RoomWidth  float64 `yaml:"room_width" json:"room_width"`
	RoomHeight float64 `yaml:"room_height" json:"room_height"`
	// EntryOffset is how far inside the wall an actor lands after a door
	EntryOffset float64 `yaml:"entry_offset" json:"entry_offset"`
}

// DefaultLayout returns the stock room size and entry offset
func DefaultLayout() Layout {
	return Layout{
		RoomWidth:   50,
		RoomHeight:  48,
		EntryOffset: 15,
	}
}

// Validate checks the layout dimensions
func (l Layout) Validate() error {
	vb := errors.NewValidationBuilder()
	if l.RoomWidth <= 0 {
		vb.Field("room_width", "must be positive")
	}
	if l.RoomHeight <= 0 {
		vb.Field("room_height", "must be positive")
	}
	if l.EntryOffset < 0 {
		vb.Field("entry_offset", "must not be negative")
	}
	if l.EntryOffset > l.RoomWidth/2 || l.EntryOffset > l.RoomHeight/2 {
		vb.Field("entry_offset", "must fit inside half a room")
	}
	return vb.Build()
}

// WorldPosition returns the world-space center of the room at pos
func (l Layout) WorldPosition(pos entities.GridPosition) entities.Vec {
	return entities.Vec{
		X: float64(pos.X) * l.RoomWidth,
		Y: float64(pos.Y) * l.RoomHeight,
	}
}

// EntryPoint returns where an actor lands in the room at target after
// walking through a door facing dir. It sits just inside the wall opposite
// the direction of travel.
func (l Layout) EntryPoint(target entities.GridPosition, dir entities.Direction) entities.Vec {
	center := l.WorldPosition(target)
	halfW, halfH := l.RoomWidth/2, l.RoomHeight/2

	var offset entities.Vec
	switch dir {
	case entities.DirectionUp:
		offset = entities.Vec{Y: -halfH + l.EntryOffset}
	case entities.DirectionDown:
		offset = entities.Vec{Y: halfH - l.EntryOffset}
	case entities.DirectionLeft:
		offset = entities.Vec{X: halfW - l.EntryOffset}
	case entities.DirectionRight:
		offset = entities.Vec{X: -halfW + l.EntryOffset}
	}
	return center.Add(offset)
}
