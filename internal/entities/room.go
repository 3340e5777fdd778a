// Package entities provides core data structures for rpg-dungeon.
package entities

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RoomType identifies what a room is used for
type RoomType string

// Room types
const (
	RoomTypeStart       RoomType = "start"
	RoomTypeBoss        RoomType = "boss"
	RoomTypeMonster     RoomType = "monster"
	RoomTypeFireCamp    RoomType = "fire_camp"
	RoomTypeTreasure    RoomType = "treasure"
	RoomTypeItem        RoomType = "item"
	RoomTypePrepareBoss RoomType = "prepare_boss"
)

// QuotaRoomTypes are the room types governed by min/max quotas, in the order
// the generator samples and fixes them up.
var QuotaRoomTypes = []RoomType{
	RoomTypeMonster,
	RoomTypeFireCamp,
	RoomTypeTreasure,
	RoomTypeItem,
}

// IsQuotaType reports whether t is governed by a quota
func (t RoomType) IsQuotaType() bool {
	for _, q := range QuotaRoomTypes {
		if q == t {
			return true
		}
	}
	return false
}

// Valid reports whether t is a known room type
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeStart, RoomTypeBoss, RoomTypePrepareBoss:
		return true
	}
	return t.IsQuotaType()
}

// Direction is one of the four grid directions a door can face
type Direction string

// Directions
const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Directions lists every direction in a fixed order
var Directions = []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

// Opposite returns the direction facing the other way
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	default:
		return d
	}
}

// Offset returns the grid step for the direction. Up is +Y.
func (d Direction) Offset() GridPosition {
	switch d {
	case DirectionUp:
		return GridPosition{X: 0, Y: 1}
	case DirectionDown:
		return GridPosition{X: 0, Y: -1}
	case DirectionLeft:
		return GridPosition{X: -1, Y: 0}
	case DirectionRight:
		return GridPosition{X: 1, Y: 0}
	default:
		return GridPosition{}
	}
}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool {
	return d.Offset() != GridPosition{}
}

// GridPosition is an integer cell on the dungeon grid
type GridPosition struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Origin is where the start room is always placed
var Origin = GridPosition{}

// Neighbor returns the adjacent position in the given direction
func (p GridPosition) Neighbor(d Direction) GridPosition {
	o := d.Offset()
	return GridPosition{X: p.X + o.X, Y: p.Y + o.Y}
}

// Distance returns the Euclidean distance between two positions
func (p GridPosition) Distance(other GridPosition) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// DirectionTo returns the direction from p to an adjacent position
func (p GridPosition) DirectionTo(other GridPosition) (Direction, bool) {
	for _, d := range Directions {
		if p.Neighbor(d) == other {
			return d, true
		}
	}
	return "", false
}

// String renders the position as "x,y"
func (p GridPosition) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// MarshalText implements encoding.TextMarshaler
func (p GridPosition) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *GridPosition) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), ",")
	if len(parts) != 2 {
		return fmt.Errorf("invalid grid position %q", string(text))
	}

	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("invalid grid position %q: %w", string(text), err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fmt.Errorf("invalid grid position %q: %w", string(text), err)
	}

	p.X, p.Y = x, y
	return nil
}

// Doors records which sides of a room have an edge to a neighbor
type Doors struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// Has reports whether the door in direction d exists
func (d Doors) Has(dir Direction) bool {
	switch dir {
	case DirectionUp:
		return d.Up
	case DirectionDown:
		return d.Down
	case DirectionLeft:
		return d.Left
	case DirectionRight:
		return d.Right
	default:
		return false
	}
}

// Count returns the number of doors
func (d Doors) Count() int {
	n := 0
	for _, dir := range Directions {
		if d.Has(dir) {
			n++
		}
	}
	return n
}

func (d *Doors) open(dir Direction) {
	switch dir {
	case DirectionUp:
		d.Up = true
	case DirectionDown:
		d.Down = true
	case DirectionLeft:
		d.Left = true
	case DirectionRight:
		d.Right = true
	}
}

// Room is a single cell of the dungeon graph
type Room struct {
	Position GridPosition `json:"position"`
	Type     RoomType     `json:"type"`
	Doors    Doors        `json:"doors"`
	Variant  int          `json:"variant"`
}

// GetID returns a stable identifier derived from the room position
func (r *Room) GetID() string {
	return fmt.Sprintf("room_%d_%d", r.Position.X, r.Position.Y)
}

// GetType returns the room type for the core.Entity contract
func (r *Room) GetType() string {
	return string(r.Type)
}

// Door is an exit from a room
type Door struct {
	Direction Direction    `json:"direction"`
	Target    GridPosition `json:"target"`
}
