package entities

import (
	"encoding/json"
	"fmt"
)

// Dungeon is the room graph: rooms keyed by grid position plus the order
// they were placed in. Every ordered position has a room and vice versa.
type Dungeon struct {
	rooms map[GridPosition]*Room
	order []GridPosition
}

// NewDungeon creates an empty dungeon
func NewDungeon() *Dungeon {
	return &Dungeon{
		rooms: make(map[GridPosition]*Room),
	}
}

// AddRoom places a room with no doors. Positions are unique.
func (d *Dungeon) AddRoom(pos GridPosition, roomType RoomType) (*Room, error) {
	if _, exists := d.rooms[pos]; exists {
		return nil, fmt.Errorf("position %s already occupied", pos)
	}

	room := &Room{Position: pos, Type: roomType}
	d.rooms[pos] = room
	d.order = append(d.order, pos)
	return room, nil
}

// Room returns the room at pos
func (d *Dungeon) Room(pos GridPosition) (*Room, bool) {
	room, ok := d.rooms[pos]
	return room, ok
}

// Contains reports whether pos is occupied
func (d *Dungeon) Contains(pos GridPosition) bool {
	_, ok := d.rooms[pos]
	return ok
}

// Len returns the number of rooms
func (d *Dungeon) Len() int {
	return len(d.order)
}

// Positions returns the positions in insertion order
func (d *Dungeon) Positions() []GridPosition {
	out := make([]GridPosition, len(d.order))
	copy(out, d.order)
	return out
}

// Rooms returns the rooms in insertion order
func (d *Dungeon) Rooms() []*Room {
	out := make([]*Room, 0, len(d.order))
	for _, pos := range d.order {
		out = append(out, d.rooms[pos])
	}
	return out
}

// Connect adds a door pair between two adjacent rooms
func (d *Dungeon) Connect(a, b GridPosition) error {
	roomA, ok := d.rooms[a]
	if !ok {
		return fmt.Errorf("no room at %s", a)
	}
	roomB, ok := d.rooms[b]
	if !ok {
		return fmt.Errorf("no room at %s", b)
	}

	dir, adjacent := a.DirectionTo(b)
	if !adjacent {
		return fmt.Errorf("rooms %s and %s are not adjacent", a, b)
	}

	roomA.Doors.open(dir)
	roomB.Doors.open(dir.Opposite())
	return nil
}

// Connected reports whether a door pair joins a and b
func (d *Dungeon) Connected(a, b GridPosition) bool {
	roomA, ok := d.rooms[a]
	if !ok {
		return false
	}
	dir, adjacent := a.DirectionTo(b)
	if !adjacent {
		return false
	}
	return roomA.Doors.Has(dir) && d.Contains(b)
}

// SetType changes the type of the room at pos
func (d *Dungeon) SetType(pos GridPosition, roomType RoomType) error {
	room, ok := d.rooms[pos]
	if !ok {
		return fmt.Errorf("no room at %s", pos)
	}
	room.Type = roomType
	return nil
}

// CountOf returns how many rooms have the given type
func (d *Dungeon) CountOf(roomType RoomType) int {
	n := 0
	for _, room := range d.rooms {
		if room.Type == roomType {
			n++
		}
	}
	return n
}

// FirstOf returns the first room of the given type in insertion order
func (d *Dungeon) FirstOf(roomType RoomType) (*Room, bool) {
	for _, pos := range d.order {
		if room := d.rooms[pos]; room.Type == roomType {
			return room, true
		}
	}
	return nil, false
}

// Farthest returns the position with the greatest distance from the origin.
// Ties go to the earliest placed room.
func (d *Dungeon) Farthest() (GridPosition, bool) {
	if len(d.order) == 0 {
		return GridPosition{}, false
	}

	best := d.order[0]
	bestDist := best.Distance(Origin)
	for _, pos := range d.order[1:] {
		if dist := pos.Distance(Origin); dist > bestDist {
			best, bestDist = pos, dist
		}
	}
	return best, true
}

// Doors lists the exits of the room at pos in direction order
func (d *Dungeon) Doors(pos GridPosition) []Door {
	room, ok := d.rooms[pos]
	if !ok {
		return nil
	}

	var doors []Door
	for _, dir := range Directions {
		if room.Doors.Has(dir) {
			doors = append(doors, Door{Direction: dir, Target: pos.Neighbor(dir)})
		}
	}
	return doors
}

// Reachable returns every position reachable from start through doors
func (d *Dungeon) Reachable(start GridPosition) map[GridPosition]bool {
	seen := make(map[GridPosition]bool)
	if !d.Contains(start) {
		return seen
	}

	queue := []GridPosition{start}
	seen[start] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, door := range d.Doors(cur) {
			if seen[door.Target] || !d.Contains(door.Target) {
				continue
			}
			seen[door.Target] = true
			queue = append(queue, door.Target)
		}
	}
	return seen
}

// Clone returns a deep copy
func (d *Dungeon) Clone() *Dungeon {
	out := NewDungeon()
	for _, pos := range d.order {
		room := *d.rooms[pos]
		out.rooms[pos] = &room
		out.order = append(out.order, pos)
	}
	return out
}

type dungeonJSON struct {
	Rooms []*Room `json:"rooms"`
}

// MarshalJSON writes the rooms in insertion order
func (d *Dungeon) MarshalJSON() ([]byte, error) {
	return json.Marshal(dungeonJSON{Rooms: d.Rooms()})
}

// UnmarshalJSON rebuilds the graph from its room list
func (d *Dungeon) UnmarshalJSON(data []byte) error {
	var raw dungeonJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.rooms = make(map[GridPosition]*Room, len(raw.Rooms))
	d.order = make([]GridPosition, 0, len(raw.Rooms))
	for _, room := range raw.Rooms {
		if room == nil {
			continue
		}
		if _, exists := d.rooms[room.Position]; exists {
			return fmt.Errorf("duplicate room at %s", room.Position)
		}
		d.rooms[room.Position] = room
		d.order = append(d.order, room.Position)
	}
	return nil
}
