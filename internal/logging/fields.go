package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// RunID adds a run ID field.
func RunID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("run_id", id)
	}
}

// Position adds a grid position field.
func Position(p entities.GridPosition) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("position", p.String())
	}
}

// RoomType adds a room type field.
func RoomType(t entities.RoomType) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("room_type", string(t))
	}
}

// Attempt adds a generation attempt number.
func Attempt(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("attempt", n)
	}
}

// Seed adds a generator seed.
func Seed(seed int64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("seed", seed)
	}
}

// Agent adds an FSM agent ID.
func Agent(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("agent", id)
	}
}

// State adds an FSM or lifecycle state.
func State(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("state", name)
	}
}

// Transition adds from/to state fields.
func Transition(from, to string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("from_state", from).Str("to_state", to)
	}
}

// Duration adds a duration in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// Err adds an error field.
func Err(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Err(err)
	}
}
