package run

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/logging"
)

// Event types published on the bus
const (
	EventRunStarted  = "dungeon.run.started"
	EventRoomEntered = "dungeon.room.entered"
	EventRoomCleared = "dungeon.room.cleared"
	EventRunEnded    = "dungeon.run.ended"
)

var (
	_ core.Entity = (*entities.Run)(nil)
	_ core.Entity = (*entities.Room)(nil)
)

// publish sends an event with the run as source and the room as target.
// Bus failures are logged; the run state is already saved by then.
func (o *orchestrator) publish(ctx context.Context, eventType string, run *entities.Run, room *entities.Room) {
	var target core.Entity
	if room != nil {
		target = room
	}

	if err := o.eventBus.Publish(ctx, events.NewGameEvent(eventType, run, target)); err != nil {
		logging.Warn().
			Add(logging.RunID(run.ID)).
			Str("event", eventType).
			Add(logging.Err(err)).
			Msg("failed to publish run event")
	}
}
