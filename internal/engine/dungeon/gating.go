package dungeon

import (
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// AlwaysUnlocked reports whether doors out of a room of type t never lock
func AlwaysUnlocked(t entities.RoomType) bool {
	switch t {
	case entities.RoomTypeFireCamp,
		entities.RoomTypeItem,
		entities.RoomTypeStart,
		entities.RoomTypeTreasure,
		entities.RoomTypePrepareBoss:
		return true
	default:
		return false
	}
}

// RequiresClearing reports whether a room of type t holds hostiles that must
// be defeated before its doors open
func RequiresClearing(t entities.RoomType) bool {
	return !AlwaysUnlocked(t)
}

// DoorsUnlocked reports whether the doors of room are open given its clear state
func DoorsUnlocked(room *entities.Room, cleared bool) bool {
	return cleared || AlwaysUnlocked(room.Type)
}

// CanTraverse checks the door in direction dir of the room at from and
// returns the position it leads to. The boss room can only be entered from
// the prepare room, whatever the clear state.
func CanTraverse(d *entities.Dungeon, from entities.GridPosition, dir entities.Direction, cleared bool) (entities.GridPosition, error) {
	if d == nil {
		return entities.GridPosition{}, errors.InvalidArgument("dungeon is required")
	}
	if !dir.Valid() {
		return entities.GridPosition{}, errors.InvalidArgumentf("unknown direction %q", dir)
	}

	source, ok := d.Room(from)
	if !ok {
		return entities.GridPosition{}, errors.NotFoundf("no room at %s", from)
	}
	if !source.Doors.Has(dir) {
		return entities.GridPosition{}, errors.FailedPreconditionf("room %s has no %s door", from, dir).
			WithMeta(errors.MetaPosition, from.String()).
			WithMeta(errors.MetaDirection, string(dir))
	}

	targetPos := from.Neighbor(dir)
	target, ok := d.Room(targetPos)
	if !ok {
		return entities.GridPosition{}, errors.NotFoundf("door %s of room %s leads nowhere", dir, from)
	}

	if target.Type == entities.RoomTypeBoss && source.Type != entities.RoomTypePrepareBoss {
		return entities.GridPosition{}, errors.PermissionDenied("the boss room can only be entered from the prepare room").
			WithMeta(errors.MetaPosition, from.String())
	}

	if !DoorsUnlocked(source, cleared) {
		return entities.GridPosition{}, errors.FailedPreconditionf("doors of %s room %s are locked until it is cleared",
			source.Type, from).
			WithMeta(errors.MetaPosition, from.String()).
			WithMeta(errors.MetaRoomType, string(source.Type))
	}

	return targetPos, nil
}
