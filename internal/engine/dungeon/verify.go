package dungeon

import (
	"fmt"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// Verify checks a dungeon against cfg: bounds, symmetric doors, connectivity
// from the start room, quotas, room count and the boss gate shape.
func Verify(d *entities.Dungeon, cfg *Config) error {
	if d == nil {
		return errors.InvalidArgument("dungeon is required")
	}
	if cfg == nil {
		return errors.InvalidArgument("dungeon config is required")
	}

	vb := errors.NewValidationBuilder()

	start, ok := d.Room(entities.Origin)
	if !ok || start.Type != entities.RoomTypeStart {
		vb.Field("start", "start room must sit at the origin")
	}
	if n := d.CountOf(entities.RoomTypeStart); n != 1 {
		vb.Fieldf("start", "expected exactly one start room, found %d", n)
	}

	for _, room := range d.Rooms() {
		if !cfg.InBounds(room.Position) {
			vb.Fieldf("rooms", "room %s is outside radius %d", room.Position, cfg.Radius)
		}
		for _, dir := range entities.Directions {
			if !room.Doors.Has(dir) {
				continue
			}
			neighbor, ok := d.Room(room.Position.Neighbor(dir))
			if !ok {
				vb.Fieldf("doors", "room %s has a %s door to nothing", room.Position, dir)
				continue
			}
			if !neighbor.Doors.Has(dir.Opposite()) {
				vb.Fieldf("doors", "door %s of room %s has no matching door back", dir, room.Position)
			}
		}
	}

	if reachable := d.Reachable(entities.Origin); len(reachable) != d.Len() {
		vb.Fieldf("rooms", "only %d of %d rooms are reachable from the start", len(reachable), d.Len())
	}

	if d.Len() < cfg.MinRooms || d.Len() > cfg.MaxRooms {
		vb.Fieldf("rooms", "room count %d is outside [%d, %d]", d.Len(), cfg.MinRooms, cfg.MaxRooms)
	}
	for _, t := range entities.QuotaRoomTypes {
		q := cfg.Quota(t)
		if n := d.CountOf(t); n < q.Min || n > q.Max {
			vb.Fieldf(fmt.Sprintf("quotas.%s", t), "count %d is outside [%d, %d]", n, q.Min, q.Max)
		}
	}

	verifyBossGate(d, vb)

	return vb.Build()
}

func verifyBossGate(d *entities.Dungeon, vb *errors.ValidationBuilder) {
	if n := d.CountOf(entities.RoomTypeBoss); n != 1 {
		vb.Fieldf("boss", "expected exactly one boss room, found %d", n)
		return
	}
	if n := d.CountOf(entities.RoomTypePrepareBoss); n != 1 {
		vb.Fieldf("boss", "expected exactly one prepare room, found %d", n)
		return
	}

	boss, _ := d.FirstOf(entities.RoomTypeBoss)
	doors := d.Doors(boss.Position)
	if len(doors) != 1 {
		vb.Fieldf("boss", "boss room must have exactly one door, has %d", len(doors))
		return
	}
	if prepare, ok := d.Room(doors[0].Target); !ok || prepare.Type != entities.RoomTypePrepareBoss {
		vb.Field("boss", "boss room must connect only to the prepare room")
	}
}
