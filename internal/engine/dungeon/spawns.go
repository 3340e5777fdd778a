package dungeon

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// SpawnRule is one kind of monster a hostile room may hold
type SpawnRule struct {
	Kind string `yaml:"kind" json:"kind"`
	Min  int    `yaml:"min" json:"min"`
	Max  int    `yaml:"max" json:"max"`
}

// ValidateSpawnRules checks every rule and rejects duplicate kinds
func ValidateSpawnRules(rules []SpawnRule) error {
	vb := errors.NewValidationBuilder()
	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		field := fmt.Sprintf("spawns[%d]", i)
		if r.Kind == "" {
			vb.Field(field, "kind is required")
		} else if seen[r.Kind] {
			vb.Fieldf(field, "duplicate kind %q", r.Kind)
		}
		seen[r.Kind] = true
		if r.Min < 1 {
			vb.Field(field, "min must be at least 1")
		}
		if r.Max < r.Min {
			vb.Fieldf(field, "max %d is below min %d", r.Max, r.Min)
		}
	}
	return vb.Build()
}

// PlanSpawns picks monsters for every room that requires clearing. Each room
// gets between one and len(rules) distinct kinds, each with a count in
// [Min, Max].
func PlanSpawns(d *entities.Dungeon, rules []SpawnRule, roller dice.Roller) ([]entities.RoomSpawns, error) {
	if d == nil {
		return nil, errors.InvalidArgument("dungeon is required")
	}
	if roller == nil {
		return nil, errors.InvalidArgument("dice roller is required")
	}
	if len(rules) == 0 {
		return nil, nil
	}
	if err := ValidateSpawnRules(rules); err != nil {
		return nil, err
	}

	var plan []entities.RoomSpawns
	for _, room := range d.Rooms() {
		if !RequiresClearing(room.Type) {
			continue
		}

		spawns, err := planRoom(rules, roller)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to plan spawns for room %s", room.Position)
		}
		plan = append(plan, entities.RoomSpawns{Position: room.Position, Spawns: spawns})
	}
	return plan, nil
}

func planRoom(rules []SpawnRule, roller dice.Roller) ([]entities.Spawn, error) {
	pool := make([]SpawnRule, len(rules))
	copy(pool, rules)

	kinds, err := rollBetween(roller, 1, len(pool))
	if err != nil {
		return nil, err
	}

	spawns := make([]entities.Spawn, 0, kinds)
	for i := 0; i < kinds; i++ {
		j, err := rollBetween(roller, i, len(pool)-1)
		if err != nil {
			return nil, err
		}
		pool[i], pool[j] = pool[j], pool[i]

		count, err := rollBetween(roller, pool[i].Min, pool[i].Max)
		if err != nil {
			return nil, err
		}
		spawns = append(spawns, entities.Spawn{Kind: pool[i].Kind, Count: count})
	}
	return spawns, nil
}

// rollBetween returns a uniform value in [lo, hi] using a single die
func rollBetween(roller dice.Roller, lo, hi int) (int, error) {
	if hi <= lo {
		return lo, nil
	}
	v, err := roller.Roll(hi - lo + 1)
	if err != nil {
		return 0, errors.Wrap(err, "dice roll failed")
	}
	return lo + v - 1, nil
}
