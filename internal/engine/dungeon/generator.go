package dungeon

import (
	"context"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/logging"
)

// FailureReason says why a single generation attempt was discarded
type FailureReason string

// Attempt failure reasons
const (
	FailureTooFewRooms     FailureReason = "too_few_rooms"
	FailureQuotaUnmet      FailureReason = "quota_unmet"
	FailureBossUnplaceable FailureReason = "boss_unplaceable"
)

// GeneratorConfig holds the dependencies for a Generator
type GeneratorConfig struct {
	Random Random
}

// Validate ensures all required dependencies are provided
func (c *GeneratorConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Random == nil {
		vb.RequiredField("Random")
	}

	return vb.Build()
}

// Generator builds dungeons. It is not safe for concurrent use because it
// owns its random source.
type Generator struct {
	random Random
}

// NewGenerator creates a generator with the provided dependencies
func NewGenerator(cfg *GeneratorConfig) (*Generator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Generator{random: cfg.Random}, nil
}

// Result is a successfully generated dungeon with attempt bookkeeping
type Result struct {
	Dungeon  *entities.Dungeon
	Attempts int
	Failures map[FailureReason]int
}

// Generate validates cfg and then runs attempts until one produces a valid
// dungeon or MaxGenerationAttempts is reached. Invalid configs fail before any
// attempt; running out of attempts returns ResourceExhausted.
func (g *Generator) Generate(ctx context.Context, cfg *Config) (*Result, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("dungeon config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid dungeon config")
	}

	failures := make(map[FailureReason]int)
	var last FailureReason

	for attempt := 1; attempt <= cfg.MaxGenerationAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "dungeon generation canceled").
				WithMeta(errors.MetaAttempts, attempt-1)
		}

		b := newBuilder(cfg, g.random)
		if reason := b.run(); reason != "" {
			failures[reason]++
			last = reason
			logging.Debug().
				Add(logging.Attempt(attempt)).
				Str("reason", string(reason)).
				Int("rooms", b.dungeon.Len()).
				Msg("dungeon attempt discarded")
			continue
		}

		b.assignVariants()
		logging.Debug().
			Add(logging.Attempt(attempt)).
			Int("rooms", b.dungeon.Len()).
			Msg("dungeon generated")

		return &Result{
			Dungeon:  b.dungeon,
			Attempts: attempt,
			Failures: failures,
		}, nil
	}

	byReason := make(map[string]interface{}, len(failures))
	for reason, n := range failures {
		byReason[string(reason)] = n
	}

	logging.Warn().
		Int("attempts", cfg.MaxGenerationAttempts).
		Str("last_failure", string(last)).
		Msg("dungeon generation exhausted")

	return nil, errors.ResourceExhaustedf("dungeon generation failed after %d attempts", cfg.MaxGenerationAttempts).
		WithMeta(errors.MetaAttempts, cfg.MaxGenerationAttempts).
		WithMeta(errors.MetaLastFailure, string(last)).
		WithMeta(errors.MetaFailures, byReason)
}

// builder holds the state of one attempt. It is thrown away on failure.
type builder struct {
	cfg     *Config
	random  Random
	dungeon *entities.Dungeon
	counts  map[entities.RoomType]int
}

func newBuilder(cfg *Config, random Random) *builder {
	return &builder{
		cfg:     cfg,
		random:  random,
		dungeon: entities.NewDungeon(),
		counts:  make(map[entities.RoomType]int),
	}
}

// run executes one attempt and returns an empty reason on success
func (b *builder) run() FailureReason {
	if _, err := b.dungeon.AddRoom(entities.Origin, entities.RoomTypeStart); err != nil {
		return FailureTooFewRooms
	}

	// The total lands in [MinRooms, MaxRooms] once the boss gate is added,
	// so growth stops two rooms short of the drawn target.
	target := b.cfg.MinRooms + b.random.Intn(b.cfg.MaxRooms-b.cfg.MinRooms+1)
	b.grow(target - bossGateRooms)

	if b.dungeon.Len() < b.cfg.MinRooms-bossGateRooms {
		return FailureTooFewRooms
	}
	if !b.fixQuotas() {
		return FailureQuotaUnmet
	}
	if !b.placeBossGate() {
		return FailureBossUnplaceable
	}
	return ""
}

func (b *builder) grow(target int) {
	for i := 0; i < b.cfg.MaxGrowthAttempts && b.dungeon.Len() < target; i++ {
		positions := b.dungeon.Positions()
		source := positions[b.random.Intn(len(positions))]

		next, ok := b.freeNeighbor(source, entities.GridPosition{}, false)
		if !ok {
			continue
		}

		roomType := b.pickType()
		if roomType == entities.RoomTypeMonster && b.counts[roomType] >= b.cfg.Quota(roomType).Max {
			continue
		}

		if _, err := b.dungeon.AddRoom(next, roomType); err != nil {
			continue
		}
		// both rooms exist and are adjacent, so Connect cannot fail
		_ = b.dungeon.Connect(source, next)
		b.counts[roomType]++
	}
}

// freeNeighbor tries the four directions in shuffled order and returns the
// first in-bounds unoccupied cell, skipping exclude when hasExclude is set.
func (b *builder) freeNeighbor(from, exclude entities.GridPosition, hasExclude bool) (entities.GridPosition, bool) {
	for _, dir := range b.shuffledDirections() {
		pos := from.Neighbor(dir)
		if !b.cfg.InBounds(pos) || b.dungeon.Contains(pos) {
			continue
		}
		if hasExclude && pos == exclude {
			continue
		}
		return pos, true
	}
	return entities.GridPosition{}, false
}

func (b *builder) shuffledDirections() []entities.Direction {
	dirs := make([]entities.Direction, len(entities.Directions))
	copy(dirs, entities.Directions)
	b.random.Shuffle(len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})
	return dirs
}

// pickType samples a quota type by weight among the types still below their
// maximum. With nothing eligible it falls back to monster.
func (b *builder) pickType() entities.RoomType {
	var eligible []entities.RoomType
	total := 0.0
	for _, t := range entities.QuotaRoomTypes {
		q := b.cfg.Quota(t)
		if b.counts[t] >= q.Max || q.Weight <= 0 {
			continue
		}
		eligible = append(eligible, t)
		total += q.Weight
	}
	if len(eligible) == 0 {
		return entities.RoomTypeMonster
	}

	r := b.random.Float64() * total
	cumulative := 0.0
	for _, t := range eligible {
		cumulative += b.cfg.Quota(t).Weight
		if r < cumulative {
			return t
		}
	}
	return eligible[len(eligible)-1]
}

// fixQuotas converts surplus monster rooms into any type still under its
// minimum. Monster rooms themselves cannot be topped up this way.
func (b *builder) fixQuotas() bool {
	monsterMin := b.cfg.Quota(entities.RoomTypeMonster).Min
	if b.counts[entities.RoomTypeMonster] < monsterMin {
		return false
	}

	for _, t := range entities.QuotaRoomTypes {
		if t == entities.RoomTypeMonster {
			continue
		}
		for b.counts[t] < b.cfg.Quota(t).Min {
			if b.counts[entities.RoomTypeMonster] <= monsterMin {
				return false
			}
			room, ok := b.dungeon.FirstOf(entities.RoomTypeMonster)
			if !ok {
				return false
			}
			room.Type = t
			b.counts[entities.RoomTypeMonster]--
			b.counts[t]++
		}
	}
	return true
}

// placeBossGate hangs prepare and boss rooms off the room farthest from the
// origin. The first direction pair with two free cells wins.
func (b *builder) placeBossGate() bool {
	farthest, ok := b.dungeon.Farthest()
	if !ok {
		return false
	}

	for _, dir := range b.shuffledDirections() {
		prepare := farthest.Neighbor(dir)
		if !b.cfg.InBounds(prepare) || b.dungeon.Contains(prepare) {
			continue
		}

		boss, ok := b.freeNeighbor(prepare, farthest, true)
		if !ok {
			continue
		}

		if _, err := b.dungeon.AddRoom(prepare, entities.RoomTypePrepareBoss); err != nil {
			return false
		}
		if _, err := b.dungeon.AddRoom(boss, entities.RoomTypeBoss); err != nil {
			return false
		}
		if err := b.dungeon.Connect(farthest, prepare); err != nil {
			return false
		}
		if err := b.dungeon.Connect(prepare, boss); err != nil {
			return false
		}
		return true
	}
	return false
}

func (b *builder) assignVariants() {
	for _, room := range b.dungeon.Rooms() {
		n := b.cfg.Variants[room.Type]
		if n > 1 && b.random.Float64() < b.cfg.VariationChance {
			room.Variant = b.random.Intn(n)
		}
	}
}
