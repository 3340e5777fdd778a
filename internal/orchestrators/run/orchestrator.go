// Package run implements the orchestrator for dungeon runs: generating a
// dungeon, moving the player through its doors and tracking the run to its end.
package run

//go:generate mockgen -destination=mock/mock_service.go -package=runmock github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/run Service

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/felixgeelhaar/statekit"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/logging"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/runs"
)

// Service defines the interface for dungeon run operations
type Service interface {
	// GenerateDungeon builds a dungeon without starting a run
	GenerateDungeon(ctx context.Context, input *GenerateDungeonInput) (*GenerateDungeonOutput, error)

	// StartRun generates a dungeon and stores a new run at its start room
	StartRun(ctx context.Context, input *StartRunInput) (*StartRunOutput, error)

	// GetRun loads a run with the state of the current room's doors
	GetRun(ctx context.Context, input *GetRunInput) (*GetRunOutput, error)

	// Traverse moves the player through a door of the current room
	Traverse(ctx context.Context, input *TraverseInput) (*TraverseOutput, error)

	// ClearRoom marks the current room as cleared
	ClearRoom(ctx context.Context, input *ClearRoomInput) (*ClearRoomOutput, error)

	// FailRun ends a run because the player died or gave up
	FailRun(ctx context.Context, input *FailRunInput) (*FailRunOutput, error)
}

// Config holds the dependencies for the run orchestrator
type Config struct {
	Repository  runs.Repository
	EventBus    events.EventBus
	DiceRoller  dice.Roller
	Clock       clock.Clock
	IDGenerator idgen.Generator

	// DungeonConfig defaults to dungeon.DefaultConfig
	DungeonConfig *dungeon.Config
	// Layout defaults to dungeon.DefaultLayout
	Layout     dungeon.Layout
	SpawnRules []dungeon.SpawnRule
	// RunTTL defaults to runs.DefaultTTL
	RunTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	repo       runs.Repository
	eventBus   events.EventBus
	diceRoller dice.Roller
	clock      clock.Clock
	idGen      idgen.Generator

	dungeonConfig *dungeon.Config
	layout        dungeon.Layout
	spawnRules    []dungeon.SpawnRule
	runTTL        time.Duration

	lifecycle *statekit.MachineConfig[*lifecycleContext]
}

// NewOrchestrator creates a new run orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	dungeonConfig := cfg.DungeonConfig
	if dungeonConfig == nil {
		dungeonConfig = dungeon.DefaultConfig()
	}
	if err := dungeonConfig.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid dungeon config")
	}

	layout := cfg.Layout
	if layout == (dungeon.Layout{}) {
		layout = dungeon.DefaultLayout()
	}
	if err := layout.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid layout")
	}

	if err := dungeon.ValidateSpawnRules(cfg.SpawnRules); err != nil {
		return nil, errors.Wrap(err, "invalid spawn rules")
	}

	ttl := cfg.RunTTL
	if ttl <= 0 {
		ttl = runs.DefaultTTL
	}

	machine, err := newLifecycleMachine()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to build run lifecycle")
	}

	return &orchestrator{
		repo:          cfg.Repository,
		eventBus:      cfg.EventBus,
		diceRoller:    cfg.DiceRoller,
		clock:         cfg.Clock,
		idGen:         cfg.IDGenerator,
		dungeonConfig: dungeonConfig,
		layout:        layout,
		spawnRules:    cfg.SpawnRules,
		runTTL:        ttl,
		lifecycle:     machine,
	}, nil
}

// GenerateDungeon builds a dungeon without starting a run
func (o *orchestrator) GenerateDungeon(ctx context.Context, input *GenerateDungeonInput) (*GenerateDungeonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	cfg := o.dungeonConfig
	if input.Config != nil {
		cfg = input.Config
	}

	random, seed := dungeon.NewRandom(input.Seed)
	gen, err := dungeon.NewGenerator(&dungeon.GeneratorConfig{Random: random})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create generator")
	}

	started := time.Now()
	result, err := gen.Generate(ctx, cfg)
	if err != nil {
		logging.Warn().
			Add(logging.Seed(seed)).
			Add(logging.Err(err)).
			Msg("dungeon generation failed")
		return nil, errors.Wrap(err, "failed to generate dungeon").WithMeta(errors.MetaSeed, seed)
	}

	logging.Info().
		Add(logging.Seed(seed)).
		Add(logging.Attempt(result.Attempts)).
		Int("rooms", result.Dungeon.Len()).
		Add(logging.Duration(time.Since(started))).
		Msg("dungeon generated")

	return &GenerateDungeonOutput{
		Dungeon:  result.Dungeon,
		Seed:     seed,
		Attempts: result.Attempts,
	}, nil
}

// StartRun generates a dungeon and stores a new run at its start room
func (o *orchestrator) StartRun(ctx context.Context, input *StartRunInput) (*StartRunOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("player_id", input.PlayerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	generated, err := o.GenerateDungeon(ctx, &GenerateDungeonInput{Seed: input.Seed})
	if err != nil {
		return nil, err
	}

	spawns, err := dungeon.PlanSpawns(generated.Dungeon, o.spawnRules, o.diceRoller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to plan spawns")
	}

	run := &entities.Run{
		ID:        o.idGen.Generate(),
		PlayerID:  input.PlayerID,
		Seed:      generated.Seed,
		Dungeon:   generated.Dungeon,
		Current:   entities.Origin,
		Cleared:   []entities.GridPosition{entities.Origin},
		Spawns:    spawns,
		Status:    entities.RunStatusExploring,
		StartedAt: o.clock.Now(),
	}

	if _, err := o.repo.Create(ctx, runs.CreateInput{Run: run, TTL: o.runTTL}); err != nil {
		return nil, errors.Wrap(err, "failed to save run")
	}

	logging.Info().
		Add(logging.RunID(run.ID)).
		Str("player_id", run.PlayerID).
		Add(logging.Seed(run.Seed)).
		Msg("run started")

	start, _ := run.Dungeon.Room(entities.Origin)
	o.publish(ctx, EventRunStarted, run, start)

	return &StartRunOutput{
		Run:        run,
		EntryPoint: o.layout.WorldPosition(entities.Origin),
	}, nil
}

// GetRun loads a run with the state of the current room's doors
func (o *orchestrator) GetRun(ctx context.Context, input *GetRunInput) (*GetRunOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	run, err := o.load(ctx, input.RunID)
	if err != nil {
		return nil, err
	}

	return &GetRunOutput{
		Run:     run,
		Doors:   o.doorStates(run),
		Elapsed: run.Elapsed(o.clock.Now()),
	}, nil
}

// Traverse moves the player through a door of the current room
func (o *orchestrator) Traverse(ctx context.Context, input *TraverseInput) (*TraverseOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !input.Direction.Valid() {
		return nil, errors.InvalidArgumentf("unknown direction %q", input.Direction)
	}

	run, err := o.loadActive(ctx, input.RunID)
	if err != nil {
		return nil, err
	}

	from := run.Current
	target, err := dungeon.CanTraverse(run.Dungeon, from, input.Direction, run.IsCleared(from))
	if err != nil {
		if errors.IsDoorRefused(err) {
			logging.Debug().
				Add(logging.RunID(run.ID)).
				Add(logging.Position(from)).
				Str("direction", string(input.Direction)).
				Msg("door refused")
		}
		return nil, errors.Wrapf(err, "cannot leave %s going %s", from, input.Direction).
			WithMeta(errors.MetaRunID, run.ID)
	}

	room, _ := run.Dungeon.Room(target)
	run.Current = target

	if room.Type == entities.RoomTypeBoss && run.Status == entities.RunStatusExploring {
		lc, err := restoreLifecycle(o.lifecycle, run, o.clock.Now)
		if err != nil {
			return nil, err
		}
		if err := lc.send(eventEnterBoss); err != nil {
			return nil, err
		}
	}

	if err := o.save(ctx, run); err != nil {
		return nil, err
	}

	logging.Info().
		Add(logging.RunID(run.ID)).
		Add(logging.Position(target)).
		Add(logging.RoomType(room.Type)).
		Str("direction", string(input.Direction)).
		Msg("room entered")
	o.publish(ctx, EventRoomEntered, run, room)

	out := &TraverseOutput{
		Run:        run,
		Room:       room,
		EntryPoint: o.layout.EntryPoint(target, input.Direction),
	}
	if !run.IsCleared(target) {
		if planned, ok := run.SpawnsAt(target); ok {
			out.Spawns = planned.Spawns
		}
	}
	return out, nil
}

// ClearRoom marks the current room as cleared
func (o *orchestrator) ClearRoom(ctx context.Context, input *ClearRoomInput) (*ClearRoomOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	run, err := o.loadActive(ctx, input.RunID)
	if err != nil {
		return nil, err
	}

	room, ok := run.Dungeon.Room(run.Current)
	if !ok {
		return nil, errors.Internalf("run %s is at %s which has no room", run.ID, run.Current)
	}

	if !run.MarkCleared(run.Current) {
		return &ClearRoomOutput{Run: run, AlreadyCleared: true}, nil
	}

	if room.Type == entities.RoomTypeBoss {
		lc, err := restoreLifecycle(o.lifecycle, run, o.clock.Now)
		if err != nil {
			return nil, err
		}
		if err := lc.send(eventBossDefeated); err != nil {
			return nil, err
		}
	}

	if err := o.save(ctx, run); err != nil {
		return nil, err
	}

	logging.Info().
		Add(logging.RunID(run.ID)).
		Add(logging.Position(room.Position)).
		Add(logging.RoomType(room.Type)).
		Msg("room cleared")
	o.publish(ctx, EventRoomCleared, run, room)

	if !run.Status.Active() {
		o.ended(ctx, run)
	}

	return &ClearRoomOutput{Run: run}, nil
}

// FailRun ends a run because the player died or gave up
func (o *orchestrator) FailRun(ctx context.Context, input *FailRunInput) (*FailRunOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	run, err := o.loadActive(ctx, input.RunID)
	if err != nil {
		return nil, err
	}

	event := eventPlayerDied
	if input.Abandon {
		event = eventAbandon
	}

	lc, err := restoreLifecycle(o.lifecycle, run, o.clock.Now)
	if err != nil {
		return nil, err
	}
	if err := lc.send(event); err != nil {
		return nil, err
	}

	if err := o.save(ctx, run); err != nil {
		return nil, err
	}

	o.ended(ctx, run)
	return &FailRunOutput{Run: run}, nil
}

func (o *orchestrator) ended(ctx context.Context, run *entities.Run) {
	logging.Info().
		Add(logging.RunID(run.ID)).
		Str("status", string(run.Status)).
		Str("elapsed", entities.FormatElapsed(run.Elapsed(o.clock.Now()))).
		Msg("run ended")

	room, _ := run.Dungeon.Room(run.Current)
	o.publish(ctx, EventRunEnded, run, room)
}

func (o *orchestrator) load(ctx context.Context, id string) (*entities.Run, error) {
	if id == "" {
		return nil, errors.InvalidArgument("run ID is required")
	}

	out, err := o.repo.Get(ctx, runs.GetInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load run %s", id)
	}
	if out.Run.Dungeon == nil {
		return nil, errors.Internalf("run %s has no dungeon", id)
	}
	return out.Run, nil
}

func (o *orchestrator) loadActive(ctx context.Context, id string) (*entities.Run, error) {
	run, err := o.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !run.Status.Active() {
		return nil, errors.FailedPreconditionf("run %s is %s", run.ID, run.Status).
			WithMeta(errors.MetaStatus, string(run.Status))
	}
	return run, nil
}

func (o *orchestrator) save(ctx context.Context, run *entities.Run) error {
	if _, err := o.repo.Update(ctx, runs.UpdateInput{Run: run}); err != nil {
		return errors.Wrapf(err, "failed to save run %s", run.ID)
	}
	return nil
}

func (o *orchestrator) doorStates(run *entities.Run) []DoorState {
	cleared := run.IsCleared(run.Current)
	doors := run.Dungeon.Doors(run.Current)

	states := make([]DoorState, 0, len(doors))
	for _, door := range doors {
		state := DoorState{Direction: door.Direction, Target: door.Target}
		if _, err := dungeon.CanTraverse(run.Dungeon, run.Current, door.Direction, cleared); err != nil {
			state.Locked = true
			state.Reason = errors.GetMessage(err)
		}
		states = append(states, state)
	}
	return states
}
