package run_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/run"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/runs"
	runsmock "github.com/KirkDiggler/rpg-dungeon/internal/repositories/runs/mock"
	"github.com/KirkDiggler/rpg-dungeon/internal/testutils"
	"github.com/KirkDiggler/rpg-dungeon/internal/testutils/mocks"
)

// recordingBus keeps the type of every published event
type recordingBus struct {
	mu    sync.Mutex
	types []string
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.types = append(b.types, e.Type())
	return nil
}
func (b *recordingBus) Subscribe(_ string, _ events.Handler) string { return "sub-id" }
func (b *recordingBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "sub-id"
}
func (b *recordingBus) Unsubscribe(_ string) error { return nil }
func (b *recordingBus) Clear(_ string)             {}
func (b *recordingBus) ClearAll()                  {}

func (b *recordingBus) published() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.types))
	copy(out, b.types)
	return out
}

// lowRoller always rolls a one
type lowRoller struct{}

func (lowRoller) Roll(_ int) (int, error) { return 1, nil }
func (lowRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = 1
	}
	return out, nil
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *runsmock.MockRepository
	bus      *recordingBus
	clock    *clock.Fixed
	ctx      context.Context

	// orchestrator uses the mock repository, flow uses an in-memory one
	orchestrator run.Service
	flow         run.Service
	memory       *runs.InMemoryRepository
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = runsmock.NewMockRepository(s.ctrl)
	s.bus = &recordingBus{}
	s.clock = clock.NewFixed(testutils.TestStartedAt)
	s.ctx = context.Background()
	s.memory = runs.NewInMemory()

	s.orchestrator = s.newService(s.mockRepo)
	s.flow = s.newService(s.memory)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) newService(repo runs.Repository) run.Service {
	svc, err := run.NewOrchestrator(&run.Config{
		Repository:  repo,
		EventBus:    s.bus,
		DiceRoller:  lowRoller{},
		Clock:       s.clock,
		IDGenerator: idgen.NewSequential(idgen.RunPrefix),
		SpawnRules:  []dungeon.SpawnRule{{Kind: "slime", Min: 1, Max: 3}},
	})
	s.Require().NoError(err)
	return svc
}

func (s *OrchestratorTestSuite) seedRun() *entities.Run {
	r := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)
	_, err := s.memory.Create(s.ctx, runs.CreateInput{Run: r})
	s.Require().NoError(err)
	return r
}

func (s *OrchestratorTestSuite) TestNewOrchestrator() {
	testCases := []struct {
		name    string
		cfg     *run.Config
		wantErr string
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: "config is required",
		},
		{
			name:    "missing dependencies",
			cfg:     &run.Config{},
			wantErr: "Repository",
		},
		{
			name: "invalid dungeon config",
			cfg: &run.Config{
				Repository:    s.memory,
				EventBus:      s.bus,
				DiceRoller:    lowRoller{},
				Clock:         s.clock,
				IDGenerator:   idgen.NewSequential(idgen.RunPrefix),
				DungeonConfig: &dungeon.Config{},
			},
			wantErr: "invalid dungeon config",
		},
		{
			name: "invalid spawn rules",
			cfg: &run.Config{
				Repository:  s.memory,
				EventBus:    s.bus,
				DiceRoller:  lowRoller{},
				Clock:       s.clock,
				IDGenerator: idgen.NewSequential(idgen.RunPrefix),
				SpawnRules:  []dungeon.SpawnRule{{Kind: "", Min: 1, Max: 1}},
			},
			wantErr: "invalid spawn rules",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			svc, err := run.NewOrchestrator(tc.cfg)
			s.Require().Error(err)
			s.Nil(svc)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.wantErr)
		})
	}
}

func (s *OrchestratorTestSuite) TestGenerateDungeon() {
	out, err := s.orchestrator.GenerateDungeon(s.ctx, &run.GenerateDungeonInput{Seed: testutils.TestSeed})
	s.Require().NoError(err)
	s.Equal(int64(testutils.TestSeed), out.Seed)
	s.GreaterOrEqual(out.Attempts, 1)
	s.NoError(dungeon.Verify(out.Dungeon, dungeon.DefaultConfig()))

	again, err := s.orchestrator.GenerateDungeon(s.ctx, &run.GenerateDungeonInput{Seed: testutils.TestSeed})
	s.Require().NoError(err)
	s.Equal(out.Dungeon.Positions(), again.Dungeon.Positions())
}

func (s *OrchestratorTestSuite) TestGenerateDungeonRejectsBadOverride() {
	cfg := dungeon.DefaultConfig()
	cfg.MinRooms = cfg.MaxRooms + 1

	out, err := s.orchestrator.GenerateDungeon(s.ctx, &run.GenerateDungeonInput{Seed: 1, Config: cfg})
	s.Require().Error(err)
	s.Nil(out)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestStartRun() {
	var saved *entities.Run
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input runs.CreateInput) (*runs.CreateOutput, error) {
			s.Equal(runs.DefaultTTL, input.TTL)
			saved = input.Run
			return &runs.CreateOutput{Run: input.Run}, nil
		})

	out, err := s.orchestrator.StartRun(s.ctx, &run.StartRunInput{
		PlayerID: testutils.TestPlayerID,
		Seed:     testutils.TestSeed,
	})
	s.Require().NoError(err)
	s.Require().NotNil(saved)

	r := out.Run
	s.Same(saved, r)
	s.Equal("run_1", r.ID)
	s.Equal(testutils.TestPlayerID, r.PlayerID)
	s.Equal(entities.RunStatusExploring, r.Status)
	s.Equal(entities.Origin, r.Current)
	s.True(r.IsCleared(entities.Origin))
	s.Equal(testutils.TestStartedAt, r.StartedAt)
	s.Equal(entities.Vec{}, out.EntryPoint)

	for _, room := range r.Dungeon.Rooms() {
		planned, ok := r.SpawnsAt(room.Position)
		s.Equal(dungeon.RequiresClearing(room.Type), ok, "room %s (%s)", room.Position, room.Type)
		if ok {
			s.Equal([]entities.Spawn{{Kind: "slime", Count: 1}}, planned.Spawns)
		}
	}

	s.Equal([]string{run.EventRunStarted}, s.bus.published())
}

func (s *OrchestratorTestSuite) TestStartRunRequiresPlayer() {
	out, err := s.orchestrator.StartRun(s.ctx, &run.StartRunInput{})
	s.Require().Error(err)
	s.Nil(out)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "player_id")
}

func (s *OrchestratorTestSuite) TestStartRunSaveFails() {
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	out, err := s.orchestrator.StartRun(s.ctx, &run.StartRunInput{PlayerID: testutils.TestPlayerID, Seed: 3})
	s.Require().Error(err)
	s.Nil(out)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
	s.Empty(s.bus.published())
}

func (s *OrchestratorTestSuite) TestGetRun() {
	r := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)
	mocks.ExpectRunLoad(s.ctx, s.mockRepo, r)
	s.clock.Advance(90 * time.Second)

	out, err := s.orchestrator.GetRun(s.ctx, &run.GetRunInput{RunID: r.ID})
	s.Require().NoError(err)
	s.Equal(90*time.Second, out.Elapsed)
	s.Equal([]run.DoorState{
		{Direction: entities.DirectionUp, Target: testutils.TestTreasurePos},
		{Direction: entities.DirectionRight, Target: testutils.TestMonsterPos},
	}, out.Doors)
}

func (s *OrchestratorTestSuite) TestGetRunLockedDoors() {
	r := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)
	r.Current = testutils.TestMonsterPos
	mocks.ExpectRunLoad(s.ctx, s.mockRepo, r)

	out, err := s.orchestrator.GetRun(s.ctx, &run.GetRunInput{RunID: r.ID})
	s.Require().NoError(err)
	s.Require().Len(out.Doors, 2)
	for _, door := range out.Doors {
		s.True(door.Locked, "door %s", door.Direction)
		s.NotEmpty(door.Reason)
	}
}

func (s *OrchestratorTestSuite) TestGetRunMissing() {
	mocks.ExpectRunMissing(s.ctx, s.mockRepo, "run_missing")

	out, err := s.orchestrator.GetRun(s.ctx, &run.GetRunInput{RunID: "run_missing"})
	s.Require().Error(err)
	s.Nil(out)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestTraverse() {
	r := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)
	mocks.ExpectRunLoad(s.ctx, s.mockRepo, r)
	mocks.ExpectRunUpdate(s.ctx, s.mockRepo, func(saved *entities.Run) {
		s.Equal(testutils.TestMonsterPos, saved.Current)
	})

	out, err := s.orchestrator.Traverse(s.ctx, &run.TraverseInput{
		RunID:     r.ID,
		Direction: entities.DirectionRight,
	})
	s.Require().NoError(err)
	s.Equal(entities.RoomTypeMonster, out.Room.Type)
	s.Equal(entities.Vec{X: 40, Y: 0}, out.EntryPoint)
	s.Equal([]entities.Spawn{{Kind: "slime", Count: 2}}, out.Spawns)
	s.Equal([]string{run.EventRoomEntered}, s.bus.published())
}

func (s *OrchestratorTestSuite) TestTraverseRejected() {
	testCases := []struct {
		name      string
		setup     func(r *entities.Run)
		direction entities.Direction
		check     func(error) bool
	}{
		{
			name:      "no door",
			direction: entities.DirectionLeft,
			check:     errors.IsFailedPrecondition,
		},
		{
			name:      "room not cleared",
			setup:     func(r *entities.Run) { r.Current = testutils.TestMonsterPos },
			direction: entities.DirectionRight,
			check:     errors.IsFailedPrecondition,
		},
		{
			name:      "run over",
			setup:     func(r *entities.Run) { r.Status = entities.RunStatusFailed },
			direction: entities.DirectionRight,
			check:     errors.IsFailedPrecondition,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			r := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)
			if tc.setup != nil {
				tc.setup(r)
			}
			mocks.ExpectRunLoad(s.ctx, s.mockRepo, r)

			out, err := s.orchestrator.Traverse(s.ctx, &run.TraverseInput{RunID: r.ID, Direction: tc.direction})
			s.Require().Error(err)
			s.Nil(out)
			s.True(tc.check(err), "unexpected error %v", err)
			if tc.name != "run over" {
				s.True(errors.IsDoorRefused(err))
				s.Equal(r.ID, errors.GetMeta(err)[errors.MetaRunID])
			}
		})
	}
}

func (s *OrchestratorTestSuite) TestTraverseInvalidDirection() {
	out, err := s.orchestrator.Traverse(s.ctx, &run.TraverseInput{RunID: testutils.TestRunID, Direction: "north"})
	s.Require().Error(err)
	s.Nil(out)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestClearRoomAlreadyCleared() {
	r := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)
	mocks.ExpectRunLoad(s.ctx, s.mockRepo, r)

	out, err := s.orchestrator.ClearRoom(s.ctx, &run.ClearRoomInput{RunID: r.ID})
	s.Require().NoError(err)
	s.True(out.AlreadyCleared)
	s.Empty(s.bus.published())
}

func (s *OrchestratorTestSuite) TestFailRun() {
	testCases := []struct {
		name    string
		abandon bool
		want    entities.RunStatus
	}{
		{name: "player died", want: entities.RunStatusFailed},
		{name: "abandoned", abandon: true, want: entities.RunStatusAbandoned},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			r := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)
			mocks.ExpectRunLoad(s.ctx, s.mockRepo, r)
			mocks.ExpectRunUpdate(s.ctx, s.mockRepo, func(saved *entities.Run) {
				s.Equal(tc.want, saved.Status)
				s.False(saved.EndedAt.IsZero())
			})

			out, err := s.orchestrator.FailRun(s.ctx, &run.FailRunInput{RunID: r.ID, Abandon: tc.abandon})
			s.Require().NoError(err)
			s.Equal(tc.want, out.Run.Status)
		})
	}
}

func (s *OrchestratorTestSuite) TestFailRunTwice() {
	r := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)
	r.Status = entities.RunStatusAbandoned
	mocks.ExpectRunLoad(s.ctx, s.mockRepo, r)

	out, err := s.orchestrator.FailRun(s.ctx, &run.FailRunInput{RunID: r.ID})
	s.Require().Error(err)
	s.Nil(out)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestFullRun() {
	r := s.seedRun()
	step := func(dir entities.Direction) *run.TraverseOutput {
		out, err := s.flow.Traverse(s.ctx, &run.TraverseInput{RunID: r.ID, Direction: dir})
		s.Require().NoError(err)
		return out
	}
	clearRoom := func() *run.ClearRoomOutput {
		out, err := s.flow.ClearRoom(s.ctx, &run.ClearRoomInput{RunID: r.ID})
		s.Require().NoError(err)
		return out
	}

	step(entities.DirectionRight)

	// monster rooms lock their doors until cleared
	_, err := s.flow.Traverse(s.ctx, &run.TraverseInput{RunID: r.ID, Direction: entities.DirectionRight})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	clearRoom()
	prepare := step(entities.DirectionRight)
	s.Equal(entities.RoomTypePrepareBoss, prepare.Room.Type)
	s.Empty(prepare.Spawns)

	boss := step(entities.DirectionUp)
	s.Equal(entities.RoomTypeBoss, boss.Room.Type)
	s.Equal(entities.RunStatusBossFight, boss.Run.Status)
	s.Equal([]entities.Spawn{{Kind: "ogre", Count: 1}}, boss.Spawns)

	s.clock.Advance(5 * time.Minute)
	done := clearRoom()
	s.Equal(entities.RunStatusCleared, done.Run.Status)
	s.Equal(testutils.TestStartedAt.Add(5*time.Minute), done.Run.EndedAt)

	got, err := s.flow.GetRun(s.ctx, &run.GetRunInput{RunID: r.ID})
	s.Require().NoError(err)
	s.Equal(entities.RunStatusCleared, got.Run.Status)
	s.Equal(5*time.Minute, got.Elapsed)

	s.Equal([]string{
		run.EventRoomEntered,
		run.EventRoomCleared,
		run.EventRoomEntered,
		run.EventRoomEntered,
		run.EventRoomCleared,
		run.EventRunEnded,
	}, s.bus.published())

	_, err = s.flow.Traverse(s.ctx, &run.TraverseInput{RunID: r.ID, Direction: entities.DirectionDown})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
