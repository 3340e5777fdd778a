package dungeon_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

type GeneratorTestSuite struct {
	suite.Suite
	ctx context.Context
	cfg *dungeon.Config
}

func (s *GeneratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = dungeon.DefaultConfig()
}

func (s *GeneratorTestSuite) newGenerator(seed int64) *dungeon.Generator {
	gen, err := dungeon.NewGenerator(&dungeon.GeneratorConfig{
		Random: rand.New(rand.NewSource(seed)),
	})
	s.Require().NoError(err)
	return gen
}

func (s *GeneratorTestSuite) TestNewGenerator() {
	testCases := []struct {
		name    string
		config  *dungeon.GeneratorConfig
		wantErr bool
	}{
		{
			name:   "valid config",
			config: &dungeon.GeneratorConfig{Random: rand.New(rand.NewSource(1))},
		},
		{
			name:    "nil config",
			wantErr: true,
		},
		{
			name:    "missing random",
			config:  &dungeon.GeneratorConfig{},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			gen, err := dungeon.NewGenerator(tc.config)
			if tc.wantErr {
				s.Error(err)
				s.True(errors.IsInvalidArgument(err))
				s.Nil(gen)
				return
			}
			s.NoError(err)
			s.NotNil(gen)
		})
	}
}

func (s *GeneratorTestSuite) TestGenerateDefaultConfig() {
	result, err := s.newGenerator(42).Generate(s.ctx, s.cfg)
	s.Require().NoError(err)
	s.Require().NotNil(result.Dungeon)

	d := result.Dungeon
	s.GreaterOrEqual(d.Len(), 10)
	s.LessOrEqual(d.Len(), 15)
	s.Equal(1, d.CountOf(entities.RoomTypeStart))
	s.Equal(1, d.CountOf(entities.RoomTypeFireCamp))
	s.Equal(1, d.CountOf(entities.RoomTypePrepareBoss))
	s.Equal(1, d.CountOf(entities.RoomTypeBoss))
	s.GreaterOrEqual(d.CountOf(entities.RoomTypeMonster), 2)
	s.LessOrEqual(d.CountOf(entities.RoomTypeMonster), 5)

	start, ok := d.Room(entities.Origin)
	s.Require().True(ok)
	s.Equal(entities.RoomTypeStart, start.Type)

	boss, ok := d.FirstOf(entities.RoomTypeBoss)
	s.Require().True(ok)
	doors := d.Doors(boss.Position)
	s.Require().Len(doors, 1)
	prepare, ok := d.Room(doors[0].Target)
	s.Require().True(ok)
	s.Equal(entities.RoomTypePrepareBoss, prepare.Type)

	s.NoError(dungeon.Verify(d, s.cfg))
	s.GreaterOrEqual(result.Attempts, 1)
}

func (s *GeneratorTestSuite) TestGenerateHoldsAcrossSeeds() {
	for seed := int64(1); seed <= 200; seed++ {
		result, err := s.newGenerator(seed).Generate(s.ctx, s.cfg)
		s.Require().NoError(err, "seed %d", seed)
		s.Require().NoError(dungeon.Verify(result.Dungeon, s.cfg), "seed %d", seed)
	}
}

func (s *GeneratorTestSuite) TestGenerateIsDeterministicPerSeed() {
	first, err := s.newGenerator(7).Generate(s.ctx, s.cfg)
	s.Require().NoError(err)
	second, err := s.newGenerator(7).Generate(s.ctx, s.cfg)
	s.Require().NoError(err)

	a, err := first.Dungeon.MarshalJSON()
	s.Require().NoError(err)
	b, err := second.Dungeon.MarshalJSON()
	s.Require().NoError(err)
	s.JSONEq(string(a), string(b))
	s.Equal(first.Attempts, second.Attempts)
}

func (s *GeneratorTestSuite) TestGenerateRejectsInvalidConfig() {
	testCases := []struct {
		name   string
		modify func(cfg *dungeon.Config)
		field  string
	}{
		{
			name:   "min above max",
			modify: func(cfg *dungeon.Config) { cfg.MinRooms = 16 },
			field:  "min_rooms",
		},
		{
			name: "quota minimums exceed max rooms",
			modify: func(cfg *dungeon.Config) {
				cfg.Quotas[entities.RoomTypeMonster] = dungeon.Quota{Min: 13, Max: 13, Weight: 1}
			},
			field: "max_rooms",
		},
		{
			name:   "grid too small",
			modify: func(cfg *dungeon.Config) { cfg.Radius = 1 },
			field:  "max_rooms",
		},
		{
			name: "quota max below min",
			modify: func(cfg *dungeon.Config) {
				cfg.Quotas[entities.RoomTypeItem] = dungeon.Quota{Min: 2, Max: 1, Weight: 0.2}
			},
			field: "quotas.item",
		},
		{
			name:   "zero generation attempts",
			modify: func(cfg *dungeon.Config) { cfg.MaxGenerationAttempts = 0 },
			field:  "max_generation_attempts",
		},
		{
			name:   "radius too large",
			modify: func(cfg *dungeon.Config) { cfg.Radius = 1 << 40 },
			field:  "radius",
		},
		{
			name:   "too many generation attempts",
			modify: func(cfg *dungeon.Config) { cfg.MaxGenerationAttempts = dungeon.MaxGenerationAttemptsCap + 1 },
			field:  "max_generation_attempts",
		},
		{
			name:   "too many growth attempts",
			modify: func(cfg *dungeon.Config) { cfg.MaxGrowthAttempts = 1 << 50 },
			field:  "max_growth_attempts",
		},
		{
			name: "huge quota",
			modify: func(cfg *dungeon.Config) {
				cfg.Quotas[entities.RoomTypeMonster] = dungeon.Quota{Min: 1 << 62, Max: 1 << 62, Weight: 1}
			},
			field: "quotas.monster",
		},
		{
			name:   "variation chance above one",
			modify: func(cfg *dungeon.Config) { cfg.VariationChance = 1.5 },
			field:  "variation_chance",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := dungeon.DefaultConfig()
			tc.modify(cfg)

			result, err := s.newGenerator(1).Generate(s.ctx, cfg)
			s.Error(err)
			s.Nil(result)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.field)
		})
	}
}

func (s *GeneratorTestSuite) TestValidateAcceptsLargestGrid() {
	cfg := dungeon.DefaultConfig()
	cfg.Radius = dungeon.MaxRadius
	cfg.MaxGenerationAttempts = dungeon.MaxGenerationAttemptsCap
	cfg.MaxGrowthAttempts = dungeon.MaxGrowthAttemptsCap
	s.NoError(cfg.Validate())
}

func (s *GeneratorTestSuite) TestGenerateNilConfig() {
	result, err := s.newGenerator(1).Generate(s.ctx, nil)
	s.Error(err)
	s.Nil(result)
	s.True(errors.IsInvalidArgument(err))
}

func (s *GeneratorTestSuite) TestGenerateExhaustsAttempts() {
	// a single growth step can never reach eight rooms
	s.cfg.MaxGrowthAttempts = 1
	s.cfg.MaxGenerationAttempts = 5

	result, err := s.newGenerator(3).Generate(s.ctx, s.cfg)
	s.Error(err)
	s.Nil(result)
	s.True(errors.IsResourceExhausted(err))

	meta := errors.GetMeta(err)
	s.Equal(5, meta["attempts"])
	s.Equal(string(dungeon.FailureTooFewRooms), meta["last_failure"])
	s.Equal(map[string]interface{}{string(dungeon.FailureTooFewRooms): 5}, meta["failures"])
}

func (s *GeneratorTestSuite) TestGenerateCanceled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	result, err := s.newGenerator(1).Generate(ctx, s.cfg)
	s.Error(err)
	s.Nil(result)
	s.True(errors.IsCanceled(err))
}

func (s *GeneratorTestSuite) TestGenerateAssignsVariants() {
	s.cfg.VariationChance = 1
	s.cfg.Variants = map[entities.RoomType]int{entities.RoomTypeMonster: 3}

	result, err := s.newGenerator(11).Generate(s.ctx, s.cfg)
	s.Require().NoError(err)

	for _, room := range result.Dungeon.Rooms() {
		if room.Type == entities.RoomTypeMonster {
			s.GreaterOrEqual(room.Variant, 0)
			s.Less(room.Variant, 3)
			continue
		}
		s.Zero(room.Variant, "room %s", room.Position)
	}
}

func (s *GeneratorTestSuite) TestVerifyCatchesBrokenDungeon() {
	d := entities.NewDungeon()
	_, err := d.AddRoom(entities.Origin, entities.RoomTypeStart)
	s.Require().NoError(err)
	_, err = d.AddRoom(entities.GridPosition{X: 1}, entities.RoomTypeBoss)
	s.Require().NoError(err)
	s.Require().NoError(d.Connect(entities.Origin, entities.GridPosition{X: 1}))

	err = dungeon.Verify(d, s.cfg)
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "rooms")
	s.Contains(err.Error(), "boss")
}

func TestGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}
