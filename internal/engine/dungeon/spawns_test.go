package dungeon_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// scriptedRoller returns queued results and then ones
type scriptedRoller struct {
	results []int
	sizes   []int
	err     error
}

func (r *scriptedRoller) Roll(size int) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.sizes = append(r.sizes, size)
	if len(r.results) == 0 {
		return 1, nil
	}
	v := r.results[0]
	r.results = r.results[1:]
	return v, nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type SpawnsTestSuite struct {
	suite.Suite
	dungeon *entities.Dungeon
	rules   []dungeon.SpawnRule
}

func (s *SpawnsTestSuite) SetupTest() {
	s.dungeon = entities.NewDungeon()
	_, err := s.dungeon.AddRoom(entities.Origin, entities.RoomTypeStart)
	s.Require().NoError(err)
	_, err = s.dungeon.AddRoom(entities.GridPosition{X: 1}, entities.RoomTypeMonster)
	s.Require().NoError(err)
	_, err = s.dungeon.AddRoom(entities.GridPosition{X: -1}, entities.RoomTypeTreasure)
	s.Require().NoError(err)

	s.rules = []dungeon.SpawnRule{
		{Kind: "slime", Min: 2, Max: 4},
		{Kind: "skeleton", Min: 1, Max: 1},
	}
}

func (s *SpawnsTestSuite) TestPlanSpawnsOnlyHostileRooms() {
	// two kinds, swap slime behind skeleton, then slime rolls 3 on a d3
	roller := &scriptedRoller{results: []int{2, 2, 3}}

	plan, err := dungeon.PlanSpawns(s.dungeon, s.rules, roller)
	s.Require().NoError(err)
	s.Require().Len(plan, 1)
	s.Equal(entities.GridPosition{X: 1}, plan[0].Position)
	s.Equal([]entities.Spawn{
		{Kind: "skeleton", Count: 1},
		{Kind: "slime", Count: 4},
	}, plan[0].Spawns)
	s.Equal(5, plan[0].Total())
	s.Equal([]int{2, 2, 3}, roller.sizes)
}

func (s *SpawnsTestSuite) TestPlanSpawnsNoRules() {
	plan, err := dungeon.PlanSpawns(s.dungeon, nil, &scriptedRoller{})
	s.NoError(err)
	s.Empty(plan)
}

func (s *SpawnsTestSuite) TestPlanSpawnsRollerError() {
	_, err := dungeon.PlanSpawns(s.dungeon, s.rules, &scriptedRoller{err: stderrors.New("boom")})
	s.Error(err)
	s.Contains(err.Error(), "boom")
}

func (s *SpawnsTestSuite) TestValidateSpawnRules() {
	err := dungeon.ValidateSpawnRules([]dungeon.SpawnRule{
		{Kind: "", Min: 1, Max: 1},
		{Kind: "bat", Min: 0, Max: 2},
		{Kind: "bat", Min: 3, Max: 2},
	})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "spawns[0]")
	s.Contains(err.Error(), "spawns[1]")
	s.Contains(err.Error(), "duplicate kind")
}

func TestSpawnsTestSuite(t *testing.T) {
	suite.Run(t, new(SpawnsTestSuite))
}
