package dungeon_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

type GatingTestSuite struct {
	suite.Suite
	dungeon *entities.Dungeon
}

// SetupTest builds a corridor: start(0,0) - monster(1,0) - prepare(2,0) - boss(2,1)
// with a second monster at (1,1) touching the boss cell but not connected to it.
func (s *GatingTestSuite) SetupTest() {
	s.dungeon = entities.NewDungeon()
	rooms := []struct {
		pos      entities.GridPosition
		roomType entities.RoomType
	}{
		{entities.Origin, entities.RoomTypeStart},
		{entities.GridPosition{X: 1}, entities.RoomTypeMonster},
		{entities.GridPosition{X: 2}, entities.RoomTypePrepareBoss},
		{entities.GridPosition{X: 2, Y: 1}, entities.RoomTypeBoss},
		{entities.GridPosition{X: 1, Y: 1}, entities.RoomTypeMonster},
	}
	for _, r := range rooms {
		_, err := s.dungeon.AddRoom(r.pos, r.roomType)
		s.Require().NoError(err)
	}
	s.Require().NoError(s.dungeon.Connect(entities.Origin, entities.GridPosition{X: 1}))
	s.Require().NoError(s.dungeon.Connect(entities.GridPosition{X: 1}, entities.GridPosition{X: 2}))
	s.Require().NoError(s.dungeon.Connect(entities.GridPosition{X: 2}, entities.GridPosition{X: 2, Y: 1}))
	s.Require().NoError(s.dungeon.Connect(entities.GridPosition{X: 1}, entities.GridPosition{X: 1, Y: 1}))
}

func (s *GatingTestSuite) TestAlwaysUnlocked() {
	unlocked := map[entities.RoomType]bool{
		entities.RoomTypeStart:       true,
		entities.RoomTypeFireCamp:    true,
		entities.RoomTypeItem:        true,
		entities.RoomTypeTreasure:    true,
		entities.RoomTypePrepareBoss: true,
		entities.RoomTypeMonster:     false,
		entities.RoomTypeBoss:        false,
	}
	for roomType, want := range unlocked {
		s.Equal(want, dungeon.AlwaysUnlocked(roomType), string(roomType))
		s.Equal(!want, dungeon.RequiresClearing(roomType), string(roomType))
	}
}

func (s *GatingTestSuite) TestCanTraverse() {
	testCases := []struct {
		name    string
		from    entities.GridPosition
		dir     entities.Direction
		cleared bool
		want    entities.GridPosition
		check   func(error) bool
	}{
		{
			name: "start room is always open",
			from: entities.Origin,
			dir:  entities.DirectionRight,
			want: entities.GridPosition{X: 1},
		},
		{
			name:  "monster room locked until cleared",
			from:  entities.GridPosition{X: 1},
			dir:   entities.DirectionRight,
			check: errors.IsFailedPrecondition,
		},
		{
			name:    "cleared monster room opens",
			from:    entities.GridPosition{X: 1},
			dir:     entities.DirectionRight,
			cleared: true,
			want:    entities.GridPosition{X: 2},
		},
		{
			name:  "no door on that side",
			from:  entities.Origin,
			dir:   entities.DirectionUp,
			check: errors.IsFailedPrecondition,
		},
		{
			name: "prepare room leads to boss",
			from: entities.GridPosition{X: 2},
			dir:  entities.DirectionUp,
			want: entities.GridPosition{X: 2, Y: 1},
		},
		{
			name:  "unknown direction",
			from:  entities.Origin,
			dir:   entities.Direction("north"),
			check: errors.IsInvalidArgument,
		},
		{
			name:  "no room at source",
			from:  entities.GridPosition{X: -2, Y: -2},
			dir:   entities.DirectionUp,
			check: errors.IsNotFound,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, err := dungeon.CanTraverse(s.dungeon, tc.from, tc.dir, tc.cleared)
			if tc.check != nil {
				s.Error(err)
				s.True(tc.check(err), err.Error())
				return
			}
			s.NoError(err)
			s.Equal(tc.want, got)
		})
	}
}

func (s *GatingTestSuite) TestBossOnlyFromPrepare() {
	// wire an illegal side door from the second monster room into the boss room
	s.Require().NoError(s.dungeon.Connect(entities.GridPosition{X: 1, Y: 1}, entities.GridPosition{X: 2, Y: 1}))

	_, err := dungeon.CanTraverse(s.dungeon, entities.GridPosition{X: 1, Y: 1}, entities.DirectionRight, true)
	s.Error(err)
	s.True(errors.IsPermissionDenied(err))
}

func TestGatingTestSuite(t *testing.T) {
	suite.Run(t, new(GatingTestSuite))
}
