package testutils

import (
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

// Fixture defaults
const (
	TestRunID    = "run_test_001"
	TestPlayerID = "player_test_001"
	TestSeed     = int64(42)
)

// TestStartedAt is the start time used by run fixtures
var TestStartedAt = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// Positions in the fixture dungeon
var (
	TestMonsterPos  = entities.GridPosition{X: 1, Y: 0}
	TestTreasurePos = entities.GridPosition{X: 0, Y: 1}
	TestPreparePos  = entities.GridPosition{X: 2, Y: 0}
	TestBossPos     = entities.GridPosition{X: 2, Y: 1}
)

// CreateTestDungeon builds a small fixed dungeon:
//
//	treasure
//	start - monster - prepare
//	                  boss (above prepare)
func CreateTestDungeon() *entities.Dungeon {
	d := entities.NewDungeon()
	mustAdd(d, entities.Origin, entities.RoomTypeStart)
	mustAdd(d, TestMonsterPos, entities.RoomTypeMonster)
	mustAdd(d, TestTreasurePos, entities.RoomTypeTreasure)
	mustAdd(d, TestPreparePos, entities.RoomTypePrepareBoss)
	mustAdd(d, TestBossPos, entities.RoomTypeBoss)

	mustConnect(d, entities.Origin, TestMonsterPos)
	mustConnect(d, entities.Origin, TestTreasurePos)
	mustConnect(d, TestMonsterPos, TestPreparePos)
	mustConnect(d, TestPreparePos, TestBossPos)
	return d
}

// CreateTestRun creates an exploring run at the origin of the fixture dungeon
func CreateTestRun(id, playerID string) *entities.Run {
	return &entities.Run{
		ID:        id,
		PlayerID:  playerID,
		Seed:      TestSeed,
		Dungeon:   CreateTestDungeon(),
		Current:   entities.Origin,
		Cleared:   []entities.GridPosition{entities.Origin},
		Status:    entities.RunStatusExploring,
		StartedAt: TestStartedAt,
		Spawns: []entities.RoomSpawns{
			{Position: TestMonsterPos, Spawns: []entities.Spawn{{Kind: "slime", Count: 2}}},
			{Position: TestBossPos, Spawns: []entities.Spawn{{Kind: "ogre", Count: 1}}},
		},
	}
}

func mustAdd(d *entities.Dungeon, pos entities.GridPosition, t entities.RoomType) {
	if _, err := d.AddRoom(pos, t); err != nil {
		panic(err)
	}
}

func mustConnect(d *entities.Dungeon, a, b entities.GridPosition) {
	if err := d.Connect(a, b); err != nil {
		panic(err)
	}
}
