package runs_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/runs"
	"github.com/KirkDiggler/rpg-dungeon/internal/testutils"
)

const testRunKey = "dungeon_run:" + testutils.TestRunID

type RedisRunsTestSuite struct {
	suite.Suite
	server *miniredis.Miniredis
	repo   runs.Repository
	ctx    context.Context
}

func (s *RedisRunsTestSuite) SetupTest() {
	client, server := testutils.CreateTestRedisClient(s.T())
	s.server = server
	s.ctx = context.Background()

	repo, err := runs.NewRedisRepository(&runs.Config{Client: client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRunsTestSuite) TestNewRedisRepository() {
	_, err := runs.NewRedisRepository(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = runs.NewRedisRepository(&runs.Config{})
	s.Error(err)
	s.Contains(err.Error(), "redis client is required")
}

func (s *RedisRunsTestSuite) TestCreateAndGet() {
	run := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)

	_, err := s.repo.Create(s.ctx, runs.CreateInput{Run: run, TTL: time.Hour})
	s.Require().NoError(err)
	s.True(s.server.Exists(testRunKey))
	s.Equal(time.Hour, s.server.TTL(testRunKey))

	out, err := s.repo.Get(s.ctx, runs.GetInput{ID: run.ID})
	s.Require().NoError(err)
	s.Equal(run.PlayerID, out.Run.PlayerID)
	s.Equal(run.Status, out.Run.Status)
	s.True(run.StartedAt.Equal(out.Run.StartedAt))
	s.Equal(run.Spawns, out.Run.Spawns)
	s.Equal(run.Dungeon.Len(), out.Run.Dungeon.Len())
	s.True(out.Run.Dungeon.Connected(testutils.TestPreparePos, testutils.TestBossPos))
}

func (s *RedisRunsTestSuite) TestCreateDefaultTTL() {
	run := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)
	_, err := s.repo.Create(s.ctx, runs.CreateInput{Run: run})
	s.Require().NoError(err)
	s.Equal(runs.DefaultTTL, s.server.TTL(testRunKey))
}

func (s *RedisRunsTestSuite) TestCreateExisting() {
	run := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)
	_, err := s.repo.Create(s.ctx, runs.CreateInput{Run: run})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, runs.CreateInput{Run: run})
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRunsTestSuite) TestUpdateKeepsTTL() {
	run := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)
	_, err := s.repo.Create(s.ctx, runs.CreateInput{Run: run, TTL: time.Hour})
	s.Require().NoError(err)

	s.server.FastForward(10 * time.Minute)

	run.Current = testutils.TestMonsterPos
	run.MarkCleared(testutils.TestMonsterPos)
	_, err = s.repo.Update(s.ctx, runs.UpdateInput{Run: run})
	s.Require().NoError(err)
	s.Equal(50*time.Minute, s.server.TTL(testRunKey))

	out, err := s.repo.Get(s.ctx, runs.GetInput{ID: run.ID})
	s.Require().NoError(err)
	s.Equal(testutils.TestMonsterPos, out.Run.Current)
	s.True(out.Run.IsCleared(testutils.TestMonsterPos))
}

func (s *RedisRunsTestSuite) TestExpiry() {
	run := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)
	_, err := s.repo.Create(s.ctx, runs.CreateInput{Run: run, TTL: time.Minute})
	s.Require().NoError(err)

	s.server.FastForward(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, runs.GetInput{ID: run.ID})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRunsTestSuite) TestNotFound() {
	_, err := s.repo.Get(s.ctx, runs.GetInput{ID: "missing"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Update(s.ctx, runs.UpdateInput{Run: &entities.Run{ID: "missing"}})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, runs.DeleteInput{ID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRunsTestSuite) TestDelete() {
	run := testutils.CreateTestRun(testutils.TestRunID, testutils.TestPlayerID)
	_, err := s.repo.Create(s.ctx, runs.CreateInput{Run: run})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, runs.DeleteInput{ID: run.ID})
	s.Require().NoError(err)
	s.False(s.server.Exists(testRunKey))
}

func (s *RedisRunsTestSuite) TestInvalidInput() {
	testCases := []struct {
		name string
		call func() error
	}{
		{"create nil run", func() error {
			_, err := s.repo.Create(s.ctx, runs.CreateInput{})
			return err
		}},
		{"create empty id", func() error {
			_, err := s.repo.Create(s.ctx, runs.CreateInput{Run: &entities.Run{}})
			return err
		}},
		{"get empty id", func() error {
			_, err := s.repo.Get(s.ctx, runs.GetInput{})
			return err
		}},
		{"update nil run", func() error {
			_, err := s.repo.Update(s.ctx, runs.UpdateInput{})
			return err
		}},
		{"delete empty id", func() error {
			_, err := s.repo.Delete(s.ctx, runs.DeleteInput{})
			return err
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.True(errors.IsInvalidArgument(tc.call()))
		})
	}
}

func TestRedisRunsTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRunsTestSuite))
}
