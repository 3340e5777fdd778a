package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-dungeon/internal/config"
	"github.com/KirkDiggler/rpg-dungeon/internal/engine/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/runs"
)

type LoaderTestSuite struct {
	suite.Suite
	loader *config.Loader
	dir    string
}

func (s *LoaderTestSuite) SetupTest() {
	s.loader = config.NewLoader()
	s.dir = s.T().TempDir()
}

func (s *LoaderTestSuite) write(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *LoaderTestSuite) TestDefaultsAreValid() {
	cfg := config.Defaults()
	s.Require().NoError(cfg.Validate())
	s.Equal(50051, cfg.Server.Port)
	s.Equal(runs.DefaultTTL, cfg.Redis.TTL.Std())
	s.Empty(cfg.Redis.Address)
	s.Equal(dungeon.DefaultLayout(), cfg.Layout)
}

func (s *LoaderTestSuite) TestLoadYAML() {
	s.T().Setenv("DUNGEON_TEST_REDIS", "redis:6379")

	path := s.write("dungeon.yaml", `
server:
  port: 6000
  shutdown_timeout: 5s
redis:
  address: ${DUNGEON_TEST_REDIS}
  ttl: 30m
logging:
  level: ${DUNGEON_TEST_LEVEL:-debug}
  format: json
dungeon:
  min_rooms: 8
  max_rooms: 12
spawns:
  - kind: slime
    min: 1
    max: 2
`)

	cfg, err := s.loader.LoadFile(path)
	s.Require().NoError(err)

	s.Equal(6000, cfg.Server.Port)
	s.Equal(5*time.Second, cfg.Server.ShutdownTimeout.Std())
	s.Equal("redis:6379", cfg.Redis.Address)
	s.Equal(30*time.Minute, cfg.Redis.TTL.Std())
	s.Equal("debug", cfg.Logging.Level)
	s.Equal("json", cfg.Logging.Format)

	s.Equal(8, cfg.Dungeon.MinRooms)
	s.Equal(12, cfg.Dungeon.MaxRooms)
	// unspecified dungeon fields keep their defaults
	s.Equal(dungeon.DefaultConfig().Radius, cfg.Dungeon.Radius)
	s.Equal(dungeon.DefaultConfig().Quota(entities.RoomTypeMonster), cfg.Dungeon.Quota(entities.RoomTypeMonster))

	s.Equal([]dungeon.SpawnRule{{Kind: "slime", Min: 1, Max: 2}}, cfg.Spawns)
}

func (s *LoaderTestSuite) TestLoadJSON() {
	path := s.write("dungeon.json", `{
  "server": {"port": 7000},
  "redis": {"ttl": "1h"},
  "layout": {"room_width": 40, "room_height": 30, "entry_offset": 5}
}`)

	cfg, err := s.loader.LoadFile(path)
	s.Require().NoError(err)
	s.Equal(7000, cfg.Server.Port)
	s.Equal(time.Hour, cfg.Redis.TTL.Std())
	s.Equal(dungeon.Layout{RoomWidth: 40, RoomHeight: 30, EntryOffset: 5}, cfg.Layout)
}

func (s *LoaderTestSuite) TestEmptyFileUsesDefaults() {
	cfg, err := s.loader.LoadFile(s.write("empty.yaml", ""))
	s.Require().NoError(err)
	s.Equal(config.Defaults().Server, cfg.Server)
}

func (s *LoaderTestSuite) TestLoadErrors() {
	testCases := []struct {
		name    string
		file    string
		content string
		check   func(error) bool
		wantErr string
	}{
		{
			name:    "unsupported extension",
			file:    "dungeon.toml",
			content: "port = 1",
			check:   errors.IsInvalidArgument,
			wantErr: "unsupported config format",
		},
		{
			name:    "unknown field",
			file:    "dungeon.yaml",
			content: "servr:\n  port: 1\n",
			check:   errors.IsInvalidArgument,
			wantErr: "servr",
		},
		{
			name:    "bad duration",
			file:    "dungeon.yaml",
			content: "redis:\n  ttl: soon\n",
			check:   errors.IsInvalidArgument,
			wantErr: "invalid duration",
		},
		{
			name:    "invalid port",
			file:    "dungeon.json",
			content: `{"server": {"port": 70000}}`,
			check:   errors.IsInvalidArgument,
			wantErr: "server.port",
		},
		{
			name:    "invalid level",
			file:    "dungeon.yaml",
			content: "logging:\n  level: loud\n",
			check:   errors.IsInvalidArgument,
			wantErr: "logging.level",
		},
		{
			name:    "invalid dungeon",
			file:    "dungeon.yaml",
			content: "dungeon:\n  min_rooms: 20\n  max_rooms: 5\n",
			check:   errors.IsInvalidArgument,
			wantErr: "invalid dungeon section",
		},
		{
			name:    "invalid spawns",
			file:    "dungeon.yaml",
			content: "spawns:\n  - kind: slime\n    min: 3\n    max: 1\n",
			check:   errors.IsInvalidArgument,
			wantErr: "invalid spawns section",
		},
		{
			name:    "required variable",
			file:    "dungeon.yaml",
			content: "redis:\n  address: ${DUNGEON_TEST_UNSET_ADDR:?redis address required}\n",
			check:   errors.IsInvalidArgument,
			wantErr: "redis address required",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg, err := s.loader.LoadFile(s.write(tc.file, tc.content))
			s.Require().Error(err)
			s.Nil(cfg)
			s.True(tc.check(err), "unexpected error %v", err)
			s.Contains(err.Error(), tc.wantErr)
		})
	}
}

func (s *LoaderTestSuite) TestSampleConfig() {
	s.T().Setenv("REDIS_ADDRESS", "")
	s.T().Setenv("DUNGEON_PORT", "")

	cfg, err := s.loader.LoadFile("../../configs/dungeon.yaml")
	s.Require().NoError(err)
	s.Equal(50051, cfg.Server.Port)
	s.Empty(cfg.Redis.Address)
	s.Equal(4, cfg.Dungeon.Variants[entities.RoomTypeMonster])
	s.Len(cfg.Spawns, 3)
}

func (s *LoaderTestSuite) TestMissingFile() {
	cfg, err := s.loader.LoadFile(filepath.Join(s.dir, "absent.yaml"))
	s.Require().Error(err)
	s.Nil(cfg)
	s.True(errors.IsNotFound(err))
}

func TestLoaderTestSuite(t *testing.T) {
	suite.Run(t, new(LoaderTestSuite))
}
