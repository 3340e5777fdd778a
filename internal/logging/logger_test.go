package logging_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/logging"
)

type LoggingTestSuite struct {
	suite.Suite
	buf *bytes.Buffer
}

func TestLoggingSuite(t *testing.T) {
	suite.Run(t, new(LoggingTestSuite))
}

func (s *LoggingTestSuite) SetupTest() {
	s.buf = &bytes.Buffer{}
	logging.Use(bolt.New(bolt.NewJSONHandler(s.buf)).SetLevel(bolt.TRACE))
}

func (s *LoggingTestSuite) TestDefaultConfigs() {
	s.Equal("info", logging.DefaultConfig().Level)
	s.Equal("console", logging.DefaultConfig().Format)
	s.Equal(os.Stdout, logging.DefaultConfig().Output)
	s.Equal("json", logging.ProductionConfig().Format)
}

func (s *LoggingTestSuite) TestFields() {
	logging.Info().
		Add(logging.RunID("run_1")).
		Add(logging.Position(entities.GridPosition{X: 1, Y: -2})).
		Add(logging.RoomType(entities.RoomTypeBoss)).
		Add(logging.Attempt(3)).
		Add(logging.Transition("idle", "chase")).
		Add(logging.Duration(1500 * time.Millisecond)).
		Msg("room entered")

	out := s.buf.String()
	s.Contains(out, "room entered")
	s.Contains(out, `"run_id":"run_1"`)
	s.Contains(out, `"position":"1,-2"`)
	s.Contains(out, `"room_type":"boss"`)
	s.Contains(out, `"attempt":3`)
	s.Contains(out, `"from_state":"idle"`)
	s.Contains(out, `"to_state":"chase"`)
	s.Contains(out, `"duration_ms":1500`)
}

func (s *LoggingTestSuite) TestErrField() {
	logging.Warn().Add(logging.Err(fmt.Errorf("boom"))).Msg("skipped")
	s.Contains(s.buf.String(), "boom")
}

func (s *LoggingTestSuite) TestGRPCLogger() {
	logger := logging.GRPCLogger()
	logger.Log(context.Background(), grpc_logging.LevelInfo, "finished call", "grpc.method", "GenerateDungeon")

	s.Contains(s.buf.String(), "finished call")
	s.Contains(s.buf.String(), `"grpc.method":"GenerateDungeon"`)
}

func (s *LoggingTestSuite) TestNewRespectsLevel() {
	buf := &bytes.Buffer{}
	logger := logging.New(logging.Config{Level: "error", Format: "json", Output: buf})
	logger.Info().Msg("hidden")
	logger.Error().Msg("shown")

	s.NotContains(buf.String(), "hidden")
	s.Contains(buf.String(), "shown")
}
