// Package v1alpha1 serves the dungeon run API over gRPC.
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/run"
)

// HandlerConfig holds dependencies for the dungeon handler
type HandlerConfig struct {
	RunService run.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.RunService == nil {
		return errors.InvalidArgument("run service is required")
	}
	return nil
}

// Handler implements DungeonServiceServer
type Handler struct {
	runService run.Service
}

var _ DungeonServiceServer = (*Handler)(nil)

// NewHandler creates a new dungeon handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{runService: cfg.RunService}, nil
}

// GenerateDungeon builds a dungeon preview
func (h *Handler) GenerateDungeon(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in generateDungeonRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	seed, err := parseSeed(in.Seed)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.runService.GenerateDungeon(ctx, &run.GenerateDungeonInput{
		Seed:   seed,
		Config: in.Config,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&generateDungeonResponse{
		Seed:     out.Seed,
		Attempts: out.Attempts,
		Dungeon:  out.Dungeon,
	})
}

// StartRun starts a run for a player
func (h *Handler) StartRun(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in startRunRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("player_id", in.PlayerID, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	seed, err := parseSeed(in.Seed)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.runService.StartRun(ctx, &run.StartRunInput{
		PlayerID: in.PlayerID,
		Seed:     seed,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&startRunResponse{
		Run:        toRunMessage(out.Run),
		EntryPoint: out.EntryPoint,
	})
}

// GetRun returns a run and the doors of its current room
func (h *Handler) GetRun(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	runID, err := decodeRunID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.runService.GetRun(ctx, &run.GetRunInput{RunID: runID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(toGetRunResponse(out))
}

// Traverse walks through a door of the current room
func (h *Handler) Traverse(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in traverseRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("run_id", in.RunID, vb)
	errors.ValidateRequired("direction", string(in.Direction), vb)
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.runService.Traverse(ctx, &run.TraverseInput{
		RunID:     in.RunID,
		Direction: in.Direction,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&traverseResponse{
		Run:        toRunMessage(out.Run),
		Room:       out.Room,
		EntryPoint: out.EntryPoint,
		Spawns:     out.Spawns,
	})
}

// ClearRoom marks the current room as cleared
func (h *Handler) ClearRoom(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	runID, err := decodeRunID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.runService.ClearRoom(ctx, &run.ClearRoomInput{RunID: runID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&clearRoomResponse{
		Run:            toRunMessage(out.Run),
		AlreadyCleared: out.AlreadyCleared,
	})
}

// FailRun ends a run as failed or abandoned
func (h *Handler) FailRun(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in failRunRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("run_id", in.RunID, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.runService.FailRun(ctx, &run.FailRunInput{
		RunID:   in.RunID,
		Abandon: in.Abandon,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&failRunResponse{Run: toRunMessage(out.Run)})
}

func decodeRunID(req *structpb.Struct) (string, error) {
	var in runRequest
	if err := decode(req, &in); err != nil {
		return "", err
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("run_id", in.RunID, vb)
	if err := vb.Build(); err != nil {
		return "", err
	}
	return in.RunID, nil
}

func respond(v any) (*structpb.Struct, error) {
	out, err := encode(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}
