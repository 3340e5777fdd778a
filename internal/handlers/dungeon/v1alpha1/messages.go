package v1alpha1

import (
	"bytes"
	"encoding/json"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/run"
)

// Seeds travel as strings in responses because Struct numbers are doubles.
// Requests accept either form.

type generateDungeonRequest struct {
	Seed   json.Number     `json:"seed"`
	Config *dungeon.Config `json:"config"`
}

type generateDungeonResponse struct {
	Seed     int64             `json:"seed,string"`
	Attempts int               `json:"attempts"`
	Dungeon  *entities.Dungeon `json:"dungeon"`
}

type startRunRequest struct {
	PlayerID string      `json:"player_id"`
	Seed     json.Number `json:"seed"`
}

type runRequest struct {
	RunID string `json:"run_id"`
}

type traverseRequest struct {
	RunID     string             `json:"run_id"`
	Direction entities.Direction `json:"direction"`
}

type failRunRequest struct {
	RunID   string `json:"run_id"`
	Abandon bool   `json:"abandon"`
}

type runMessage struct {
	ID        string                  `json:"id"`
	PlayerID  string                  `json:"player_id"`
	Seed      int64                   `json:"seed,string"`
	Status    entities.RunStatus      `json:"status"`
	Current   entities.GridPosition   `json:"current"`
	Cleared   []entities.GridPosition `json:"cleared"`
	Spawns    []entities.RoomSpawns   `json:"spawns,omitempty"`
	Dungeon   *entities.Dungeon       `json:"dungeon"`
	StartedAt time.Time               `json:"started_at"`
	EndedAt   *time.Time              `json:"ended_at,omitempty"`
}

func toRunMessage(r *entities.Run) *runMessage {
	if r == nil {
		return nil
	}

	msg := &runMessage{
		ID:        r.ID,
		PlayerID:  r.PlayerID,
		Seed:      r.Seed,
		Status:    r.Status,
		Current:   r.Current,
		Cleared:   r.Cleared,
		Spawns:    r.Spawns,
		Dungeon:   r.Dungeon,
		StartedAt: r.StartedAt,
	}
	if !r.EndedAt.IsZero() {
		ended := r.EndedAt
		msg.EndedAt = &ended
	}
	return msg
}

type startRunResponse struct {
	Run        *runMessage  `json:"run"`
	EntryPoint entities.Vec `json:"entry_point"`
}

type doorMessage struct {
	Direction entities.Direction    `json:"direction"`
	Target    entities.GridPosition `json:"target"`
	Locked    bool                  `json:"locked"`
	Reason    string                `json:"reason,omitempty"`
}

type getRunResponse struct {
	Run            *runMessage   `json:"run"`
	Doors          []doorMessage `json:"doors"`
	Elapsed        string        `json:"elapsed"`
	ElapsedSeconds float64       `json:"elapsed_seconds"`
}

func toGetRunResponse(out *run.GetRunOutput) *getRunResponse {
	doors := make([]doorMessage, 0, len(out.Doors))
	for _, d := range out.Doors {
		doors = append(doors, doorMessage{
			Direction: d.Direction,
			Target:    d.Target,
			Locked:    d.Locked,
			Reason:    d.Reason,
		})
	}

	return &getRunResponse{
		Run:            toRunMessage(out.Run),
		Doors:          doors,
		Elapsed:        entities.FormatElapsed(out.Elapsed),
		ElapsedSeconds: out.Elapsed.Seconds(),
	}
}

type traverseResponse struct {
	Run        *runMessage      `json:"run"`
	Room       *entities.Room   `json:"room"`
	EntryPoint entities.Vec     `json:"entry_point"`
	Spawns     []entities.Spawn `json:"spawns"`
}

type clearRoomResponse struct {
	Run            *runMessage `json:"run"`
	AlreadyCleared bool        `json:"already_cleared"`
}

type failRunResponse struct {
	Run *runMessage `json:"run"`
}

// decode reads a Struct into v, rejecting fields v does not declare
func decode(req *structpb.Struct, v any) error {
	if req == nil {
		req = &structpb.Struct{}
	}

	data, err := protojson.Marshal(req)
	if err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}
	return nil
}

// encode writes v as a Struct
func encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Internalf("failed to encode response: %v", err)
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Internalf("failed to encode response: %v", err)
	}
	return out, nil
}

func parseSeed(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}
	seed, err := n.Int64()
	if err != nil {
		return 0, errors.InvalidArgumentf("seed must be an integer, got %s", n.String())
	}
	return seed, nil
}
