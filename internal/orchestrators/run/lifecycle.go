package run

import (
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/logging"
)

const lifecycleMachineID = "dungeon_run"

// Lifecycle states mirror entities.RunStatus
const (
	stateExploring statekit.StateID = statekit.StateID(entities.RunStatusExploring)
	stateBossFight statekit.StateID = statekit.StateID(entities.RunStatusBossFight)
	stateCleared   statekit.StateID = statekit.StateID(entities.RunStatusCleared)
	stateFailed    statekit.StateID = statekit.StateID(entities.RunStatusFailed)
	stateAbandoned statekit.StateID = statekit.StateID(entities.RunStatusAbandoned)
)

// Lifecycle events
const (
	eventEnterBoss    statekit.EventType = "ENTER_BOSS"
	eventBossDefeated statekit.EventType = "BOSS_DEFEATED"
	eventPlayerDied   statekit.EventType = "PLAYER_DIED"
	eventAbandon      statekit.EventType = "ABANDON"
)

type lifecycleContext struct {
	run *entities.Run
	now func() time.Time
}

func stampEnd(ctx **lifecycleContext, _ statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).run == nil {
		return
	}
	c := *ctx
	c.run.EndedAt = c.now()
}

func guardBossCleared(ctx *lifecycleContext, _ statekit.Event) bool {
	if ctx == nil || ctx.run == nil || ctx.run.Dungeon == nil {
		return false
	}
	boss, ok := ctx.run.Dungeon.FirstOf(entities.RoomTypeBoss)
	return ok && ctx.run.IsCleared(boss.Position)
}

func newLifecycleMachine() (*statekit.MachineConfig[*lifecycleContext], error) {
	return statekit.NewMachine[*lifecycleContext](lifecycleMachineID).
		WithInitial(stateExploring).
		WithContext(&lifecycleContext{}).
		WithAction("stampEnd", stampEnd).
		WithGuard("bossCleared", guardBossCleared).
		State(stateExploring).
			On(eventEnterBoss).Target(stateBossFight).
			On(eventPlayerDied).Target(stateFailed).
			On(eventAbandon).Target(stateAbandoned).
			Done().
		State(stateBossFight).
			On(eventBossDefeated).Target(stateCleared).Guard("bossCleared").
			On(eventPlayerDied).Target(stateFailed).
			On(eventAbandon).Target(stateAbandoned).
			Done().
		State(stateCleared).
			Final().
			OnEntry("stampEnd").
			Done().
		State(stateFailed).
			Final().
			OnEntry("stampEnd").
			Done().
		State(stateAbandoned).
			Final().
			OnEntry("stampEnd").
			Done().
		Build()
}

// lifecycle drives one run's status through the machine
type lifecycle struct {
	interp *statekit.Interpreter[*lifecycleContext]
	run    *entities.Run
}

// restoreLifecycle resumes the machine at the run's persisted status
func restoreLifecycle(machine *statekit.MachineConfig[*lifecycleContext], run *entities.Run, now func() time.Time) (*lifecycle, error) {
	lctx := &lifecycleContext{run: run, now: now}

	interp := statekit.NewInterpreter(machine)
	interp.UpdateContext(func(c **lifecycleContext) {
		*c = lctx
	})

	err := interp.Restore(statekit.Snapshot[*lifecycleContext]{
		MachineID:    lifecycleMachineID,
		CurrentState: statekit.StateID(run.Status),
		Context:      lctx,
		CreatedAt:    now(),
	})
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInternal, "failed to restore run %s at %s", run.ID, run.Status)
	}

	return &lifecycle{interp: interp, run: run}, nil
}

// send fires an event and syncs the run status. An event the current state
// does not accept leaves everything unchanged and returns FailedPrecondition.
func (l *lifecycle) send(event statekit.EventType) (err error) {
	from := l.interp.State().Value

	defer func() {
		if r := recover(); r != nil {
			err = errors.FailedPreconditionf("run %s rejected %s in %s: %v", l.run.ID, event, from, r)
		}
	}()

	l.interp.Send(statekit.Event{Type: event})

	to := l.interp.State().Value
	if to == from {
		return errors.FailedPreconditionf("run %s cannot %s while %s", l.run.ID, event, from).
			WithMeta(errors.MetaStatus, string(from)).
			WithMeta(errors.MetaEvent, string(event))
	}

	l.run.Status = entities.RunStatus(to)
	logging.Debug().
		Add(logging.RunID(l.run.ID)).
		Add(logging.Transition(string(from), string(to))).
		Str("event", string(event)).
		Msg("run lifecycle transition")
	return nil
}
