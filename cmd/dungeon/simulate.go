package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine/ai"
	"github.com/KirkDiggler/rpg-dungeon/internal/engine/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/engine/fsm"
	"github.com/KirkDiggler/rpg-dungeon/internal/logging"
)

var (
	simTable       string
	simTicks       int
	simDelta       time.Duration
	simDistance    float64
	simEnemyHealth float64
	simSeed        int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Tick an enemy state table against a stationary player",
	Long: `Load an enemy state table, place the enemy at the origin and the player at --distance,
then tick the machine and print every state change.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simTable, "table", "", "path to a YAML state table")
	simulateCmd.Flags().IntVar(&simTicks, "ticks", 100, "number of ticks to run")
	simulateCmd.Flags().DurationVar(&simDelta, "dt", 100*time.Millisecond, "time covered by one tick")
	simulateCmd.Flags().Float64Var(&simDistance, "distance", 8, "starting distance between enemy and player")
	simulateCmd.Flags().Float64Var(&simEnemyHealth, "enemy-health", 1, "enemy health as a fraction of its maximum")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed for pattern selection (0 picks one)")
	_ = simulateCmd.MarkFlagRequired("table")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	world := newArena(simDistance, simEnemyHealth, simDelta)
	random, seed := dungeon.NewRandom(simSeed)

	reg := fsm.NewRegistry()
	if err := ai.Register(reg, world, random); err != nil {
		return err
	}

	f, err := os.Open(simTable) // #nosec G304 -- operator supplied path
	if err != nil {
		return fmt.Errorf("failed to open state table: %w", err)
	}
	defer func() { _ = f.Close() }()

	machine, err := fsm.LoadTable(f, reg)
	if err != nil {
		return err
	}

	logging.Debug().
		Str("machine", machine.Name()).
		Add(logging.Seed(seed)).
		Msg("simulation starting")

	out := cmd.OutOrStdout()
	agent := machine.NewAgent(enemyID)
	fmt.Fprintf(out, "%s starts in %s\n", machine.Name(), machine.StateName(agent.State()))

	for tick := 1; tick <= simTicks; tick++ {
		before := agent.State()
		if err := machine.Tick(agent); err != nil {
			return err
		}
		if after := agent.State(); after != before {
			pos, _ := world.Position(enemyID)
			fmt.Fprintf(out, "tick %4d  %s -> %s  enemy=(%.2f,%.2f) player_hp=%.0f%%\n",
				tick, machine.StateName(before), machine.StateName(after),
				pos.X, pos.Y, world.Health(playerID)*100)
		}
		if world.Health(playerID) <= 0 {
			fmt.Fprintf(out, "player defeated on tick %d\n", tick)
			break
		}
	}

	fmt.Fprintf(out, "final state %s, %d melee hits, %d projectiles\n",
		machine.StateName(agent.State()), world.hits, world.shots)
	return nil
}
