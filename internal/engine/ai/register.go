package ai

import (
	"fmt"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine/fsm"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// Unit names used in state tables
const (
	ActionDetectTarget  = "detect_target"
	ActionMoveToward    = "move_toward"
	ActionAttack        = "attack"
	ActionPatternAttack = "pattern_attack"
	DecisionHasTarget   = "has_target"
	DecisionInRange     = "target_in_range"
	DecisionHealthBelow = "health_below"
	DecisionTimeInState = "time_in_state"
	DecisionNot         = "not"
)

// Register adds every stock unit to reg, bound to world and random
func Register(reg *fsm.Registry, world World, random Random) error {
	if reg == nil || world == nil || random == nil {
		return errors.InvalidArgument("registry, world and random are required")
	}

	actions := map[string]fsm.ActionFactory{
		ActionDetectTarget: func(args fsm.Args) (fsm.Action, error) {
			radius, err := args.Float("radius", 0)
			if err != nil {
				return nil, err
			}
			if radius <= 0 {
				return nil, errors.InvalidArgument("radius must be positive")
			}
			return &DetectTarget{World: world, Radius: radius}, nil
		},
		ActionMoveToward: func(args fsm.Args) (fsm.Action, error) {
			speed, err := args.Float("speed", 1)
			if err != nil {
				return nil, err
			}
			return &MoveToward{World: world, Speed: speed}, nil
		},
		ActionAttack: func(args fsm.Args) (fsm.Action, error) {
			return attackFromArgs(world, args)
		},
		ActionPatternAttack: func(args fsm.Args) (fsm.Action, error) {
			return patternAttackFromArgs(world, random, args)
		},
	}

	decisions := map[string]fsm.DecisionFactory{
		DecisionHasTarget: func(fsm.Args) (fsm.Decision, error) {
			return HasTarget{}, nil
		},
		DecisionInRange: func(args fsm.Args) (fsm.Decision, error) {
			r, err := args.Float("range", 0)
			if err != nil {
				return nil, err
			}
			return &TargetInRange{World: world, Range: r}, nil
		},
		DecisionHealthBelow: func(args fsm.Args) (fsm.Decision, error) {
			f, err := args.Float("fraction", 0.5)
			if err != nil {
				return nil, err
			}
			return &HealthBelow{World: world, Fraction: f}, nil
		},
		DecisionTimeInState: func(args fsm.Args) (fsm.Decision, error) {
			ticks, err := args.Int("ticks", 1)
			if err != nil {
				return nil, err
			}
			return TimeInState{Ticks: ticks}, nil
		},
		DecisionNot: func(args fsm.Args) (fsm.Decision, error) {
			spec, err := args.Unit("decision")
			if err != nil {
				return nil, err
			}
			inner, err := reg.Decision(spec.Name, spec.Args)
			if err != nil {
				return nil, err
			}
			return fsm.Not(inner), nil
		},
	}

	for name, factory := range actions {
		if err := reg.RegisterAction(name, factory); err != nil {
			return err
		}
	}
	for name, factory := range decisions {
		if err := reg.RegisterDecision(name, factory); err != nil {
			return err
		}
	}
	return nil
}

func attackFromArgs(world World, args fsm.Args) (*Attack, error) {
	a := &Attack{World: world}
	var err error
	if a.Range, err = args.Float("range", 1); err != nil {
		return nil, err
	}
	if a.Damage, err = args.Float("damage", 1); err != nil {
		return nil, err
	}
	if a.Cooldown, err = args.Duration("cooldown", 0); err != nil {
		return nil, err
	}
	if a.Key, err = args.String("key", ""); err != nil {
		return nil, err
	}
	ranged, ok := args["ranged"]
	if ok {
		b, isBool := ranged.(bool)
		if !isBool {
			return nil, errors.InvalidArgumentf("arg ranged must be a boolean, got %T", ranged)
		}
		a.Ranged = b
	}
	return a, nil
}

func patternAttackFromArgs(world World, random Random, args fsm.Args) (*PatternAttack, error) {
	p := &PatternAttack{World: world, Random: random}
	var err error
	if p.GlobalCooldown, err = args.Duration("global_cooldown", 0); err != nil {
		return nil, err
	}

	raw, ok := args["patterns"].([]any)
	if !ok || len(raw) == 0 {
		return nil, errors.InvalidArgument("patterns must be a non-empty list")
	}

	seen := make(map[string]bool, len(raw))
	for i, item := range raw {
		pa, ok := fsm.AsArgs(item)
		if !ok {
			return nil, errors.InvalidArgumentf("patterns[%d] must be a mapping, got %T", i, item)
		}

		var pattern Pattern
		if pattern.Name, err = pa.String("name", fmt.Sprintf("pattern_%d", i)); err != nil {
			return nil, err
		}
		if seen[pattern.Name] {
			return nil, errors.InvalidArgumentf("duplicate pattern %q", pattern.Name)
		}
		seen[pattern.Name] = true

		if pattern.MinRange, err = pa.Float("min_range", 0); err != nil {
			return nil, err
		}
		if pattern.MaxRange, err = pa.Float("max_range", 0); err != nil {
			return nil, err
		}
		if pattern.HealthThreshold, err = pa.Float("health_threshold", 0); err != nil {
			return nil, err
		}
		if pattern.Cooldown, err = pa.Duration("cooldown", 0); err != nil {
			return nil, err
		}
		if pattern.Damage, err = pa.Float("damage", 1); err != nil {
			return nil, err
		}
		if pattern.Projectiles, err = pa.Int("projectiles", 1); err != nil {
			return nil, err
		}
		p.Patterns = append(p.Patterns, pattern)
	}
	return p, nil
}
