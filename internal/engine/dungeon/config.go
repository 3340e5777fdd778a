// Package dungeon grows room graphs under per-type quotas and gates the boss
// room behind a single prepare room.
package dungeon

import (
	"fmt"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

const (
	// bossGateRooms is the prepare room plus the boss room
	bossGateRooms = 2
	// fixedRooms is start plus the boss gate
	fixedRooms = 1 + bossGateRooms

	defaultMaxGrowthAttempts     = 100
	defaultMaxGenerationAttempts = 1000

	// Upper bounds for configs that arrive over the wire
	MaxRadius                = 32
	MaxGrowthAttemptsCap     = 100_000
	MaxGenerationAttemptsCap = 100_000
)

// maxCells is the capacity of the largest allowed grid
const maxCells = (2*MaxRadius + 1) * (2*MaxRadius + 1)

// Quota bounds how many rooms of one type a dungeon holds and how likely the
// type is to be picked while growing.
type Quota struct {
	Min    int     `yaml:"min" json:"min"`
	Max    int     `yaml:"max" json:"max"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// Config controls dungeon generation
type Config struct {
	// Radius bounds the grid to |x| <= Radius and |y| <= Radius
	Radius int `yaml:"radius" json:"radius"`

	// MinRooms and MaxRooms bound the total room count, boss gate included
	MinRooms int `yaml:"min_rooms" json:"min_rooms"`
	MaxRooms int `yaml:"max_rooms" json:"max_rooms"`

	// Quotas holds the ranges for monster, fire_camp, treasure and item rooms
	Quotas map[entities.RoomType]Quota `yaml:"quotas" json:"quotas"`

	// MaxGrowthAttempts caps growth iterations within one attempt
	MaxGrowthAttempts int `yaml:"max_growth_attempts" json:"max_growth_attempts"`

	// MaxGenerationAttempts caps whole attempts before giving up
	MaxGenerationAttempts int `yaml:"max_generation_attempts" json:"max_generation_attempts"`

	// VariationChance is the chance a room uses a non-default variant
	VariationChance float64 `yaml:"variation_chance" json:"variation_chance"`

	// Variants is the number of visual variants available per room type
	Variants map[entities.RoomType]int `yaml:"variants" json:"variants,omitempty"`
}

// DefaultConfig returns the stock dungeon settings
func DefaultConfig() *Config {
	return &Config{
		Radius:   2,
		MinRooms: 10,
		MaxRooms: 15,
		Quotas: map[entities.RoomType]Quota{
			entities.RoomTypeMonster:  {Min: 2, Max: 5, Weight: 0.4},
			entities.RoomTypeFireCamp: {Min: 1, Max: 1, Weight: 0.1},
			entities.RoomTypeTreasure: {Min: 1, Max: 2, Weight: 0.1},
			entities.RoomTypeItem:     {Min: 1, Max: 3, Weight: 0.2},
		},
		MaxGrowthAttempts:     defaultMaxGrowthAttempts,
		MaxGenerationAttempts: defaultMaxGenerationAttempts,
		VariationChance:       0.3,
	}
}

// Quota returns the quota for t, zero when unset
func (c *Config) Quota(t entities.RoomType) Quota {
	return c.Quotas[t]
}

// Capacity returns how many cells the grid holds
func (c *Config) Capacity() int {
	side := 2*c.Radius + 1
	return side * side
}

// InBounds reports whether pos lies inside the grid
func (c *Config) InBounds(pos entities.GridPosition) bool {
	return abs(pos.X) <= c.Radius && abs(pos.Y) <= c.Radius
}

// MinimumSum returns the sum of all quota minimums
func (c *Config) MinimumSum() int {
	sum := 0
	for _, t := range entities.QuotaRoomTypes {
		sum += c.Quota(t).Min
	}
	return sum
}

// Validate rejects configurations that can never produce a dungeon
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("radius", c.Radius, 1, MaxRadius, vb)
	errors.ValidateRange("max_growth_attempts", c.MaxGrowthAttempts, 1, MaxGrowthAttemptsCap, vb)
	errors.ValidateRange("max_generation_attempts", c.MaxGenerationAttempts, 1, MaxGenerationAttemptsCap, vb)
	errors.ValidateFraction("variation_chance", c.VariationChance, vb)

	for t, q := range c.Quotas {
		field := fmt.Sprintf("quotas.%s", t)
		if !t.IsQuotaType() {
			vb.InvalidField(field, "room type has no quota")
			continue
		}
		if q.Min < 0 || q.Max > maxCells {
			vb.Fieldf(field, "min and max must be between 0 and %d", maxCells)
			continue
		}
		if q.Max < q.Min {
			vb.Fieldf(field, "max %d is below min %d", q.Max, q.Min)
		}
		if q.Weight < 0 {
			vb.Field(field, "weight must not be negative")
		}
	}

	for t, n := range c.Variants {
		if !t.Valid() {
			vb.InvalidField(fmt.Sprintf("variants.%s", t), "unknown room type")
		} else if n < 0 {
			vb.Field(fmt.Sprintf("variants.%s", t), "must not be negative")
		}
	}

	if vb.HasErrors() {
		return vb.Build()
	}

	if c.Capacity() < c.MaxRooms {
		vb.Fieldf("max_rooms", "grid capacity %d is below max_rooms %d", c.Capacity(), c.MaxRooms)
	}
	if c.MinRooms > c.MaxRooms {
		vb.Fieldf("min_rooms", "min_rooms %d exceeds max_rooms %d", c.MinRooms, c.MaxRooms)
	}
	required := c.MinimumSum() + fixedRooms
	if required > c.MaxRooms {
		vb.Fieldf("max_rooms", "quota minimums plus start and boss gate need %d rooms, max_rooms is %d",
			required, c.MaxRooms)
	}
	if c.MinRooms < required {
		vb.Fieldf("min_rooms", "must be at least %d (quota minimums plus start and boss gate)", required)
	}

	return vb.Build()
}

// Clone returns a deep copy
func (c *Config) Clone() *Config {
	out := *c
	out.Quotas = make(map[entities.RoomType]Quota, len(c.Quotas))
	for k, v := range c.Quotas {
		out.Quotas[k] = v
	}
	if c.Variants != nil {
		out.Variants = make(map[entities.RoomType]int, len(c.Variants))
		for k, v := range c.Variants {
			out.Variants[k] = v
		}
	}
	return &out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
