// Package idgen hands out run ids. Production uses random UUIDs; tests use a
// counter so ids are stable across runs of the suite.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// RunPrefix is prepended to every dungeon run id
const RunPrefix = "run"

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// Func adapts a plain function to Generator
type Func func() string

// Generate calls f
func (f Func) Generate() string { return f() }

// join returns prefix_id, or id alone for an empty prefix
func join(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}

// SequentialGenerator yields prefix_1, prefix_2, ... and is safe for
// concurrent use.
type SequentialGenerator struct {
	prefix string
	next   atomic.Uint64
}

func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

func (g *SequentialGenerator) Generate() string {
	return join(g.prefix, strconv.FormatUint(g.next.Add(1), 10))
}

// UUIDGenerator yields prefix_<uuid v4>
type UUIDGenerator struct {
	prefix string
}

func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

func (g *UUIDGenerator) Generate() string {
	return join(g.prefix, uuid.NewString())
}
