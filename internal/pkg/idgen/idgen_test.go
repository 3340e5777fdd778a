package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("run")
	assert.Equal(t, "run_1", gen.Generate())
	assert.Equal(t, "run_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	id := idgen.NewUUID("run").Generate()
	require.True(t, strings.HasPrefix(id, "run_"))

	_, err := uuid.Parse(strings.TrimPrefix(id, "run_"))
	assert.NoError(t, err)
	assert.NotEqual(t, id, idgen.NewUUID("run").Generate())
}

func TestSequentialGeneratorConcurrent(t *testing.T) {
	gen := idgen.NewSequential(idgen.RunPrefix)

	const workers, each = 8, 50
	ids := make(chan string, workers*each)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				ids <- gen.Generate()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, workers*each)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*each)
	assert.Equal(t, "run_401", gen.Generate())
}

func TestFunc(t *testing.T) {
	var gen idgen.Generator = idgen.Func(func() string { return "run_fixed" })
	assert.Equal(t, "run_fixed", gen.Generate())
}
