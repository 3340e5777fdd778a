package runs

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage. Entries
// never expire.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string][]byte),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a run
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Run == nil {
		return nil, errors.InvalidArgument(errRunNil)
	}
	if input.Run.ID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	// Stored as JSON so callers never share the dungeon graph with the store
	data, err := json.Marshal(input.Run)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal run")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Run.ID]; exists {
		return nil, errors.AlreadyExistsf("run %s already exists", input.Run.ID)
	}
	r.store[input.Run.ID] = data

	return &CreateOutput{Run: input.Run}, nil
}

// Get retrieves a copy of a run
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	r.mu.RLock()
	data, exists := r.store[input.ID]
	r.mu.RUnlock()
	if !exists {
		return nil, errors.NotFoundf("run %s not found", input.ID)
	}

	var run entities.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal run")
	}
	return &GetOutput{Run: &run}, nil
}

// Update replaces an existing run
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Run == nil {
		return nil, errors.InvalidArgument(errRunNil)
	}
	if input.Run.ID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	data, err := json.Marshal(input.Run)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal run")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Run.ID]; !exists {
		return nil, errors.NotFoundf("run %s not found", input.Run.ID)
	}
	r.store[input.Run.ID] = data

	return &UpdateOutput{Run: input.Run}, nil
}

// Delete removes a run
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("run %s not found", input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}
