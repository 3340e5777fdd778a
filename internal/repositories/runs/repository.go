// Package runs stores dungeon runs
package runs

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=runsmock github.com/KirkDiggler/rpg-dungeon/internal/repositories/runs Repository

// DefaultTTL is how long a run lives when the caller does not say
const DefaultTTL = 2 * time.Hour

// CreateInput contains parameters for storing a new run
type CreateInput struct {
	Run *entities.Run
	TTL time.Duration
}

// CreateOutput contains the stored run
type CreateOutput struct {
	Run *entities.Run
}

// GetInput contains parameters for retrieving a run
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved run
type GetOutput struct {
	Run *entities.Run
}

// UpdateInput contains the new state of an existing run
type UpdateInput struct {
	Run *entities.Run
}

// UpdateOutput contains the stored run
type UpdateOutput struct {
	Run *entities.Run
}

// DeleteInput contains parameters for deleting a run
type DeleteInput struct {
	ID string
}

// DeleteOutput is empty on success
type DeleteOutput struct{}

// Repository defines the interface for run storage operations
type Repository interface {
	// Create stores a run that must not exist yet
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a run by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing run, keeping its expiry
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a run
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

const (
	errRunNil     = "run cannot be nil"
	errRunIDEmpty = "run ID cannot be empty"
)
