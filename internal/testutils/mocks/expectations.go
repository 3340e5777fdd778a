// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/runs"
	runsmock "github.com/KirkDiggler/rpg-dungeon/internal/repositories/runs/mock"
)

// ExpectRunLoad makes the repository return run for its ID
func ExpectRunLoad(ctx context.Context, repo *runsmock.MockRepository, run *entities.Run) *gomock.Call {
	return repo.EXPECT().
		Get(ctx, runs.GetInput{ID: run.ID}).
		Return(&runs.GetOutput{Run: run}, nil)
}

// ExpectRunMissing makes the repository report id as not found
func ExpectRunMissing(ctx context.Context, repo *runsmock.MockRepository, id string) *gomock.Call {
	return repo.EXPECT().
		Get(ctx, runs.GetInput{ID: id}).
		Return(nil, errors.NotFoundf("run %s not found", id))
}

// ExpectRunUpdate accepts any update and hands the saved run to check
func ExpectRunUpdate(ctx context.Context, repo *runsmock.MockRepository, check func(*entities.Run)) *gomock.Call {
	return repo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input runs.UpdateInput) (*runs.UpdateOutput, error) {
			if check != nil {
				check(input.Run)
			}
			return &runs.UpdateOutput{Run: input.Run}, nil
		})
}
