package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/invasion/model"
)

const grid = "A north=B east=C\nB east=D\nC north=D south=E\nD east=F\nE east=G\nF south=G\n"

func TestRunIsRepeatable(t *testing.T) {
	opts := Options{Aliens: 4, Days: 200, Runs: 20, Workers: 3, Seed: 11}

	first, err := Run(context.Background(), []byte(grid), opts)
	require.NoError(t, err)
	second, err := Run(context.Background(), []byte(grid), opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 20, first.Runs)
	assert.LessOrEqual(t, first.MinDays, first.MaxDays)
	assert.LessOrEqual(t, first.MaxDays, 200)
	assert.InDelta(t, 4.0, first.Dead+first.Trapped+first.Survivors, 1e-9)
}

func TestRunLonelyCity(t *testing.T) {
	stats, err := Run(context.Background(), []byte("Lonely\n"), Options{Aliens: 2, Days: 10, Runs: 5, Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, &Stats{
		Runs: 5, Ended: 5, MinDays: 1, MaxDays: 1, MeanDays: 1, Trapped: 2,
	}, stats)
}

func TestRunRejectsBadMap(t *testing.T) {
	_, err := Run(context.Background(), []byte("A up=B\n"), Options{Aliens: 1, Days: 1, Runs: 1})
	assert.True(t, errors.Is(err, model.ErrInvalidDirection), "%v", err)

	_, err = Run(context.Background(), []byte(grid), Options{Runs: 0})
	assert.Equal(t, ErrNoRuns, err)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, []byte("A north=B\n"), Options{Aliens: 1, Days: 100, Runs: 4, Workers: 2})
	assert.True(t, errors.Is(err, context.Canceled), "%v", err)
}
