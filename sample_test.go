package solliq

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/aretw0/solliq/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestSample_StopsWhenCanceledMidway(t *testing.T) {
	c := New(WithWorkers(1))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	eval := func(p float64) (Result, error) {
		if calls.Add(1) == 3 {
			cancel()
		}
		return Result{Pressure: p, Temperature: 1}, nil
	}
	grid := domain.Grid{Max: 400, N: domain.MaxGridPoints}

	curve, err := c.sample(ctx, "test", eval, grid.Pressures())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, curve.Points)
	assert.Equal(t, int32(3), calls.Load())
}
