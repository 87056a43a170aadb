package ports

import (
	"context"

	"github.com/aretw0/solliq/pkg/domain"
)

// CurveCache stores sampled curves by key, so that repeated requests for the
// same curve and grid are served without re-evaluating every point.
type CurveCache interface {
	// Get returns the curve stored under key.
	// Returns domain.ErrCacheMiss if nothing is stored.
	Get(ctx context.Context, key string) (domain.Curve, error)

	// Put stores the curve under key, replacing any previous entry.
	Put(ctx context.Context, key string, curve domain.Curve) error

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
