// Package planstore provides the plan repository consumed by the engine:
// a bounded in-memory cache for hot plan lookups and an optional SQLite
// store for durability. The engine itself owns no other state.
package planstore

import (
	"context"
	"errors"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
)

// ErrNotFound is returned when no plan exists under the given id.
var ErrNotFound = errors.New("plan not found")

// Store persists computed plans under their generated identifiers.
type Store interface {
	Put(ctx context.Context, p *model.Plan) error
	Get(ctx context.Context, id string) (*model.Plan, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
