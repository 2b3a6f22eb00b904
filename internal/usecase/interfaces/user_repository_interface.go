package interfaces

import (
	"context"
	"time"

	"vermafarm/internal/domain/entities"
)

// IUserRepository abstracts DynamoDB persistence for User.
//
// Counters are never written from a read-modify-write cycle: IncrementStats
// applies deltas atomically and SetStat overwrites a single derived counter.
type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByEmail(ctx context.Context, email string) (entities.User, error)
	UpdateProfile(ctx context.Context, u entities.User) (entities.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) (entities.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	IncrementStats(ctx context.Context, id string, deltas entities.StatDeltas) error
	SetStat(ctx context.Context, id string, field entities.StatField, value float64) error
}
