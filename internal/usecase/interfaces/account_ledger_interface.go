package interfaces

import (
	"context"

	"vermafarm/internal/domain/entities"
)

// IAccountLedger applies the counter deltas a lifecycle event carries to the
// accounts it names.
type IAccountLedger interface {
	Apply(ctx context.Context, ev entities.ServiceRequestEvent) error
}
