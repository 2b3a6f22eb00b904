package usecase

import (
	"context"
	"fmt"
	"slices"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// AccountLedger applies the counter deltas of service-request events to the
// user documents they name. Each user's deltas are one atomic write.
type AccountLedger struct {
	users interfaces.IUserRepository
}

var _ interfaces.IAccountLedger = (*AccountLedger)(nil)

func NewAccountLedger(users interfaces.IUserRepository) *AccountLedger {
	return &AccountLedger{users: users}
}

func (l *AccountLedger) Apply(ctx context.Context, ev entities.ServiceRequestEvent) error {
	deltas := ev.Deltas()
	userIDs := make([]string, 0, len(deltas))
	for id := range deltas {
		if id != "" {
			userIDs = append(userIDs, id)
		}
	}
	slices.Sort(userIDs)

	for _, id := range userIDs {
		if err := l.users.IncrementStats(ctx, id, deltas[id]); err != nil {
			return fmt.Errorf("apply %T to user %s: %w", ev, id, err)
		}
		logrus.WithFields(logrus.Fields{
			"request_id": ev.RequestID(),
			"user_id":    id,
			"event":      fmt.Sprintf("%T", ev),
		}).Debug("[account][ledger] counters updated")
	}
	return nil
}
