package interfaces

import (
	"context"

	"vermafarm/internal/domain/entities"
)

// ITransactionRepository abstracts DynamoDB persistence for Transaction.
type ITransactionRepository interface {
	Create(ctx context.Context, tx entities.Transaction) (entities.Transaction, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]entities.Transaction, error)
}
