package interfaces

import (
	"context"

	"vermafarm/internal/domain/entities"
)

// IServiceRequestRepository abstracts DynamoDB persistence for ServiceRequest.
//
// Transitions are written conditionally on the status the record had when it
// was read: a lost race returns an empty ServiceRequest (ID == "") and no error.
// SaveReview writes only the fields owned by party.
type IServiceRequestRepository interface {
	Create(ctx context.Context, r entities.ServiceRequest) (entities.ServiceRequest, error)
	GetByID(ctx context.Context, id string) (entities.ServiceRequest, error)
	ApplyTransition(ctx context.Context, r entities.ServiceRequest, from entities.ServiceRequestStatus) (entities.ServiceRequest, error)
	SaveReview(ctx context.Context, r entities.ServiceRequest, party entities.UserType) (entities.ServiceRequest, error)
	ListAvailable(ctx context.Context) ([]entities.ServiceRequest, error)
	ListByFarmer(ctx context.Context, farmerID string) ([]entities.ServiceRequest, error)
	ListByLandowner(ctx context.Context, landownerID string) ([]entities.ServiceRequest, error)
}
