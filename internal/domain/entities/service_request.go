package entities

import (
	"strings"
	"time"
)

// ServiceRequestStatus is the lifecycle state of a service request.
//
//	pending -> accepted -> in_progress -> completed
//	pending -> cancelled
//	pending -> rejected (declared, no operation leads here)
type ServiceRequestStatus string

const (
	ServiceRequestStatusPending    ServiceRequestStatus = "pending"
	ServiceRequestStatusAccepted   ServiceRequestStatus = "accepted"
	ServiceRequestStatusInProgress ServiceRequestStatus = "in_progress"
	ServiceRequestStatusCompleted  ServiceRequestStatus = "completed"
	ServiceRequestStatusCancelled  ServiceRequestStatus = "cancelled"
	ServiceRequestStatusRejected   ServiceRequestStatus = "rejected"
)

// Terminal reports whether no operation may move the request any further.
func (s ServiceRequestStatus) Terminal() bool {
	switch s {
	case ServiceRequestStatusCompleted, ServiceRequestStatusCancelled, ServiceRequestStatusRejected:
		return true
	}
	return false
}

type MaterialType string

const (
	MaterialPoultryWaste   MaterialType = "Poultry Waste"
	MaterialCoconutHusk    MaterialType = "Coconut Husk"
	MaterialDryLeaves      MaterialType = "Dry Leaves"
	MaterialMixedMaterials MaterialType = "Mixed Materials"
)

func (m MaterialType) Valid() bool {
	switch m {
	case MaterialPoultryWaste, MaterialCoconutHusk, MaterialDryLeaves, MaterialMixedMaterials:
		return true
	}
	return false
}

type Unit string

const (
	UnitKg  Unit = "kg"
	UnitTon Unit = "ton"
)

func (u Unit) Valid() bool {
	return u == UnitKg || u == UnitTon
}

const (
	// RevenuePerUnit is the fixed revenue assumption used for estimates.
	RevenuePerUnit = 20.0

	DefaultServiceChargePercent = 15.0
	MinServiceChargePercent     = 5.0
	MaxServiceChargePercent     = 50.0
	MinServiceRequestQuantity   = 1.0
	MaxServiceRequestNotes      = 1000
	MaxReviewLength             = 500
)

var (
	ErrServiceRequestNotFound    = NewNotFoundError("Service request not found")
	ErrServiceRequestForbidden   = NewAuthorizationError("Not authorized")
	ErrRequestNotAvailable       = NewInvalidStateError("This request is not available")
	ErrRequestMustBeAccepted     = NewInvalidStateError("Request must be accepted first")
	ErrProjectMustBeInProgress   = NewInvalidStateError("Project must be in progress")
	ErrOnlyPendingCanBeCancelled = NewInvalidStateError("Can only cancel pending requests")
	ErrOnlyCompletedCanBeRated   = NewInvalidStateError("Only completed requests can be reviewed")
	ErrServiceRequestRole        = NewAuthorizationError("Only farmers and land owners can access service requests")
)

// ServiceRequest is a farmer's ask for a landowner to process raw material.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (farmer_id-index): farmer_id, created_at
//   - GSI (landowner_id-index): landowner_id, created_at (sparse, absent until accepted)
//   - GSI (status-index): status, created_at
//
// LandownerID is empty until the request is accepted and never changes afterwards.
type ServiceRequest struct {
	ID                   string
	FarmerID             string
	LandownerID          string
	MaterialType         MaterialType
	Quantity             float64
	Unit                 Unit
	ServiceChargePercent float64
	EstimatedRevenue     float64
	ActualRevenue        float64
	Status               ServiceRequestStatus
	Notes                string
	AcceptedAt           *time.Time
	StartedAt            *time.Time
	CompletedAt          *time.Time
	QualityRating        *int
	FarmerReview         string
	LandownerReview      string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewServiceRequestParams holds the caller-supplied fields of a new request.
// Zero values mean "use the default".
type NewServiceRequestParams struct {
	FarmerID             string
	MaterialType         MaterialType
	Quantity             float64
	Unit                 Unit
	ServiceChargePercent *float64
	EstimatedRevenue     float64
	Notes                string
}

// NewServiceRequest validates p and builds a pending request.
func NewServiceRequest(id string, p NewServiceRequestParams, now time.Time) (ServiceRequest, error) {
	if strings.TrimSpace(p.FarmerID) == "" {
		return ServiceRequest{}, NewValidationError("Farmer ID is required")
	}
	if !p.MaterialType.Valid() {
		return ServiceRequest{}, NewValidationError("Invalid material type")
	}
	if p.Quantity < MinServiceRequestQuantity {
		return ServiceRequest{}, NewValidationError("Quantity must be at least 1 kg")
	}
	unit := p.Unit
	if unit == "" {
		unit = UnitKg
	}
	if !unit.Valid() {
		return ServiceRequest{}, NewValidationError("Invalid unit")
	}
	percent := DefaultServiceChargePercent
	if p.ServiceChargePercent != nil {
		percent = *p.ServiceChargePercent
	}
	if percent < MinServiceChargePercent {
		return ServiceRequest{}, NewValidationError("Service charge must be at least 5%")
	}
	if percent > MaxServiceChargePercent {
		return ServiceRequest{}, NewValidationError("Service charge cannot exceed 50%")
	}
	if p.EstimatedRevenue < 0 {
		return ServiceRequest{}, NewValidationError("Estimated revenue cannot be negative")
	}
	if len(p.Notes) > MaxServiceRequestNotes {
		return ServiceRequest{}, NewValidationError("Notes cannot exceed 1000 characters")
	}

	estimated := p.EstimatedRevenue
	if estimated == 0 {
		estimated = p.Quantity * RevenuePerUnit
	}

	return ServiceRequest{
		ID:                   id,
		FarmerID:             p.FarmerID,
		MaterialType:         p.MaterialType,
		Quantity:             p.Quantity,
		Unit:                 unit,
		ServiceChargePercent: percent,
		EstimatedRevenue:     estimated,
		Status:               ServiceRequestStatusPending,
		Notes:                p.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// Accept binds the landowner and moves pending -> accepted.
func (r *ServiceRequest) Accept(landownerID string, now time.Time) error {
	if r.Status != ServiceRequestStatusPending || r.LandownerID != "" {
		return ErrRequestNotAvailable
	}
	r.LandownerID = landownerID
	r.Status = ServiceRequestStatusAccepted
	if r.AcceptedAt == nil {
		r.AcceptedAt = timePtr(now)
	}
	r.UpdatedAt = now
	return nil
}

// Start moves accepted -> in_progress.
func (r *ServiceRequest) Start(now time.Time) error {
	if r.Status != ServiceRequestStatusAccepted {
		return ErrRequestMustBeAccepted
	}
	r.Status = ServiceRequestStatusInProgress
	if r.StartedAt == nil {
		r.StartedAt = timePtr(now)
	}
	r.UpdatedAt = now
	return nil
}

// Complete moves in_progress -> completed and returns the settlement.
// A positive actualRevenue replaces the stored one.
func (r *ServiceRequest) Complete(actualRevenue float64, now time.Time) (Settlement, error) {
	if r.Status != ServiceRequestStatusInProgress {
		return Settlement{}, ErrProjectMustBeInProgress
	}
	if actualRevenue < 0 {
		return Settlement{}, NewValidationError("Actual revenue cannot be negative")
	}
	if actualRevenue > 0 {
		r.ActualRevenue = actualRevenue
	}
	r.Status = ServiceRequestStatusCompleted
	if r.CompletedAt == nil {
		r.CompletedAt = timePtr(now)
	}
	r.UpdatedAt = now
	return CalculateSettlement(*r), nil
}

// Cancel moves pending -> cancelled.
func (r *ServiceRequest) Cancel(now time.Time) error {
	if r.Status != ServiceRequestStatusPending {
		return ErrOnlyPendingCanBeCancelled
	}
	r.Status = ServiceRequestStatusCancelled
	r.UpdatedAt = now
	return nil
}

// Review records the post-completion annotations of one party.
// Only the farmer rates quality.
func (r *ServiceRequest) Review(party UserType, rating *int, review string, now time.Time) error {
	if r.Status != ServiceRequestStatusCompleted {
		return ErrOnlyCompletedCanBeRated
	}
	if len(review) > MaxReviewLength {
		return NewValidationError("Review cannot exceed 500 characters")
	}
	switch party {
	case UserTypeFarmer:
		if rating != nil {
			if *rating < 1 || *rating > 5 {
				return NewValidationError("Quality rating must be between 1 and 5")
			}
			r.QualityRating = intPtr(*rating)
		}
		r.FarmerReview = review
	case UserTypeLandowner:
		if rating != nil {
			return NewValidationError("Only the farmer can rate quality")
		}
		r.LandownerReview = review
	default:
		return ErrServiceRequestRole
	}
	r.UpdatedAt = now
	return nil
}

// BindingField selects which participant of a request an operation is bound to.
type BindingField int

const (
	BindingNone BindingField = iota
	BindingFarmer
	BindingLandowner
)

// BoundParty returns the user id stored in the given binding field.
func (r ServiceRequest) BoundParty(f BindingField) string {
	switch f {
	case BindingFarmer:
		return r.FarmerID
	case BindingLandowner:
		return r.LandownerID
	}
	return ""
}

// Participant reports whether userID is bound to the request in any role.
func (r ServiceRequest) Participant(userID string) bool {
	return userID != "" && (r.FarmerID == userID || r.LandownerID == userID)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func intPtr(v int) *int {
	return &v
}
