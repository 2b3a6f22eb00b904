package response

import (
	"time"

	"vermafarm/internal/domain/entities"
)

type ServiceRequestResponse struct {
	ID                   string     `json:"id"`
	FarmerID             string     `json:"farmerId"`
	LandownerID          *string    `json:"landownerId"`
	MaterialType         string     `json:"materialType"`
	Quantity             float64    `json:"quantity"`
	Unit                 string     `json:"unit"`
	ServiceChargePercent float64    `json:"serviceChargePercent"`
	EstimatedRevenue     float64    `json:"estimatedRevenue"`
	ActualRevenue        float64    `json:"actualRevenue"`
	Status               string     `json:"status"`
	Notes                string     `json:"notes,omitempty"`
	AcceptedAt           *time.Time `json:"acceptedAt,omitempty"`
	StartedAt            *time.Time `json:"startedAt,omitempty"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
	QualityRating        *int       `json:"qualityRating,omitempty"`
	FarmerReview         string     `json:"farmerReview,omitempty"`
	LandownerReview      string     `json:"landownerReview,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// FromServiceRequest renders an unbound request with landownerId null.
func FromServiceRequest(r entities.ServiceRequest) ServiceRequestResponse {
	res := ServiceRequestResponse{
		ID:                   r.ID,
		FarmerID:             r.FarmerID,
		MaterialType:         string(r.MaterialType),
		Quantity:             r.Quantity,
		Unit:                 string(r.Unit),
		ServiceChargePercent: r.ServiceChargePercent,
		EstimatedRevenue:     r.EstimatedRevenue,
		ActualRevenue:        r.ActualRevenue,
		Status:               string(r.Status),
		Notes:                r.Notes,
		AcceptedAt:           r.AcceptedAt,
		StartedAt:            r.StartedAt,
		CompletedAt:          r.CompletedAt,
		QualityRating:        r.QualityRating,
		FarmerReview:         r.FarmerReview,
		LandownerReview:      r.LandownerReview,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
	if r.LandownerID != "" {
		id := r.LandownerID
		res.LandownerID = &id
	}
	return res
}

func FromServiceRequests(rs []entities.ServiceRequest) []ServiceRequestResponse {
	out := make([]ServiceRequestResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromServiceRequest(r))
	}
	return out
}
