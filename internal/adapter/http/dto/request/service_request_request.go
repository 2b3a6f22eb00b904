package request

import (
	"strings"

	"vermafarm/internal/domain/entities"
)

type CreateServiceRequestRequest struct {
	MaterialType         string   `json:"materialType" binding:"required"`
	Quantity             float64  `json:"quantity"`
	Unit                 string   `json:"unit"`
	ServiceChargePercent *float64 `json:"serviceChargePercent"`
	EstimatedRevenue     float64  `json:"estimatedRevenue"`
	Notes                string   `json:"notes"`
}

// ToParams leaves FarmerID empty; the use case takes it from the caller.
func (r CreateServiceRequestRequest) ToParams() entities.NewServiceRequestParams {
	return entities.NewServiceRequestParams{
		MaterialType:         entities.MaterialType(strings.TrimSpace(r.MaterialType)),
		Quantity:             r.Quantity,
		Unit:                 entities.Unit(strings.TrimSpace(r.Unit)),
		ServiceChargePercent: r.ServiceChargePercent,
		EstimatedRevenue:     r.EstimatedRevenue,
		Notes:                strings.TrimSpace(r.Notes),
	}
}

// CompleteServiceRequestRequest is optional; an empty body completes with
// the estimated revenue.
type CompleteServiceRequestRequest struct {
	ActualRevenue *float64 `json:"actualRevenue" binding:"omitempty,gte=0"`
}

func (r CompleteServiceRequestRequest) Revenue() float64 {
	if r.ActualRevenue == nil {
		return 0
	}
	return *r.ActualRevenue
}

type ReviewServiceRequestRequest struct {
	QualityRating *int   `json:"qualityRating" binding:"omitempty,min=1,max=5"`
	Review        string `json:"review"`
}
