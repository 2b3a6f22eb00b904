package entities

// Settlement is the revenue split computed when a request completes.
type Settlement struct {
	Revenue        float64
	ServiceCharge  float64
	FarmerEarnings float64
}

// CalculateSettlement splits the realized revenue of r between the landowner's
// service charge and the farmer's earnings. ServiceCharge+FarmerEarnings == Revenue.
func CalculateSettlement(r ServiceRequest) Settlement {
	revenue := r.EstimatedRevenue
	if r.ActualRevenue > 0 {
		revenue = r.ActualRevenue
	}
	charge := revenue * r.ServiceChargePercent / 100
	return Settlement{
		Revenue:        revenue,
		ServiceCharge:  charge,
		FarmerEarnings: revenue - charge,
	}
}
