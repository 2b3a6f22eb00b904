package entities

// ServiceRequestEvent is emitted by the lifecycle manager after a transition
// has been persisted. The account ledger turns events into counter deltas.
type ServiceRequestEvent interface {
	RequestID() string
	// Deltas returns the counter changes per user id.
	Deltas() map[string]StatDeltas
}

type RequestCreated struct {
	ServiceRequestID string
	FarmerID         string
}

func (e RequestCreated) RequestID() string { return e.ServiceRequestID }

func (e RequestCreated) Deltas() map[string]StatDeltas {
	return map[string]StatDeltas{
		e.FarmerID: {StatFarmerActiveRequests: 1},
	}
}

type RequestAccepted struct {
	ServiceRequestID string
	LandownerID      string
}

func (e RequestAccepted) RequestID() string { return e.ServiceRequestID }

func (e RequestAccepted) Deltas() map[string]StatDeltas {
	return map[string]StatDeltas{
		e.LandownerID: {StatLandownerActiveProjects: 1},
	}
}

type RequestCompleted struct {
	ServiceRequestID string
	FarmerID         string
	LandownerID      string
	FarmerEarnings   float64
	ServiceCharge    float64
}

func (e RequestCompleted) RequestID() string { return e.ServiceRequestID }

func (e RequestCompleted) Deltas() map[string]StatDeltas {
	return map[string]StatDeltas{
		e.LandownerID: {
			StatLandownerCompletedProjects: 1,
			StatLandownerActiveProjects:    -1,
			StatLandownerServiceRevenue:    e.ServiceCharge,
		},
		e.FarmerID: {
			StatFarmerActiveRequests: -1,
			StatFarmerRevenue:        e.FarmerEarnings,
		},
	}
}

type RequestCancelled struct {
	ServiceRequestID string
	FarmerID         string
}

func (e RequestCancelled) RequestID() string { return e.ServiceRequestID }

func (e RequestCancelled) Deltas() map[string]StatDeltas {
	return map[string]StatDeltas{
		e.FarmerID: {StatFarmerActiveRequests: -1},
	}
}
