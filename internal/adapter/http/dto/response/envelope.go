package response

import "vermafarm/internal/domain/entities"

// Envelope is the body of every successful response. Optional members are
// omitted when unset; Count is a pointer so that an empty list still reports 0.
type Envelope struct {
	Success       bool                    `json:"success"`
	Message       string                  `json:"message,omitempty"`
	Count         *int                    `json:"count,omitempty"`
	TotalQuantity *float64                `json:"totalQuantity,omitempty"`
	Totals        *entities.ListingTotals `json:"totals,omitempty"`
	Token         string                  `json:"token,omitempty"`
	User          *UserResponse           `json:"user,omitempty"`
	Earnings      *EarningsResponse       `json:"earnings,omitempty"`
	Data          any                     `json:"data,omitempty"`
}

type EarningsResponse struct {
	Landowner float64 `json:"landowner"`
	Farmer    float64 `json:"farmer"`
}

// OK wraps a single payload.
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// List wraps a collection and reports its size.
func List[T any](items []T) Envelope {
	n := len(items)
	if items == nil {
		items = []T{}
	}
	return Envelope{Success: true, Count: &n, Data: items}
}

// Empty is used by endpoints that answer with `data: {}`.
func Empty(message string) Envelope {
	return Envelope{Success: true, Message: message, Data: struct{}{}}
}

// WithToken is the login/registration shape: token plus the public profile.
func WithToken(message, token string, u entities.User) Envelope {
	user := FromUser(u)
	return Envelope{Success: true, Message: message, Token: token, User: &user}
}

func FromSettlement(s entities.Settlement) *EarningsResponse {
	return &EarningsResponse{Landowner: s.ServiceCharge, Farmer: s.FarmerEarnings}
}
