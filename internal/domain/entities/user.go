package entities

import (
	"regexp"
	"strings"
	"time"
)

// UserType is the role a user registered with. It never changes.
type UserType string

const (
	UserTypeFarmer    UserType = "farmer"
	UserTypeLandowner UserType = "landowner"
	UserTypeBuyer     UserType = "buyer"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeFarmer, UserTypeLandowner, UserTypeBuyer:
		return true
	}
	return false
}

const (
	DefaultLandownerServiceChargePercent = 15.0
	MinPasswordLength                    = 6
	MaxUserNameLength                    = 50
)

var (
	emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)
	phonePattern = regexp.MustCompile(`^[\+]?[(]?[0-9]{3}[)]?[-\s\.]?[0-9]{3}[-\s\.]?[0-9]{4,6}$`)
)

type FarmerStats struct {
	TotalInventory float64 `json:"totalInventory"`
	TotalSales     float64 `json:"totalSales"`
	ActiveRequests float64 `json:"activeRequests"`
	Revenue        float64 `json:"revenue"`
}

type LandownerStats struct {
	ActiveProjects       float64 `json:"activeProjects"`
	CompletedProjects    float64 `json:"completedProjects"`
	ServiceRevenue       float64 `json:"serviceRevenue"`
	ProductRevenue       float64 `json:"productRevenue"`
	ServiceChargePercent float64 `json:"serviceChargePercent"`
	TotalSales           float64 `json:"totalSales"`
}

type BuyerStats struct {
	TotalPurchases float64 `json:"totalPurchases"`
	Spent          float64 `json:"spent"`
	ActiveOrders   float64 `json:"activeOrders"`
}

// User is an account of the marketplace.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (email-index): email
//
// Stats are running counters mutated only through StatField deltas so that
// concurrent updates never overwrite each other.
type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Phone          string
	UserType       UserType
	Location       string
	FarmerStats    FarmerStats
	LandownerStats LandownerStats
	BuyerStats     BuyerStats
	IsActive       bool
	IsVerified     bool
	LastLogin      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Stats returns the counters that belong to the user's role.
func (u User) Stats() any {
	switch u.UserType {
	case UserTypeFarmer:
		return u.FarmerStats
	case UserTypeLandowner:
		return u.LandownerStats
	default:
		return u.BuyerStats
	}
}

// StatField names a counter in the account store.
type StatField string

const (
	StatFarmerTotalInventory StatField = "farmer_total_inventory"
	StatFarmerTotalSales     StatField = "farmer_total_sales"
	StatFarmerActiveRequests StatField = "farmer_active_requests"
	StatFarmerRevenue        StatField = "farmer_revenue"

	StatLandownerActiveProjects    StatField = "landowner_active_projects"
	StatLandownerCompletedProjects StatField = "landowner_completed_projects"
	StatLandownerServiceRevenue    StatField = "landowner_service_revenue"
	StatLandownerProductRevenue    StatField = "landowner_product_revenue"
	StatLandownerTotalSales        StatField = "landowner_total_sales"

	StatBuyerTotalPurchases StatField = "buyer_total_purchases"
	StatBuyerSpent          StatField = "buyer_spent"
	StatBuyerActiveOrders   StatField = "buyer_active_orders"
)

// StatDeltas maps counters to the amount they change by.
type StatDeltas map[StatField]float64

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks the fields a new account needs.
func ValidateRegistration(name, email, password, phone string, userType UserType, location string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return NewValidationError("Please provide a name")
	case len(name) > MaxUserNameLength:
		return NewValidationError("Name cannot be more than 50 characters")
	case !emailPattern.MatchString(NormalizeEmail(email)):
		return NewValidationError("Please provide a valid email")
	case len(password) < MinPasswordLength:
		return NewValidationError("Password must be at least 6 characters")
	case !phonePattern.MatchString(strings.TrimSpace(phone)):
		return NewValidationError("Please provide a valid phone number")
	case !userType.Valid():
		return NewValidationError("User type must be either farmer, landowner, or buyer")
	case strings.TrimSpace(location) == "":
		return NewValidationError("Please provide your location")
	}
	return nil
}

// ValidatePhone is used by profile updates.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(strings.TrimSpace(phone)) {
		return NewValidationError("Please provide a valid phone number")
	}
	return nil
}

// Caller is the authenticated identity an operation runs on behalf of.
type Caller struct {
	UserID   string
	UserType UserType
}
