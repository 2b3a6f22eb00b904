package repository

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// userItem flattens the role counters into top-level numeric attributes named
// after entities.StatField so they can be updated with ADD.
type userItem struct {
	ID           string `dynamodbav:"id"`
	Name         string `dynamodbav:"name"`
	Email        string `dynamodbav:"email"`
	PasswordHash string `dynamodbav:"password_hash"`
	Phone        string `dynamodbav:"phone"`
	UserType     string `dynamodbav:"user_type"`
	Location     string `dynamodbav:"location"`

	FarmerTotalInventory float64 `dynamodbav:"farmer_total_inventory"`
	FarmerTotalSales     float64 `dynamodbav:"farmer_total_sales"`
	FarmerActiveRequests float64 `dynamodbav:"farmer_active_requests"`
	FarmerRevenue        float64 `dynamodbav:"farmer_revenue"`

	LandownerActiveProjects       float64 `dynamodbav:"landowner_active_projects"`
	LandownerCompletedProjects    float64 `dynamodbav:"landowner_completed_projects"`
	LandownerServiceRevenue       float64 `dynamodbav:"landowner_service_revenue"`
	LandownerProductRevenue       float64 `dynamodbav:"landowner_product_revenue"`
	LandownerServiceChargePercent float64 `dynamodbav:"landowner_service_charge_percent"`
	LandownerTotalSales           float64 `dynamodbav:"landowner_total_sales"`

	BuyerTotalPurchases float64 `dynamodbav:"buyer_total_purchases"`
	BuyerSpent          float64 `dynamodbav:"buyer_spent"`
	BuyerActiveOrders   float64 `dynamodbav:"buyer_active_orders"`

	IsActive   bool   `dynamodbav:"is_active"`
	IsVerified bool   `dynamodbav:"is_verified"`
	LastLogin  string `dynamodbav:"last_login,omitempty"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

// UserDynamoRepository persists User entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: email-index (email)
type UserDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb dynamoAPI) *UserDynamoRepository {
	return &UserDynamoRepository{
		ddb:       ddb,
		tableName: usersTable(),
	}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	av, err := attributevalue.MarshalMap(toUserItem(u))
	if err != nil {
		return entities.User{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.User{}, nil
		}
		return entities.User{}, err
	}
	return u, nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}
	return decodeUser(out.Item)
}

func (r *UserDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.User, error) {
	in := indexQuery(r.tableName, emailIndex, "email", email)
	in.Limit = aws.Int32(1)
	out, err := r.ddb.Query(ctx, in)
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Items) == 0 {
		return entities.User{}, nil
	}
	return decodeUser(out.Items[0])
}

func (r *UserDynamoRepository) UpdateProfile(ctx context.Context, u entities.User) (entities.User, error) {
	expr := "SET #name = :name, #phone = :phone, #location = :location, #pct = :pct, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":name":       stringValue(u.Name),
		":phone":      stringValue(u.Phone),
		":location":   stringValue(u.Location),
		":pct":        numberValue(u.LandownerStats.ServiceChargePercent),
		":updated_at": stringValue(formatTime(u.UpdatedAt)),
	}
	names := map[string]string{
		"#name":       "name",
		"#phone":      "phone",
		"#location":   "location",
		"#pct":        "landowner_service_charge_percent",
		"#updated_at": "updated_at",
	}
	return r.update(ctx, u.ID, expr, vals, names)
}

func (r *UserDynamoRepository) UpdatePassword(ctx context.Context, id, passwordHash string) (entities.User, error) {
	expr := "SET #password_hash = :password_hash, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":password_hash": stringValue(passwordHash),
		":updated_at":    stringValue(formatTime(time.Now())),
	}
	names := map[string]string{
		"#password_hash": "password_hash",
		"#updated_at":    "updated_at",
	}
	return r.update(ctx, id, expr, vals, names)
}

func (r *UserDynamoRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	u, err := r.update(ctx, id, "SET #last_login = :last_login", map[string]types.AttributeValue{
		":last_login": stringValue(formatTime(at)),
	}, map[string]string{
		"#last_login": "last_login",
	})
	if err != nil {
		return err
	}
	if u.ID == "" {
		return fmt.Errorf("user %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// IncrementStats applies every delta in one UpdateItem using ADD, so
// concurrent callers never lose each other's updates.
func (r *UserDynamoRepository) IncrementStats(ctx context.Context, id string, deltas entities.StatDeltas) error {
	if len(deltas) == 0 {
		return nil
	}
	fields := make([]entities.StatField, 0, len(deltas))
	for f := range deltas {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	expr := "SET #updated_at = :updated_at ADD "
	vals := map[string]types.AttributeValue{
		":updated_at": stringValue(formatTime(time.Now())),
	}
	names := map[string]string{
		"#updated_at": "updated_at",
	}
	for i, f := range fields {
		n, v := "#s"+strconv.Itoa(i), ":s"+strconv.Itoa(i)
		if i > 0 {
			expr += ", "
		}
		expr += n + " " + v
		names[n] = string(f)
		vals[v] = numberValue(deltas[f])
	}

	u, err := r.update(ctx, id, expr, vals, names)
	if err != nil {
		return err
	}
	if u.ID == "" {
		return fmt.Errorf("user %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

func (r *UserDynamoRepository) SetStat(ctx context.Context, id string, field entities.StatField, value float64) error {
	u, err := r.update(ctx, id, "SET #stat = :stat", map[string]types.AttributeValue{
		":stat": numberValue(value),
	}, map[string]string{
		"#stat": string(field),
	})
	if err != nil {
		return err
	}
	if u.ID == "" {
		return fmt.Errorf("user %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

func (r *UserDynamoRepository) update(
	ctx context.Context,
	id string,
	updateExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.User, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.User{}, nil
		}
		return entities.User{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.User{}, nil
	}
	return decodeUser(out.Attributes)
}

func decodeUser(av map[string]types.AttributeValue) (entities.User, error) {
	var it userItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func toUserItem(u entities.User) userItem {
	return userItem{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Phone:        u.Phone,
		UserType:     string(u.UserType),
		Location:     u.Location,

		FarmerTotalInventory: u.FarmerStats.TotalInventory,
		FarmerTotalSales:     u.FarmerStats.TotalSales,
		FarmerActiveRequests: u.FarmerStats.ActiveRequests,
		FarmerRevenue:        u.FarmerStats.Revenue,

		LandownerActiveProjects:       u.LandownerStats.ActiveProjects,
		LandownerCompletedProjects:    u.LandownerStats.CompletedProjects,
		LandownerServiceRevenue:       u.LandownerStats.ServiceRevenue,
		LandownerProductRevenue:       u.LandownerStats.ProductRevenue,
		LandownerServiceChargePercent: u.LandownerStats.ServiceChargePercent,
		LandownerTotalSales:           u.LandownerStats.TotalSales,

		BuyerTotalPurchases: u.BuyerStats.TotalPurchases,
		BuyerSpent:          u.BuyerStats.Spent,
		BuyerActiveOrders:   u.BuyerStats.ActiveOrders,

		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		LastLogin:  formatTime(u.LastLogin),
		CreatedAt:  formatTime(u.CreatedAt),
		UpdatedAt:  formatTime(u.UpdatedAt),
	}
}

func fromUserItem(it userItem) entities.User {
	return entities.User{
		ID:           it.ID,
		Name:         it.Name,
		Email:        it.Email,
		PasswordHash: it.PasswordHash,
		Phone:        it.Phone,
		UserType:     entities.UserType(it.UserType),
		Location:     it.Location,
		FarmerStats: entities.FarmerStats{
			TotalInventory: it.FarmerTotalInventory,
			TotalSales:     it.FarmerTotalSales,
			ActiveRequests: it.FarmerActiveRequests,
			Revenue:        it.FarmerRevenue,
		},
		LandownerStats: entities.LandownerStats{
			ActiveProjects:       it.LandownerActiveProjects,
			CompletedProjects:    it.LandownerCompletedProjects,
			ServiceRevenue:       it.LandownerServiceRevenue,
			ProductRevenue:       it.LandownerProductRevenue,
			ServiceChargePercent: it.LandownerServiceChargePercent,
			TotalSales:           it.LandownerTotalSales,
		},
		BuyerStats: entities.BuyerStats{
			TotalPurchases: it.BuyerTotalPurchases,
			Spent:          it.BuyerSpent,
			ActiveOrders:   it.BuyerActiveOrders,
		},
		IsActive:   it.IsActive,
		IsVerified: it.IsVerified,
		LastLogin:  parseTime(it.LastLogin),
		CreatedAt:  parseTime(it.CreatedAt),
		UpdatedAt:  parseTime(it.UpdatedAt),
	}
}
