package repository

import (
	"context"
	"time"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

type listingItem struct {
	ID                   string   `dynamodbav:"id"`
	SellerID             string   `dynamodbav:"seller_id"`
	Category             string   `dynamodbav:"category"`
	ProductName          string   `dynamodbav:"product_name"`
	Description          string   `dynamodbav:"description,omitempty"`
	QuantityAvailable    float64  `dynamodbav:"quantity_available"`
	Unit                 string   `dynamodbav:"unit"`
	PricePerUnit         float64  `dynamodbav:"price_per_unit"`
	Images               []string `dynamodbav:"images"`
	Status               string   `dynamodbav:"status"`
	TotalSold            float64  `dynamodbav:"total_sold"`
	QualityGrade         string   `dynamodbav:"quality_grade"`
	IsCertified          bool     `dynamodbav:"is_certified"`
	CertificationDetails string   `dynamodbav:"certification_details,omitempty"`
	PickupLocation       string   `dynamodbav:"pickup_location,omitempty"`
	DeliveryAvailable    bool     `dynamodbav:"delivery_available"`
	DeliveryRadius       float64  `dynamodbav:"delivery_radius"`
	DeliveryCharge       float64  `dynamodbav:"delivery_charge"`
	Views                int      `dynamodbav:"views"`
	Inquiries            int      `dynamodbav:"inquiries"`
	AverageRating        float64  `dynamodbav:"average_rating"`
	TotalReviews         int      `dynamodbav:"total_reviews"`
	IsActive             bool     `dynamodbav:"is_active"`
	ExpiresAt            string   `dynamodbav:"expires_at,omitempty"`
	CreatedAt            string   `dynamodbav:"created_at"`
	UpdatedAt            string   `dynamodbav:"updated_at"`
}

// ListingDynamoRepository persists Listing entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSIs: seller_id-index, status-index, each with created_at as sort key
//
// Counters (views, inquiries, total_sold) and stock are only changed with
// ADD/arithmetic updates, never by rewriting the whole item.
type ListingDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IListingRepository = (*ListingDynamoRepository)(nil)

func NewListingDynamoRepository(ddb dynamoAPI) *ListingDynamoRepository {
	return &ListingDynamoRepository{
		ddb:       ddb,
		tableName: listingsTable(),
	}
}

func (r *ListingDynamoRepository) Create(ctx context.Context, l entities.Listing) (entities.Listing, error) {
	av, err := attributevalue.MarshalMap(toListingItem(l))
	if err != nil {
		return entities.Listing{}, err
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
		return entities.Listing{}, err
	}
	return l, nil
}

func (r *ListingDynamoRepository) GetByID(ctx context.Context, id string) (entities.Listing, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Listing{}, err
	}
	if len(out.Item) == 0 {
		return entities.Listing{}, nil
	}
	return decodeListing(out.Item)
}

// Update writes the seller-editable fields of l, conditional on the stored
// seller being l.SellerID.
func (r *ListingDynamoRepository) Update(ctx context.Context, l entities.Listing) (entities.Listing, error) {
	images, err := attributevalue.Marshal(l.Images)
	if err != nil {
		return entities.Listing{}, err
	}

	expr := "SET #category = :category, #product_name = :product_name, #description = :description, " +
		"#quantity_available = :quantity_available, #unit = :unit, #price_per_unit = :price_per_unit, " +
		"#images = :images, #status = :status, #quality_grade = :quality_grade, #is_certified = :is_certified, " +
		"#certification_details = :certification_details, #pickup_location = :pickup_location, " +
		"#delivery_available = :delivery_available, #delivery_radius = :delivery_radius, " +
		"#delivery_charge = :delivery_charge, #is_active = :is_active, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":category":              stringValue(string(l.Category)),
		":product_name":          stringValue(l.ProductName),
		":description":           stringValue(l.Description),
		":quantity_available":    numberValue(l.QuantityAvailable),
		":unit":                  stringValue(string(l.Unit)),
		":price_per_unit":        numberValue(l.PricePerUnit),
		":images":                images,
		":status":                stringValue(string(l.Status)),
		":quality_grade":         stringValue(string(l.QualityGrade)),
		":is_certified":          boolValue(l.IsCertified),
		":certification_details": stringValue(l.CertificationDetails),
		":pickup_location":       stringValue(l.PickupLocation),
		":delivery_available":    boolValue(l.DeliveryAvailable),
		":delivery_radius":       numberValue(l.DeliveryRadius),
		":delivery_charge":       numberValue(l.DeliveryCharge),
		":is_active":             boolValue(l.IsActive),
		":updated_at":            stringValue(formatTime(l.UpdatedAt)),
		":seller":                stringValue(l.SellerID),
	}
	names := map[string]string{
		"#category":              "category",
		"#product_name":          "product_name",
		"#description":           "description",
		"#quantity_available":    "quantity_available",
		"#unit":                  "unit",
		"#price_per_unit":        "price_per_unit",
		"#images":                "images",
		"#status":                "status",
		"#quality_grade":         "quality_grade",
		"#is_certified":          "is_certified",
		"#certification_details": "certification_details",
		"#pickup_location":       "pickup_location",
		"#delivery_available":    "delivery_available",
		"#delivery_radius":       "delivery_radius",
		"#delivery_charge":       "delivery_charge",
		"#is_active":             "is_active",
		"#updated_at":            "updated_at",
		"#seller_id":             "seller_id",
		"#expires_at":            "expires_at",
	}
	if l.ExpiresAt != nil {
		expr += ", #expires_at = :expires_at"
		vals[":expires_at"] = stringValue(formatTimePtr(l.ExpiresAt))
	} else {
		expr += " REMOVE #expires_at"
	}

	return r.update(ctx, l.ID, "#seller_id = :seller", expr, vals, names)
}

func (r *ListingDynamoRepository) Delete(ctx context.Context, id, sellerID string) (bool, error) {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id) AND #seller_id = :seller"),
		ExpressionAttributeNames: map[string]string{
			"#id":        "id",
			"#seller_id": "seller_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":seller": stringValue(sellerID),
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListVisible returns active listings that have not been hidden by their seller.
func (r *ListingDynamoRepository) ListVisible(ctx context.Context) ([]entities.Listing, error) {
	in := indexQuery(r.tableName, statusIndex, "status", string(entities.ListingStatusActive))
	in.FilterExpression = aws.String("#is_active = :true")
	in.ExpressionAttributeNames["#is_active"] = "is_active"
	in.ExpressionAttributeValues[":true"] = boolValue(true)
	return r.list(ctx, in)
}

func (r *ListingDynamoRepository) ListBySeller(ctx context.Context, sellerID string) ([]entities.Listing, error) {
	return r.list(ctx, indexQuery(r.tableName, sellerIDIndex, "seller_id", sellerID))
}

func (r *ListingDynamoRepository) IncrementCounter(ctx context.Context, id string, counter interfaces.ListingCounter) (entities.Listing, error) {
	return r.update(ctx, id, "", "ADD #counter :one", map[string]types.AttributeValue{
		":one": numberValue(1),
	}, map[string]string{
		"#counter": string(counter),
	})
}

// ReserveStock takes quantity units out of an active listing and counts them
// as sold, failing (empty result) when not enough stock is left. A listing
// drained to zero is flipped to sold_out.
func (r *ListingDynamoRepository) ReserveStock(ctx context.Context, id string, quantity float64, now time.Time) (entities.Listing, error) {
	reserved, err := r.update(ctx, id,
		"#status = :active AND #is_active = :true AND #qty >= :q",
		"SET #qty = #qty - :q, #updated_at = :now ADD #total_sold :q",
		map[string]types.AttributeValue{
			":q":      numberValue(quantity),
			":active": stringValue(string(entities.ListingStatusActive)),
			":true":   boolValue(true),
			":now":    stringValue(formatTime(now)),
		},
		map[string]string{
			"#qty":        "quantity_available",
			"#status":     "status",
			"#is_active":  "is_active",
			"#updated_at": "updated_at",
			"#total_sold": "total_sold",
		},
	)
	if err != nil || reserved.ID == "" || reserved.QuantityAvailable > 0 {
		return reserved, err
	}

	soldOut, err := r.update(ctx, id,
		"#qty = :zero AND #status = :active",
		"SET #status = :sold_out",
		map[string]types.AttributeValue{
			":zero":     numberValue(0),
			":active":   stringValue(string(entities.ListingStatusActive)),
			":sold_out": stringValue(string(entities.ListingStatusSoldOut)),
		},
		map[string]string{
			"#qty":    "quantity_available",
			"#status": "status",
		},
	)
	if err != nil {
		// The reservation itself is committed; the status catches up on the
		// next seller update.
		logrus.WithError(err).WithField("listing_id", id).Warn("[marketplace][repository] failed to mark listing sold out")
		return reserved, nil
	}
	if soldOut.ID == "" {
		return reserved, nil
	}
	return soldOut, nil
}

// ReleaseStock reverses a ReserveStock of the same quantity. A listing that
// the reservation had sold out becomes active again.
func (r *ListingDynamoRepository) ReleaseStock(ctx context.Context, id string, quantity float64, now time.Time) (entities.Listing, error) {
	released, err := r.update(ctx, id,
		"#total_sold >= :q",
		"SET #qty = #qty + :q, #updated_at = :now ADD #total_sold :neg",
		map[string]types.AttributeValue{
			":q":   numberValue(quantity),
			":neg": numberValue(-quantity),
			":now": stringValue(formatTime(now)),
		},
		map[string]string{
			"#qty":        "quantity_available",
			"#updated_at": "updated_at",
			"#total_sold": "total_sold",
		},
	)
	if err != nil || released.ID == "" || released.Status != entities.ListingStatusSoldOut {
		return released, err
	}

	reopened, err := r.update(ctx, id,
		"#status = :sold_out AND #qty > :zero",
		"SET #status = :active",
		map[string]types.AttributeValue{
			":zero":     numberValue(0),
			":active":   stringValue(string(entities.ListingStatusActive)),
			":sold_out": stringValue(string(entities.ListingStatusSoldOut)),
		},
		map[string]string{
			"#qty":    "quantity_available",
			"#status": "status",
		},
	)
	if err != nil || reopened.ID == "" {
		return released, err
	}
	return reopened, nil
}

func (r *ListingDynamoRepository) list(ctx context.Context, in *dynamodb.QueryInput) ([]entities.Listing, error) {
	avs, err := queryAll(ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Listing, 0, len(avs))
	for _, av := range avs {
		l, err := decodeListing(av)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *ListingDynamoRepository) update(
	ctx context.Context,
	id string,
	cond string,
	updateExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.Listing, error) {
	condition := "attribute_exists(#id)"
	if cond != "" {
		condition += " AND " + cond
	}
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Listing{}, nil
		}
		return entities.Listing{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Listing{}, nil
	}
	return decodeListing(out.Attributes)
}

func decodeListing(av map[string]types.AttributeValue) (entities.Listing, error) {
	var it listingItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Listing{}, err
	}
	return fromListingItem(it), nil
}

func toListingItem(l entities.Listing) listingItem {
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return listingItem{
		ID:                   l.ID,
		SellerID:             l.SellerID,
		Category:             string(l.Category),
		ProductName:          l.ProductName,
		Description:          l.Description,
		QuantityAvailable:    l.QuantityAvailable,
		Unit:                 string(l.Unit),
		PricePerUnit:         l.PricePerUnit,
		Images:               images,
		Status:               string(l.Status),
		TotalSold:            l.TotalSold,
		QualityGrade:         string(l.QualityGrade),
		IsCertified:          l.IsCertified,
		CertificationDetails: l.CertificationDetails,
		PickupLocation:       l.PickupLocation,
		DeliveryAvailable:    l.DeliveryAvailable,
		DeliveryRadius:       l.DeliveryRadius,
		DeliveryCharge:       l.DeliveryCharge,
		Views:                l.Views,
		Inquiries:            l.Inquiries,
		AverageRating:        l.AverageRating,
		TotalReviews:         l.TotalReviews,
		IsActive:             l.IsActive,
		ExpiresAt:            formatTimePtr(l.ExpiresAt),
		CreatedAt:            formatTime(l.CreatedAt),
		UpdatedAt:            formatTime(l.UpdatedAt),
	}
}

func fromListingItem(it listingItem) entities.Listing {
	images := it.Images
	if images == nil {
		images = []string{}
	}
	return entities.Listing{
		ID:                   it.ID,
		SellerID:             it.SellerID,
		Category:             entities.InventoryType(it.Category),
		ProductName:          it.ProductName,
		Description:          it.Description,
		QuantityAvailable:    it.QuantityAvailable,
		Unit:                 entities.Unit(it.Unit),
		PricePerUnit:         it.PricePerUnit,
		Images:               images,
		Status:               entities.ListingStatus(it.Status),
		TotalSold:            it.TotalSold,
		QualityGrade:         entities.QualityGrade(it.QualityGrade),
		IsCertified:          it.IsCertified,
		CertificationDetails: it.CertificationDetails,
		PickupLocation:       it.PickupLocation,
		DeliveryAvailable:    it.DeliveryAvailable,
		DeliveryRadius:       it.DeliveryRadius,
		DeliveryCharge:       it.DeliveryCharge,
		Views:                it.Views,
		Inquiries:            it.Inquiries,
		AverageRating:        it.AverageRating,
		TotalReviews:         it.TotalReviews,
		IsActive:             it.IsActive,
		ExpiresAt:            parseTimePtr(it.ExpiresAt),
		CreatedAt:            parseTime(it.CreatedAt),
		UpdatedAt:            parseTime(it.UpdatedAt),
	}
}
