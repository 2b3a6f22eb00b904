package repository

import (
	"context"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type serviceRequestItem struct {
	ID                   string  `dynamodbav:"id"`
	FarmerID             string  `dynamodbav:"farmer_id"`
	LandownerID          string  `dynamodbav:"landowner_id,omitempty"`
	MaterialType         string  `dynamodbav:"material_type"`
	Quantity             float64 `dynamodbav:"quantity"`
	Unit                 string  `dynamodbav:"unit"`
	ServiceChargePercent float64 `dynamodbav:"service_charge_percent"`
	EstimatedRevenue     float64 `dynamodbav:"estimated_revenue"`
	ActualRevenue        float64 `dynamodbav:"actual_revenue"`
	Status               string  `dynamodbav:"status"`
	Notes                string  `dynamodbav:"notes,omitempty"`
	AcceptedAt           string  `dynamodbav:"accepted_at,omitempty"`
	StartedAt            string  `dynamodbav:"started_at,omitempty"`
	CompletedAt          string  `dynamodbav:"completed_at,omitempty"`
	QualityRating        *int    `dynamodbav:"quality_rating,omitempty"`
	FarmerReview         string  `dynamodbav:"farmer_review,omitempty"`
	LandownerReview      string  `dynamodbav:"landowner_review,omitempty"`
	CreatedAt            string  `dynamodbav:"created_at"`
	UpdatedAt            string  `dynamodbav:"updated_at"`
}

// ServiceRequestDynamoRepository persists ServiceRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSIs: farmer_id-index, landowner_id-index (sparse), status-index,
//     each with created_at as sort key
//
// landowner_id is left out of the item until acceptance so that open requests
// never appear in landowner_id-index.
type ServiceRequestDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IServiceRequestRepository = (*ServiceRequestDynamoRepository)(nil)

func NewServiceRequestDynamoRepository(ddb dynamoAPI) *ServiceRequestDynamoRepository {
	return &ServiceRequestDynamoRepository{
		ddb:       ddb,
		tableName: serviceRequestsTable(),
	}
}

func (r *ServiceRequestDynamoRepository) Create(ctx context.Context, sr entities.ServiceRequest) (entities.ServiceRequest, error) {
	av, err := attributevalue.MarshalMap(toServiceRequestItem(sr))
	if err != nil {
		return entities.ServiceRequest{}, err
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
		return entities.ServiceRequest{}, err
	}
	return sr, nil
}

func (r *ServiceRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceRequest{}, nil
	}
	return decodeServiceRequest(out.Item)
}

// ApplyTransition writes the lifecycle fields of sr only if the stored status
// still equals from. Leaving pending additionally requires that no landowner
// was bound in the meantime; later transitions require the same landowner.
func (r *ServiceRequestDynamoRepository) ApplyTransition(ctx context.Context, sr entities.ServiceRequest, from entities.ServiceRequestStatus) (entities.ServiceRequest, error) {
	expr := "SET #status = :status, #actual_revenue = :actual_revenue, #updated_at = :updated_at"
	cond := "#status = :from"
	vals := map[string]types.AttributeValue{
		":status":         stringValue(string(sr.Status)),
		":actual_revenue": numberValue(sr.ActualRevenue),
		":updated_at":     stringValue(formatTime(sr.UpdatedAt)),
		":from":           stringValue(string(from)),
	}
	names := map[string]string{
		"#status":         "status",
		"#actual_revenue": "actual_revenue",
		"#updated_at":     "updated_at",
	}

	if sr.LandownerID != "" {
		names["#landowner_id"] = "landowner_id"
		vals[":landowner_id"] = stringValue(sr.LandownerID)
		if from == entities.ServiceRequestStatusPending {
			expr += ", #landowner_id = :landowner_id"
			cond += " AND attribute_not_exists(#landowner_id)"
		} else {
			cond += " AND #landowner_id = :landowner_id"
		}
	}

	for _, ts := range []struct {
		attr string
		at   string
	}{
		{"accepted_at", formatTimePtr(sr.AcceptedAt)},
		{"started_at", formatTimePtr(sr.StartedAt)},
		{"completed_at", formatTimePtr(sr.CompletedAt)},
	} {
		if ts.at == "" {
			continue
		}
		// Timestamps are written once: keep the stored value if there is one.
		expr += ", #" + ts.attr + " = if_not_exists(#" + ts.attr + ", :" + ts.attr + ")"
		names["#"+ts.attr] = ts.attr
		vals[":"+ts.attr] = stringValue(ts.at)
	}

	return r.update(ctx, sr.ID, cond, expr, vals, names)
}

// SaveReview writes the reviewing party's annotations on a completed request.
// The other party's review is left untouched so concurrent reviews both land.
func (r *ServiceRequestDynamoRepository) SaveReview(ctx context.Context, sr entities.ServiceRequest, party entities.UserType) (entities.ServiceRequest, error) {
	vals := map[string]types.AttributeValue{
		":updated_at": stringValue(formatTime(sr.UpdatedAt)),
		":completed":  stringValue(string(entities.ServiceRequestStatusCompleted)),
	}
	names := map[string]string{
		"#updated_at": "updated_at",
		"#status":     "status",
	}

	expr := "SET #updated_at = :updated_at"
	switch party {
	case entities.UserTypeFarmer:
		expr += ", #farmer_review = :review"
		names["#farmer_review"] = "farmer_review"
		vals[":review"] = stringValue(sr.FarmerReview)
		if sr.QualityRating != nil {
			expr += ", #quality_rating = :quality_rating"
			names["#quality_rating"] = "quality_rating"
			vals[":quality_rating"] = numberValue(float64(*sr.QualityRating))
		}
	case entities.UserTypeLandowner:
		expr += ", #landowner_review = :review"
		names["#landowner_review"] = "landowner_review"
		vals[":review"] = stringValue(sr.LandownerReview)
	default:
		return entities.ServiceRequest{}, entities.ErrServiceRequestRole
	}

	return r.update(ctx, sr.ID, "#status = :completed", expr, vals, names)
}

func (r *ServiceRequestDynamoRepository) ListAvailable(ctx context.Context) ([]entities.ServiceRequest, error) {
	in := indexQuery(r.tableName, statusIndex, "status", string(entities.ServiceRequestStatusPending))
	in.FilterExpression = aws.String("attribute_not_exists(#landowner_id)")
	in.ExpressionAttributeNames["#landowner_id"] = "landowner_id"
	return r.list(ctx, in)
}

func (r *ServiceRequestDynamoRepository) ListByFarmer(ctx context.Context, farmerID string) ([]entities.ServiceRequest, error) {
	return r.list(ctx, indexQuery(r.tableName, farmerIDIndex, "farmer_id", farmerID))
}

func (r *ServiceRequestDynamoRepository) ListByLandowner(ctx context.Context, landownerID string) ([]entities.ServiceRequest, error) {
	return r.list(ctx, indexQuery(r.tableName, landownerIDIndex, "landowner_id", landownerID))
}

func (r *ServiceRequestDynamoRepository) list(ctx context.Context, in *dynamodb.QueryInput) ([]entities.ServiceRequest, error) {
	items, err := queryAll(ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	out := make([]entities.ServiceRequest, 0, len(items))
	for _, av := range items {
		sr, err := decodeServiceRequest(av)
		if err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, nil
}

// update runs a conditional UpdateItem. A failed condition (including a
// missing item) yields an empty ServiceRequest and no error.
func (r *ServiceRequestDynamoRepository) update(
	ctx context.Context,
	id string,
	cond string,
	updateExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.ServiceRequest, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id) AND " + cond),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.ServiceRequest{}, nil
		}
		return entities.ServiceRequest{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.ServiceRequest{}, nil
	}
	return decodeServiceRequest(out.Attributes)
}

func decodeServiceRequest(av map[string]types.AttributeValue) (entities.ServiceRequest, error) {
	var it serviceRequestItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.ServiceRequest{}, err
	}
	return fromServiceRequestItem(it), nil
}

func toServiceRequestItem(sr entities.ServiceRequest) serviceRequestItem {
	return serviceRequestItem{
		ID:                   sr.ID,
		FarmerID:             sr.FarmerID,
		LandownerID:          sr.LandownerID,
		MaterialType:         string(sr.MaterialType),
		Quantity:             sr.Quantity,
		Unit:                 string(sr.Unit),
		ServiceChargePercent: sr.ServiceChargePercent,
		EstimatedRevenue:     sr.EstimatedRevenue,
		ActualRevenue:        sr.ActualRevenue,
		Status:               string(sr.Status),
		Notes:                sr.Notes,
		AcceptedAt:           formatTimePtr(sr.AcceptedAt),
		StartedAt:            formatTimePtr(sr.StartedAt),
		CompletedAt:          formatTimePtr(sr.CompletedAt),
		QualityRating:        sr.QualityRating,
		FarmerReview:         sr.FarmerReview,
		LandownerReview:      sr.LandownerReview,
		CreatedAt:            formatTime(sr.CreatedAt),
		UpdatedAt:            formatTime(sr.UpdatedAt),
	}
}

func fromServiceRequestItem(it serviceRequestItem) entities.ServiceRequest {
	return entities.ServiceRequest{
		ID:                   it.ID,
		FarmerID:             it.FarmerID,
		LandownerID:          it.LandownerID,
		MaterialType:         entities.MaterialType(it.MaterialType),
		Quantity:             it.Quantity,
		Unit:                 entities.Unit(it.Unit),
		ServiceChargePercent: it.ServiceChargePercent,
		EstimatedRevenue:     it.EstimatedRevenue,
		ActualRevenue:        it.ActualRevenue,
		Status:               entities.ServiceRequestStatus(it.Status),
		Notes:                it.Notes,
		AcceptedAt:           parseTimePtr(it.AcceptedAt),
		StartedAt:            parseTimePtr(it.StartedAt),
		CompletedAt:          parseTimePtr(it.CompletedAt),
		QualityRating:        it.QualityRating,
		FarmerReview:         it.FarmerReview,
		LandownerReview:      it.LandownerReview,
		CreatedAt:            parseTime(it.CreatedAt),
		UpdatedAt:            parseTime(it.UpdatedAt),
	}
}
