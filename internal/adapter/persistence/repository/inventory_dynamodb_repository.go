package repository

import (
	"context"
	"fmt"
	"time"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	batchWriteLimit   = 25
	batchWriteRetries = 5
)

type inventoryItem struct {
	ID          string  `dynamodbav:"id"`
	UserID      string  `dynamodbav:"user_id"`
	Type        string  `dynamodbav:"type"`
	Name        string  `dynamodbav:"name"`
	Quantity    float64 `dynamodbav:"quantity"`
	Unit        string  `dynamodbav:"unit"`
	Icon        string  `dynamodbav:"icon,omitempty"`
	Notes       string  `dynamodbav:"notes,omitempty"`
	LastUpdated string  `dynamodbav:"last_updated"`
	CreatedAt   string  `dynamodbav:"created_at"`
	UpdatedAt   string  `dynamodbav:"updated_at"`
}

// InventoryDynamoRepository persists InventoryItem entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (user_id)
type InventoryDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IInventoryRepository = (*InventoryDynamoRepository)(nil)

func NewInventoryDynamoRepository(ddb dynamoAPI) *InventoryDynamoRepository {
	return &InventoryDynamoRepository{
		ddb:       ddb,
		tableName: inventoryTable(),
	}
}

// CreateMany writes items in batches, resubmitting whatever DynamoDB reports
// as unprocessed.
func (r *InventoryDynamoRepository) CreateMany(ctx context.Context, items []entities.InventoryItem) error {
	for start := 0; start < len(items); start += batchWriteLimit {
		end := min(start+batchWriteLimit, len(items))

		reqs := make([]types.WriteRequest, 0, end-start)
		for _, it := range items[start:end] {
			av, err := attributevalue.MarshalMap(toInventoryItem(it))
			if err != nil {
				return err
			}
			reqs = append(reqs, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
		}

		pending := map[string][]types.WriteRequest{r.tableName: reqs}
		for attempt := 0; len(pending) > 0; attempt++ {
			if attempt == batchWriteRetries {
				return fmt.Errorf("inventory batch write: %d items left unprocessed", len(pending[r.tableName]))
			}
			out, err := r.ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return err
			}
			pending = out.UnprocessedItems
			if len(pending) > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(time.Duration(attempt+1) * 50 * time.Millisecond):
				}
			}
		}
	}
	return nil
}

func (r *InventoryDynamoRepository) GetByID(ctx context.Context, id string) (entities.InventoryItem, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.InventoryItem{}, err
	}
	if len(out.Item) == 0 {
		return entities.InventoryItem{}, nil
	}
	return decodeInventoryItem(out.Item)
}

func (r *InventoryDynamoRepository) ListByUser(ctx context.Context, userID string) ([]entities.InventoryItem, error) {
	in := indexQuery(r.tableName, userIDIndex, "user_id", userID)
	in.ScanIndexForward = nil
	avs, err := queryAll(ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	out := make([]entities.InventoryItem, 0, len(avs))
	for _, av := range avs {
		it, err := decodeInventoryItem(av)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *InventoryDynamoRepository) UpdateQuantity(ctx context.Context, id, ownerID string, quantity float64, notes *string) (entities.InventoryItem, error) {
	now := stringValue(formatTime(time.Now()))
	expr := "SET #quantity = :quantity, #last_updated = :now, #updated_at = :now"
	vals := map[string]types.AttributeValue{
		":quantity": numberValue(quantity),
		":now":      now,
		":owner":    stringValue(ownerID),
	}
	names := map[string]string{
		"#quantity":     "quantity",
		"#last_updated": "last_updated",
		"#updated_at":   "updated_at",
		"#user_id":      "user_id",
		"#id":           "id",
	}
	if notes != nil {
		expr += ", #notes = :notes"
		names["#notes"] = "notes"
		vals[":notes"] = stringValue(*notes)
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id) AND #user_id = :owner"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.InventoryItem{}, nil
		}
		return entities.InventoryItem{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.InventoryItem{}, nil
	}
	return decodeInventoryItem(out.Attributes)
}

func decodeInventoryItem(av map[string]types.AttributeValue) (entities.InventoryItem, error) {
	var it inventoryItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.InventoryItem{}, err
	}
	return entities.InventoryItem{
		ID:          it.ID,
		UserID:      it.UserID,
		Type:        entities.InventoryType(it.Type),
		Name:        it.Name,
		Quantity:    it.Quantity,
		Unit:        entities.Unit(it.Unit),
		Icon:        it.Icon,
		Notes:       it.Notes,
		LastUpdated: parseTime(it.LastUpdated),
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}, nil
}

func toInventoryItem(it entities.InventoryItem) inventoryItem {
	return inventoryItem{
		ID:          it.ID,
		UserID:      it.UserID,
		Type:        string(it.Type),
		Name:        it.Name,
		Quantity:    it.Quantity,
		Unit:        string(it.Unit),
		Icon:        it.Icon,
		Notes:       it.Notes,
		LastUpdated: formatTime(it.LastUpdated),
		CreatedAt:   formatTime(it.CreatedAt),
		UpdatedAt:   formatTime(it.UpdatedAt),
	}
}
