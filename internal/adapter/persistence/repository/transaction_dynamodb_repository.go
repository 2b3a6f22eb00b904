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

type transactionItem struct {
	ID              string  `dynamodbav:"id"`
	BuyerID         string  `dynamodbav:"buyer_id"`
	SellerID        string  `dynamodbav:"seller_id"`
	ListingID       string  `dynamodbav:"listing_id"`
	ProductName     string  `dynamodbav:"product_name"`
	Category        string  `dynamodbav:"category"`
	Quantity        float64 `dynamodbav:"quantity"`
	Unit            string  `dynamodbav:"unit"`
	PricePerUnit    float64 `dynamodbav:"price_per_unit"`
	TotalAmount     float64 `dynamodbav:"total_amount"`
	DeliveryAddress string  `dynamodbav:"delivery_address"`
	DeliveryCharge  float64 `dynamodbav:"delivery_charge"`
	Status          string  `dynamodbav:"status"`
	CreatedAt       string  `dynamodbav:"created_at"`
	UpdatedAt       string  `dynamodbav:"updated_at"`
}

type TransactionDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ITransactionRepository = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(ddb dynamoAPI) *TransactionDynamoRepository {
	return &TransactionDynamoRepository{
		ddb:       ddb,
		tableName: transactionsTable(),
	}
}

func (r *TransactionDynamoRepository) Create(ctx context.Context, t entities.Transaction) (entities.Transaction, error) {
	av, err := attributevalue.MarshalMap(transactionItem{
		ID:              t.ID,
		BuyerID:         t.BuyerID,
		SellerID:        t.SellerID,
		ListingID:       t.ListingID,
		ProductName:     t.ProductName,
		Category:        string(t.Category),
		Quantity:        t.Quantity,
		Unit:            string(t.Unit),
		PricePerUnit:    t.PricePerUnit,
		TotalAmount:     t.TotalAmount,
		DeliveryAddress: t.DeliveryAddress,
		DeliveryCharge:  t.DeliveryCharge,
		Status:          string(t.Status),
		CreatedAt:       formatTime(t.CreatedAt),
		UpdatedAt:       formatTime(t.UpdatedAt),
	})
	if err != nil {
		return entities.Transaction{}, err
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
		return entities.Transaction{}, err
	}
	return t, nil
}

func (r *TransactionDynamoRepository) ListByBuyer(ctx context.Context, buyerID string) ([]entities.Transaction, error) {
	avs, err := queryAll(ctx, r.ddb, indexQuery(r.tableName, buyerIDIndex, "buyer_id", buyerID))
	if err != nil {
		return nil, err
	}
	out := make([]entities.Transaction, 0, len(avs))
	for _, av := range avs {
		t, err := decodeTransaction(av)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func decodeTransaction(av map[string]types.AttributeValue) (entities.Transaction, error) {
	var it transactionItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Transaction{}, err
	}
	return entities.Transaction{
		ID:              it.ID,
		BuyerID:         it.BuyerID,
		SellerID:        it.SellerID,
		ListingID:       it.ListingID,
		ProductName:     it.ProductName,
		Category:        entities.InventoryType(it.Category),
		Quantity:        it.Quantity,
		Unit:            entities.Unit(it.Unit),
		PricePerUnit:    it.PricePerUnit,
		TotalAmount:     it.TotalAmount,
		DeliveryAddress: it.DeliveryAddress,
		DeliveryCharge:  it.DeliveryCharge,
		Status:          entities.TransactionStatus(it.Status),
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}, nil
}
