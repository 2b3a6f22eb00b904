package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"vermafarm/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryRepository_CreateMany_ChunksBatches(t *testing.T) {
	ddb := &fakeDynamo{}
	repo := NewInventoryDynamoRepository(ddb)

	items := make([]entities.InventoryItem, 30)
	for i := range items {
		items[i] = entities.InventoryItem{ID: fmt.Sprintf("inv-%d", i), UserID: "farmer-1", Type: entities.InventoryDryLeaves}
	}

	require.NoError(t, repo.CreateMany(context.Background(), items))
	require.Len(t, ddb.batches, 2)
	assert.Len(t, ddb.batches[0].RequestItems[repo.tableName], 25)
	assert.Len(t, ddb.batches[1].RequestItems[repo.tableName], 5)
}

func TestInventoryRepository_CreateMany_RetriesUnprocessed(t *testing.T) {
	calls := 0
	ddb := &fakeDynamo{}
	ddb.batchWrite = func(in *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
		calls++
		if calls == 1 {
			reqs := in.RequestItems[inventoryTable()]
			return &dynamodb.BatchWriteItemOutput{
				UnprocessedItems: map[string][]types.WriteRequest{inventoryTable(): reqs[:1]},
			}, nil
		}
		return &dynamodb.BatchWriteItemOutput{}, nil
	}
	repo := NewInventoryDynamoRepository(ddb)

	err := repo.CreateMany(context.Background(), entities.StarterInventory("farmer-1", func() string { return "id" }, time.Now()))
	require.NoError(t, err)
	require.Len(t, ddb.batches, 2)
	assert.Len(t, ddb.batches[1].RequestItems[inventoryTable()], 1)
}

func TestInventoryRepository_CreateMany_GivesUp(t *testing.T) {
	ddb := &fakeDynamo{}
	ddb.batchWrite = func(in *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
		return &dynamodb.BatchWriteItemOutput{UnprocessedItems: in.RequestItems}, nil
	}
	repo := NewInventoryDynamoRepository(ddb)

	err := repo.CreateMany(context.Background(), []entities.InventoryItem{{ID: "inv-1"}})
	assert.ErrorContains(t, err, "left unprocessed")
	assert.Len(t, ddb.batches, batchWriteRetries)
}

func TestInventoryRepository_UpdateQuantity_OwnerCondition(t *testing.T) {
	ddb := &fakeDynamo{
		updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, conditionFailed()
		},
	}
	repo := NewInventoryDynamoRepository(ddb)

	notes := "restocked"
	got, err := repo.UpdateQuantity(context.Background(), "inv-1", "farmer-2", 12.5, &notes)
	require.NoError(t, err)
	assert.Empty(t, got.ID)

	in := ddb.updates[0]
	assert.Equal(t, "attribute_exists(#id) AND #user_id = :owner", *in.ConditionExpression)
	assert.Contains(t, *in.UpdateExpression, "#notes = :notes")
	assert.Equal(t, "farmer-2", attrString(in.ExpressionAttributeValues[":owner"]))
	assert.Equal(t, "12.5", attrString(in.ExpressionAttributeValues[":quantity"]))
}
