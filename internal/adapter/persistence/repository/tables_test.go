package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTables struct {
	existing map[string]bool
	created  []string
}

func (f *fakeTables) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if !f.existing[*in.TableName] {
		return nil, &types.ResourceNotFoundException{Message: aws.String("not found")}
	}
	return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{
		TableName:   in.TableName,
		TableStatus: types.TableStatusActive,
	}}, nil
}

func (f *fakeTables) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.created = append(f.created, *in.TableName)
	f.existing[*in.TableName] = true
	return &dynamodb.CreateTableOutput{}, nil
}

func TestEnsureTables_CreatesOnlyMissing(t *testing.T) {
	api := &fakeTables{existing: map[string]bool{usersTable(): true, inventoryTable(): true}}

	require.NoError(t, EnsureTables(context.Background(), api))
	assert.Equal(t, []string{serviceRequestsTable(), listingsTable(), transactionsTable()}, api.created)
}

func TestEnsureTables_PropagatesDescribeErrors(t *testing.T) {
	api := &erroringTables{err: errors.New("access denied")}

	err := EnsureTables(context.Background(), api)
	assert.ErrorContains(t, err, "access denied")
}

type erroringTables struct{ err error }

func (e *erroringTables) DescribeTable(context.Context, *dynamodb.DescribeTableInput, ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return nil, e.err
}

func (e *erroringTables) CreateTable(context.Context, *dynamodb.CreateTableInput, ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	return nil, e.err
}

func TestCreateTableInput_ServiceRequests(t *testing.T) {
	var def tableDef
	for _, d := range tableDefinitions() {
		if d.name == serviceRequestsTable() {
			def = d
		}
	}

	in := createTableInput(def)
	assert.Equal(t, types.BillingModePayPerRequest, in.BillingMode)
	assert.Len(t, in.GlobalSecondaryIndexes, 3)

	attrs := map[string]bool{}
	for _, a := range in.AttributeDefinitions {
		attrs[*a.AttributeName] = true
	}
	assert.Equal(t, map[string]bool{
		"id":           true,
		"farmer_id":    true,
		"landowner_id": true,
		"status":       true,
		"created_at":   true,
	}, attrs)
}

func TestHasErrorCode(t *testing.T) {
	assert.True(t, isConditionFailed(&types.ConditionalCheckFailedException{Message: aws.String("failed")}))
	assert.True(t, isConditionFailed(fmt.Errorf("put: %w", &smithy.GenericAPIError{Code: "ConditionalCheckFailedException"})))
	assert.False(t, isConditionFailed(errors.New("ConditionalCheckFailedException")))
	assert.True(t, hasErrorCode(&types.ResourceInUseException{}, "ResourceInUseException"))
}
