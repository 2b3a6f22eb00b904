package repository

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

const (
	defaultUsersTableName           = "users"
	defaultInventoryTableName       = "inventory"
	defaultServiceRequestsTableName = "service_requests"
	defaultListingsTableName        = "listings"
	defaultTransactionsTableName    = "transactions"

	emailIndex       = "email-index"
	userIDIndex      = "user_id-index"
	farmerIDIndex    = "farmer_id-index"
	landownerIDIndex = "landowner_id-index"
	statusIndex      = "status-index"
	sellerIDIndex    = "seller_id-index"
	buyerIDIndex     = "buyer_id-index"
)

func usersTable() string {
	return getenvDefault("USERS_TABLE", defaultUsersTableName)
}

func inventoryTable() string {
	return getenvDefault("INVENTORY_TABLE", defaultInventoryTableName)
}

func serviceRequestsTable() string {
	return getenvDefault("SERVICE_REQUESTS_TABLE", defaultServiceRequestsTableName)
}

func listingsTable() string {
	return getenvDefault("LISTINGS_TABLE", defaultListingsTableName)
}

func transactionsTable() string {
	return getenvDefault("TRANSACTIONS_TABLE", defaultTransactionsTableName)
}

type gsiDef struct {
	name     string
	hashKey  string
	rangeKey string
}

type tableDef struct {
	name    string
	indexes []gsiDef
}

// tableDefinitions lists every table the service uses. All tables are keyed
// by a string id; GSIs are projected ALL and sorted by created_at when the
// listing order matters.
func tableDefinitions() []tableDef {
	return []tableDef{
		{name: usersTable(), indexes: []gsiDef{{name: emailIndex, hashKey: "email"}}},
		{name: inventoryTable(), indexes: []gsiDef{{name: userIDIndex, hashKey: "user_id"}}},
		{name: serviceRequestsTable(), indexes: []gsiDef{
			{name: farmerIDIndex, hashKey: "farmer_id", rangeKey: "created_at"},
			{name: landownerIDIndex, hashKey: "landowner_id", rangeKey: "created_at"},
			{name: statusIndex, hashKey: "status", rangeKey: "created_at"},
		}},
		{name: listingsTable(), indexes: []gsiDef{
			{name: sellerIDIndex, hashKey: "seller_id", rangeKey: "created_at"},
			{name: statusIndex, hashKey: "status", rangeKey: "created_at"},
		}},
		{name: transactionsTable(), indexes: []gsiDef{{name: buyerIDIndex, hashKey: "buyer_id", rangeKey: "created_at"}}},
	}
}

type tableAPI interface {
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// EnsureTables creates any missing table with its indexes. It is meant for
// local DynamoDB and test environments; production tables are provisioned
// outside the service.
func EnsureTables(ctx context.Context, api tableAPI) error {
	for _, def := range tableDefinitions() {
		_, err := api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(def.name)})
		if err == nil {
			continue
		}
		if !hasErrorCode(err, "ResourceNotFoundException") {
			return err
		}

		if _, err := api.CreateTable(ctx, createTableInput(def)); err != nil {
			if hasErrorCode(err, "ResourceInUseException") {
				continue
			}
			return err
		}
		logrus.WithField("table", def.name).Info("[database] table created")

		waiter := dynamodb.NewTableExistsWaiter(api)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(def.name)}, 2*time.Minute); err != nil {
			return err
		}
	}
	return nil
}

func createTableInput(def tableDef) *dynamodb.CreateTableInput {
	attrs := map[string]bool{"id": true}
	var gsis []types.GlobalSecondaryIndex
	for _, idx := range def.indexes {
		schema := []types.KeySchemaElement{{AttributeName: aws.String(idx.hashKey), KeyType: types.KeyTypeHash}}
		attrs[idx.hashKey] = true
		if idx.rangeKey != "" {
			schema = append(schema, types.KeySchemaElement{AttributeName: aws.String(idx.rangeKey), KeyType: types.KeyTypeRange})
			attrs[idx.rangeKey] = true
		}
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName:  aws.String(idx.name),
			KeySchema:  schema,
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}

	defs := make([]types.AttributeDefinition, 0, len(attrs))
	for name := range attrs {
		defs = append(defs, types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: types.ScalarAttributeTypeS})
	}

	in := &dynamodb.CreateTableInput{
		TableName:            aws.String(def.name),
		AttributeDefinitions: defs,
		KeySchema:            []types.KeySchemaElement{{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash}},
		BillingMode:          types.BillingModePayPerRequest,
	}
	if len(gsis) > 0 {
		in.GlobalSecondaryIndexes = gsis
	}
	return in
}
