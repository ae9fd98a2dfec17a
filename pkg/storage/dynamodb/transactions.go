package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/femi/bookmart-settlement/pkg/models"
	"github.com/femi/bookmart-settlement/pkg/storage"
	"github.com/google/uuid"
)

const buyerRefIndex = "buyer_ref-index"

// CreateTransaction appends a transaction record keyed by its gateway
// reference. The put is conditional on the reference not existing yet; a
// retried gateway callback therefore reads back and returns the transaction
// written by the first delivery instead of creating a second one.
func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, bool, error) {
	// Complete the transaction object with server-side details.
	tx.Id = uuid.New().String()
	tx.CreatedAt = time.Now()

	slog.Log(ctx, slog.LevelDebug, "creating transaction", "gatewayRef", tx.GatewayRef)

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Transactions),
		Item:                txAV,
		ConditionExpression: aws.String("attribute_not_exists(gateway_ref)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// Duplicate callback: this reference has already been settled.
			existing, getErr := s.GetTransactionByRef(ctx, tx.GatewayRef)
			if getErr != nil {
				return nil, false, fmt.Errorf("transaction %s already exists but could not be read back: %w", tx.GatewayRef, getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to put transaction: %w", err)
	}

	return tx, true, nil
}

// GetTransactionByRef retrieves a transaction from DynamoDB by its gateway
// reference.
func (s *Store) GetTransactionByRef(ctx context.Context, gatewayRef string) (*models.Transaction, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"gateway_ref": gatewayRef})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gateway reference: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Transactions),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrTransactionNotFound
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Item, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return &tx, nil
}

// ListTransactionsByBuyer retrieves all transactions for a buyer, most
// recent first.
func (s *Store) ListTransactionsByBuyer(ctx context.Context, buyerRef string) ([]models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Transactions),
		IndexName:              aws.String(buyerRefIndex),
		KeyConditionExpression: aws.String("buyer_ref = :buyerRef"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":buyerRef": &types.AttributeValueMemberS{Value: buyerRef},
		},
		ScanIndexForward: aws.Bool(false),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by buyer: %w", err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	return transactions, nil
}
