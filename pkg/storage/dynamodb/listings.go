package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/femi/bookmart-settlement/pkg/models"
	"github.com/femi/bookmart-settlement/pkg/storage"
)

// GetListing retrieves a listing by its primary identifier.
func (s *Store) GetListing(ctx context.Context, bookRef string) (*models.Listing, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": bookRef})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing id: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Books),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get listing from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrListingNotFound
	}

	var listing models.Listing
	if err := attributevalue.UnmarshalMap(result.Item, &listing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listing: %w", err)
	}

	return &listing, nil
}

// IncrementSalesCount atomically bumps a listing's sales counter.
func (s *Store) IncrementSalesCount(ctx context.Context, bookRef string) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Books),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: bookRef},
		},
		UpdateExpression:    aws.String("ADD sales_count :one"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrListingNotFound
		}
		return fmt.Errorf("failed to increment sales count for %s: %w", bookRef, err)
	}

	return nil
}
