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
)

// AddEntitlement records that a buyer owns a book. The put is conditional on
// the (buyer_ref, book_ref) key not existing, so replaying a settlement or a
// reconciliation repair cannot duplicate the edge.
func (s *Store) AddEntitlement(ctx context.Context, ent *models.Entitlement) error {
	entAV, err := attributevalue.MarshalMap(ent)
	if err != nil {
		return fmt.Errorf("failed to marshal entitlement: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Entitlements),
		Item:                entAV,
		ConditionExpression: aws.String("attribute_not_exists(buyer_ref) AND attribute_not_exists(book_ref)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// Already recorded.
			return nil
		}
		return fmt.Errorf("failed to put entitlement: %w", err)
	}

	return nil
}

// ListEntitlements retrieves a buyer's library.
func (s *Store) ListEntitlements(ctx context.Context, buyerRef string) ([]models.Entitlement, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Entitlements),
		KeyConditionExpression: aws.String("buyer_ref = :buyerRef"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":buyerRef": &types.AttributeValueMemberS{Value: buyerRef},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query entitlements: %w", err)
	}

	var entitlements []models.Entitlement
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entitlements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entitlements: %w", err)
	}

	return entitlements, nil
}
