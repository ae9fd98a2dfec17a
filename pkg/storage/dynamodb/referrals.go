package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/femi/bookmart-settlement/pkg/models"
	"github.com/femi/bookmart-settlement/pkg/storage"
)

const referredUserIndex = "referred_user_id-index"

// GetUser retrieves a user record by id.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user id: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Users),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrUserNotFound
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &user, nil
}

// ListPendingReferrals retrieves the pending referrals naming this user as
// the referred party.
func (s *Store) ListPendingReferrals(ctx context.Context, referredUserID string) ([]models.Referral, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Referrals),
		IndexName:              aws.String(referredUserIndex),
		KeyConditionExpression: aws.String("referred_user_id = :userID"),
		FilterExpression:       aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userID":  &types.AttributeValueMemberS{Value: referredUserID},
			":pending": &types.AttributeValueMemberS{Value: string(models.ReferralPending)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending referrals: %w", err)
	}

	var referrals []models.Referral
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &referrals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal referrals: %w", err)
	}

	return referrals, nil
}

// CompleteReferral atomically transitions a referral from PENDING to
// COMPLETED. The condition on the current status means a second completion
// attempt fails the check rather than rewriting the record.
func (s *Store) CompleteReferral(ctx context.Context, referralID string) error {
	now, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal completion timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Referrals),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: referralID},
		},
		UpdateExpression:    aws.String("SET #status = :completed, completed_at = :now"),
		ConditionExpression: aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":completed": &types.AttributeValueMemberS{Value: string(models.ReferralCompleted)},
			":pending":   &types.AttributeValueMemberS{Value: string(models.ReferralPending)},
			":now":       now,
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrReferralNotPending
		}
		return fmt.Errorf("failed to complete referral %s: %w", referralID, err)
	}

	return nil
}
