package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/femi/bookmart-settlement/pkg/models"
	"github.com/femi/bookmart-settlement/pkg/storage"
	"github.com/femi/bookmart-settlement/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetUser(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		user := &models.User{Id: "buyer-1", Email: "ada@example.com", ReferredBy: "ref-code-9"}
		userAV, _ := attributevalue.MarshalMap(user)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: userAV}, nil).Once()

		got, err := store.GetUser(context.Background(), "buyer-1")

		assert.NoError(t, err)
		assert.Equal(t, "ref-code-9", got.ReferredBy)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil).Once()

		_, err := store.GetUser(context.Background(), "ghost")

		assert.ErrorIs(t, err, storage.ErrUserNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestListPendingReferrals(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := New(mockClient, testTables())

	pending := models.Referral{Id: "ref-1", ReferrerId: "user-9", ReferredUserId: "buyer-1", Status: models.ReferralPending}
	pendingAV, _ := attributevalue.MarshalMap(pending)
	mockClient.On("Query", mock.Anything, mock.AnythingOfType("*dynamodb.QueryInput")).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{pendingAV}}, nil).Once()

	referrals, err := store.ListPendingReferrals(context.Background(), "buyer-1")

	assert.NoError(t, err)
	assert.Len(t, referrals, 1)
	assert.Equal(t, models.ReferralPending, referrals[0].Status)
	mockClient.AssertExpectations(t)
}

func TestCompleteReferral(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("UpdateItem", mock.Anything, mock.AnythingOfType("*dynamodb.UpdateItemInput")).Return(&dynamodb.UpdateItemOutput{}, nil).Once()

		assert.NoError(t, store.CompleteReferral(context.Background(), "ref-1"))
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Completed", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()

		err := store.CompleteReferral(context.Background(), "ref-1")

		assert.ErrorIs(t, err, storage.ErrReferralNotPending)
		mockClient.AssertExpectations(t)
	})
}
