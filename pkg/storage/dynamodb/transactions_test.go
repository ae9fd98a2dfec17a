package dynamodb

import (
	"context"
	"errors"
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

func testTables() Tables {
	return Tables{
		Transactions: "transactions",
		Entitlements: "entitlements",
		Sellers:      "sellers",
		Books:        "books",
		Users:        "users",
		Referrals:    "referrals",
		Connections:  "connections",
	}
}

func TestCreateTransaction(t *testing.T) {
	newTx := func() *models.Transaction {
		return &models.Transaction{
			GatewayRef:   "bm-1756710000-abc",
			BuyerRef:     "buyer-1",
			SellerRef:    "seller-1",
			BookRef:      "book-1",
			Amount:       2000,
			SellerAmount: 1600,
			PlatformFee:  500,
			Status:       models.COMPLETED,
		}
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("PutItem", mock.Anything, mock.AnythingOfType("*dynamodb.PutItemInput")).Return(&dynamodb.PutItemOutput{}, nil).Once()

		tx, created, err := store.CreateTransaction(context.Background(), newTx())

		assert.NoError(t, err)
		assert.True(t, created)
		assert.NotEmpty(t, tx.Id)
		assert.False(t, tx.CreatedAt.IsZero())
		mockClient.AssertExpectations(t)
	})

	t.Run("Duplicate Gateway Ref Returns Existing", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		existing := newTx()
		existing.Id = "11111111-2222-3333-4444-555555555555"
		existingAV, _ := attributevalue.MarshalMap(existing)

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: existingAV}, nil).Once()

		tx, created, err := store.CreateTransaction(context.Background(), newTx())

		assert.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing.Id, tx.Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Duplicate But Read Back Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("get failed")).Once()

		_, _, err := store.CreateTransaction(context.Background(), newTx())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists but could not be read back")
		mockClient.AssertExpectations(t)
	})

	t.Run("Put Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("dynamo down")).Once()

		_, _, err := store.CreateTransaction(context.Background(), newTx())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to put transaction")
		mockClient.AssertExpectations(t)
	})
}

func TestGetTransactionByRef(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		stored := &models.Transaction{Id: "tx-1", GatewayRef: "bm-1", Amount: 2000}
		storedAV, _ := attributevalue.MarshalMap(stored)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: storedAV}, nil).Once()

		tx, err := store.GetTransactionByRef(context.Background(), "bm-1")

		assert.NoError(t, err)
		assert.Equal(t, "tx-1", tx.Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil).Once()

		_, err := store.GetTransactionByRef(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrTransactionNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestListTransactionsByBuyer(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := New(mockClient, testTables())

	stored := []models.Transaction{
		{Id: "tx-1", BuyerRef: "buyer-1"},
		{Id: "tx-2", BuyerRef: "buyer-1"},
	}
	items := make([]map[string]types.AttributeValue, len(stored))
	for i, tx := range stored {
		items[i], _ = attributevalue.MarshalMap(tx)
	}
	mockClient.On("Query", mock.Anything, mock.AnythingOfType("*dynamodb.QueryInput")).Return(&dynamodb.QueryOutput{Items: items}, nil).Once()

	txs, err := store.ListTransactionsByBuyer(context.Background(), "buyer-1")

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	mockClient.AssertExpectations(t)
}
