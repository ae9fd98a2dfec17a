package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/femi/bookmart-settlement/pkg/models"
	"github.com/femi/bookmart-settlement/pkg/storage"
	"github.com/femi/bookmart-settlement/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreditSeller(t *testing.T) {
	sale := models.SaleRecord{BookRef: "book-1", BuyerRef: "buyer-1", Amount: 1600, SoldAt: time.Now()}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("UpdateItem", mock.Anything, mock.AnythingOfType("*dynamodb.UpdateItemInput")).Return(&dynamodb.UpdateItemOutput{}, nil).Once()

		err := store.CreditSeller(context.Background(), "seller-1", "tx-1", 1600, sale)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Credited Is NoOp", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		ledger := &models.SellerLedger{
			SellerRef: "seller-1",
			Sales:     map[string]models.SaleRecord{"tx-1": sale},
		}
		ledgerAV, _ := attributevalue.MarshalMap(ledger)

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: ledgerAV}, nil).Once()

		err := store.CreditSeller(context.Background(), "seller-1", "tx-1", 1600, sale)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Seller Missing", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil).Once()

		err := store.CreditSeller(context.Background(), "seller-x", "tx-1", 1600, sale)

		assert.ErrorIs(t, err, storage.ErrSellerNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Update Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("dynamo down")).Once()

		err := store.CreditSeller(context.Background(), "seller-1", "tx-1", 1600, sale)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to credit seller")
		mockClient.AssertExpectations(t)
	})
}

func TestGetSellerLedger(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		ledger := &models.SellerLedger{SellerRef: "seller-1", AccountBalance: 3200, BooksSold: 2}
		ledgerAV, _ := attributevalue.MarshalMap(ledger)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: ledgerAV}, nil).Once()

		got, err := store.GetSellerLedger(context.Background(), "seller-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(3200), got.AccountBalance)
		assert.Equal(t, int64(2), got.BooksSold)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil).Once()

		_, err := store.GetSellerLedger(context.Background(), "seller-x")

		assert.ErrorIs(t, err, storage.ErrSellerNotFound)
		mockClient.AssertExpectations(t)
	})
}
