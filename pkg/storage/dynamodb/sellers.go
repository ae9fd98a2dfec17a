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

// CreditSeller applies one sale to a seller's ledger in a single UpdateItem.
// The counters use ADD so concurrent settlements crediting the same seller
// cannot lose updates; the condition on sales.#txid makes the credit
// idempotent by transaction id. Seller records are created at onboarding
// with an empty sales map.
func (s *Store) CreditSeller(ctx context.Context, sellerRef, txID string, amount int64, sale models.SaleRecord) error {
	saleAV, err := attributevalue.Marshal(sale)
	if err != nil {
		return fmt.Errorf("failed to marshal sale record: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Sellers),
		Key: map[string]types.AttributeValue{
			"seller_ref": &types.AttributeValueMemberS{Value: sellerRef},
		},
		UpdateExpression:    aws.String("ADD account_balance :amount, total_earnings :amount, books_sold :one SET sales.#txid = :sale"),
		ConditionExpression: aws.String("attribute_exists(seller_ref) AND attribute_not_exists(sales.#txid)"),
		ExpressionAttributeNames: map[string]string{
			"#txid": txID,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", amount)},
			":one":    &types.AttributeValueMemberN{Value: "1"},
			":sale":   saleAV,
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// Either the seller does not exist or this sale was already
			// credited. Read back to tell the two apart.
			ledger, getErr := s.GetSellerLedger(ctx, sellerRef)
			if getErr != nil {
				return getErr
			}
			if _, ok := ledger.Sales[txID]; ok {
				// Already credited.
				return nil
			}
			return fmt.Errorf("failed to credit seller %s: %w", sellerRef, err)
		}
		return fmt.Errorf("failed to credit seller %s: %w", sellerRef, err)
	}

	return nil
}

// GetSellerLedger retrieves a seller's balance and sales history.
func (s *Store) GetSellerLedger(ctx context.Context, sellerRef string) (*models.SellerLedger, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"seller_ref": sellerRef})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal seller reference: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Sellers),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get seller ledger from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrSellerNotFound
	}

	var ledger models.SellerLedger
	if err := attributevalue.UnmarshalMap(result.Item, &ledger); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seller ledger: %w", err)
	}

	return &ledger, nil
}
