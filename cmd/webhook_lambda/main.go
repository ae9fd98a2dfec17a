package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/femi/bookmart-settlement/pkg/api"
	"github.com/femi/bookmart-settlement/pkg/gateway"
	"github.com/femi/bookmart-settlement/pkg/mapping"
	"github.com/femi/bookmart-settlement/pkg/reconcile"
	"github.com/femi/bookmart-settlement/pkg/referral"
	"github.com/femi/bookmart-settlement/pkg/settlement"
	dydbstore "github.com/femi/bookmart-settlement/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var workflow *settlement.Workflow

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	tables := dydbstore.Tables{
		Transactions: os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		Entitlements: os.Getenv("DYNAMODB_ENTITLEMENTS_TABLE_NAME"),
		Sellers:      os.Getenv("DYNAMODB_SELLERS_TABLE_NAME"),
		Books:        os.Getenv("DYNAMODB_BOOKS_TABLE_NAME"),
		Users:        os.Getenv("DYNAMODB_USERS_TABLE_NAME"),
		Referrals:    os.Getenv("DYNAMODB_REFERRALS_TABLE_NAME"),
		Connections:  os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME"),
	}
	if tables.Transactions == "" || tables.Entitlements == "" || tables.Sellers == "" || tables.Books == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	store := dydbstore.New(dbClient, tables)

	var repairs reconcile.Enqueuer
	if queueURL := os.Getenv("SQS_REPAIR_QUEUE_URL"); queueURL != "" {
		repairs = reconcile.NewSQSQueue(sqs.NewFromConfig(cfg), queueURL)
	} else {
		log.Println("SQS_REPAIR_QUEUE_URL not set, repair tasks will not be enqueued")
	}

	workflow = settlement.NewWorkflow(store, repairs, referral.NewHook(store, store))
}

func respond(status int, body api.SettlementResponse) (events.APIGatewayProxyResponse, error) {
	payload, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(payload),
	}, nil
}

// HandleRequest settles a gateway callback delivered through API Gateway.
func HandleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var cb api.CheckoutCallback
	if err := json.Unmarshal([]byte(req.Body), &cb); err != nil {
		return respond(http.StatusBadRequest, api.SettlementResponse{Message: "invalid request body"})
	}
	if cb.BuyerId == "" {
		return respond(http.StatusBadRequest, api.SettlementResponse{Message: "buyer_id is required"})
	}

	result := mapping.ToPaymentResult(&cb)
	intent := mapping.ToDomainIntent(&cb.Intent)

	txID, err := workflow.Settle(ctx, result, intent, cb.BuyerId)
	if err != nil {
		var rejected *settlement.GatewayRejectedError
		var fatal *settlement.LedgerWriteFailedError
		switch {
		case errors.As(err, &rejected):
			return respond(http.StatusUnprocessableEntity, api.SettlementResponse{Message: rejected.UserMessage()})
		case errors.Is(err, gateway.ErrValidationFailed):
			return respond(http.StatusBadRequest, api.SettlementResponse{Message: err.Error()})
		case errors.As(err, &fatal):
			log.Printf("ERROR: settlement fatal failure for gateway ref %s: %v", fatal.GatewayRef, err)
			return respond(http.StatusInternalServerError, api.SettlementResponse{
				Message:    fatal.UserMessage(),
				GatewayRef: fatal.GatewayRef,
			})
		default:
			log.Printf("ERROR: settlement failed for gateway ref %s: %v", result.Reference(), err)
			return respond(http.StatusInternalServerError, api.SettlementResponse{Message: "failed to settle"})
		}
	}

	return respond(http.StatusCreated, api.SettlementResponse{TransactionId: txID})
}

func main() {
	lambda.Start(HandleRequest)
}
