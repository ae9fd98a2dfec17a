package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/femi/bookmart-settlement/pkg/reconcile"
	dydbstore "github.com/femi/bookmart-settlement/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var applier *reconcile.Applier

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

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
	if tables.Entitlements == "" || tables.Sellers == "" || tables.Books == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	applier = reconcile.NewApplier(dydbstore.New(dbClient, tables))
}

// HandleRequest re-applies repair tasks from the repair queue. Every write a
// task issues is idempotent, so redelivered messages are safe.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var task reconcile.Task
		if err := json.Unmarshal([]byte(message.Body), &task); err != nil {
			log.Printf("ERROR: failed to unmarshal repair task from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		log.Printf("Re-applying %s repair for transaction %s", task.Kind, task.Transaction.Id)

		if err := applier.Apply(ctx, task); err != nil {
			log.Printf("ERROR: failed to apply repair for transaction %s: %v", task.Transaction.Id, err)
			// In a production system, persistent failures would be sent to a DLQ.
			return err
		}

		log.Printf("Successfully applied repair for transaction %s", task.Transaction.Id)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
