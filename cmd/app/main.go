package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/femi/bookmart-settlement/pkg/handlers"
	appmiddleware "github.com/femi/bookmart-settlement/pkg/middleware"
	"github.com/femi/bookmart-settlement/pkg/notify"
	"github.com/femi/bookmart-settlement/pkg/reconcile"
	"github.com/femi/bookmart-settlement/pkg/referral"
	"github.com/femi/bookmart-settlement/pkg/settlement"
	dydbstore "github.com/femi/bookmart-settlement/pkg/storage/dynamodb"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func tablesFromEnv() dydbstore.Tables {
	return dydbstore.Tables{
		Transactions: os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		Entitlements: os.Getenv("DYNAMODB_ENTITLEMENTS_TABLE_NAME"),
		Sellers:      os.Getenv("DYNAMODB_SELLERS_TABLE_NAME"),
		Books:        os.Getenv("DYNAMODB_BOOKS_TABLE_NAME"),
		Users:        os.Getenv("DYNAMODB_USERS_TABLE_NAME"),
		Referrals:    os.Getenv("DYNAMODB_REFERRALS_TABLE_NAME"),
		Connections:  os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME"),
	}
}

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	tables := tablesFromEnv()
	if tables.Transactions == "" || tables.Entitlements == "" || tables.Sellers == "" || tables.Books == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	// Create our storage implementation
	store := dydbstore.New(dbClient, tables)

	// SQS client for the repair queue. Without a queue URL, failed secondary
	// writes are only logged.
	var repairs reconcile.Enqueuer
	if queueURL := os.Getenv("SQS_REPAIR_QUEUE_URL"); queueURL != "" {
		sqsClient := sqs.NewFromConfig(cfg)
		repairs = reconcile.NewSQSQueue(sqsClient, queueURL)
	} else {
		log.Println("SQS_REPAIR_QUEUE_URL not set, repair tasks will not be enqueued")
	}

	// Optional dashboard push over the websocket management API.
	var publisher notify.Publisher
	if wsEndpoint := os.Getenv("WEBSOCKET_API_ENDPOINT"); wsEndpoint != "" {
		publisher, err = notify.NewPublisher(store, wsEndpoint)
		if err != nil {
			log.Fatalf("unable to create websocket publisher, %v", err)
		}
	}

	workflow := settlement.NewWorkflow(store, repairs, referral.NewHook(store, store))

	// Create our handler
	handler := handlers.NewApiHandler(workflow, store, publisher)

	// Create a new Chi router
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(appmiddleware.NewStructuredLogger(logger))
	router.Use(chimiddleware.Recoverer)

	handler.Routes(router)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
