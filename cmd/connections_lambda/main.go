package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/femi/bookmart-settlement/pkg/handlers/connections"
	dydbstore "github.com/femi/bookmart-settlement/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var handler *connections.Handler

func init() {
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")
	if connectionsTable == "" {
		log.Fatal("DYNAMODB_CONNECTIONS_TABLE_NAME environment variable not set")
	}

	store := dydbstore.New(dynamodb.NewFromConfig(cfg), dydbstore.Tables{Connections: connectionsTable})
	handler = connections.NewHandler(store)
}

// HandleRequest routes WebSocket lifecycle events by route key. The same
// lambda serves both $connect and $disconnect.
func HandleRequest(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.RequestContext.RouteKey == "$disconnect" {
		return handler.HandleDisconnect(ctx, request)
	}
	return handler.HandleConnect(ctx, request)
}

func main() {
	lambda.Start(HandleRequest)
}
