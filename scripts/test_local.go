package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"batch-record-processor/internal/handlers"
	"batch-record-processor/internal/logging"
	"batch-record-processor/internal/middleware"
	"batch-record-processor/internal/models"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("=== Batch Record Processor - Local Test ===")
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  Warning: Could not load .env file: %v\n", err)
	}

	logger, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Build a sample payload of 20 valid records
	records := make([]models.Record, 20)
	for i := range records {
		records[i] = models.Record{
			ID:     fmt.Sprintf("rec-%d", i),
			Value:  i * 10,
			Status: models.RecordStatusValid,
		}
	}

	body, err := json.Marshal(map[string][]models.Record{"records": records})
	if err != nil {
		fmt.Printf("❌ Failed to marshal payload: %v\n", err)
		os.Exit(1)
	}
	event := events.APIGatewayProxyRequest{Body: string(body)}

	// Simulate the Lambda invocation context
	lc := &lambdacontext.LambdaContext{AwsRequestID: uuid.New().String()}
	ctx := lambdacontext.NewContext(context.Background(), lc)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	handler := handlers.NewBatchHandler(logger)
	chained := middleware.Chain(handler.Handle,
		middleware.WithObservability(logger, "/process"),
		middleware.WithLoggerContext(),
		middleware.WithInvocationLog(logger),
	)

	fmt.Println("🚀 Invoking handler...")
	fmt.Println()

	resp, err := chained(ctx, event)
	if err != nil {
		fmt.Printf("❌ Handler returned error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("✅ Status: %d\n", resp.StatusCode)
	fmt.Printf("📦 Body: %s\n", resp.Body)
}
