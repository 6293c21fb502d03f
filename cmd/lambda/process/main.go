// Batch record processing Lambda entry point
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"batch-record-processor/internal/config"
	"batch-record-processor/internal/handlers"
	"batch-record-processor/internal/logging"
	"batch-record-processor/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize logger
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	// Create handler and compose the middleware chain
	handler := handlers.NewBatchHandler(logger)
	chained := middleware.Chain(handler.Handle,
		middleware.WithObservability(logger, "/process"),
		middleware.WithLoggerContext(),
		middleware.WithInvocationLog(logger),
	)

	// Start Lambda
	lambda.Start(chained)
}
