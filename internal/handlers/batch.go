package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"batch-record-processor/internal/logging"
	"batch-record-processor/internal/models"
	"batch-record-processor/internal/processor"
)

// recordProcessor is the batch-processing dependency of the handler.
type recordProcessor interface {
	Process(records []models.Record) models.ProcessingResult
}

// BatchHandler handles batch record processing requests.
type BatchHandler struct {
	logger    *logging.Logger
	processor recordProcessor
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(logger *logging.Logger) *BatchHandler {
	return &BatchHandler{
		logger:    logger,
		processor: processor.New(logger),
	}
}

// requestBody is the optional JSON payload of an invocation.
type requestBody struct {
	Records []models.Record `json:"records"`
}

// successBody is the 200 response payload.
type successBody struct {
	Message   string                  `json:"message"`
	Result    models.ProcessingResult `json:"result"`
	RequestID string                  `json:"request_id"`
}

// failureBody is the 400/500 response payload.
type failureBody struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Handle processes one invocation: parse the optional body, fall back to the
// demo fixture, run the batch, and assemble the response envelope. Failures
// past body validation surface as a 500 envelope, never as a handler error.
func (h *BatchHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	start := time.Now()
	inv := resolveInvocation(ctx)

	defer func() {
		if r := recover(); r != nil {
			recErr, ok := r.(error)
			if !ok {
				recErr = fmt.Errorf("%v", r)
			}
			h.logger.Error("Unhandled error in batch handler",
				logging.Error(recErr),
				logging.Stack("traceback"),
				logging.String("request_id", inv.RequestID))
			resp = errorResponse(http.StatusInternalServerError, jsonHeaders(), failureBody{
				Error:     "Internal server error",
				Message:   recErr.Error(),
				RequestID: inv.RequestID,
			})
			err = nil
		}
	}()

	h.logger.Info("Lambda function invoked", inv.fields()...)

	var body requestBody
	if request.Body != "" {
		if jsonErr := json.Unmarshal([]byte(request.Body), &body); jsonErr != nil {
			h.logger.Error("Failed to parse request body", logging.Error(jsonErr))
			return errorResponse(http.StatusBadRequest, nil, failureBody{
				Error: "Invalid JSON in request body",
			}), nil
		}
		h.logger.Info("Parsed request body", logging.Int("size_bytes", len(request.Body)))
	}

	// Fall back to the demo fixture if no records were supplied
	records := body.Records
	if len(records) == 0 {
		records = models.SampleRecords()
	}

	h.logger.Info("Processing input records", logging.Int("count", len(records)))

	result := h.processor.Process(records)

	if remaining, ok := inv.RemainingMillis(); ok {
		h.logger.Info("Lambda resource utilization",
			logging.Int64("remaining_time_ms", remaining),
			logging.Int64("used_time_ms", time.Since(start).Milliseconds()))
	}

	respBody, _ := json.Marshal(successBody{
		Message:   "Processing complete",
		Result:    result,
		RequestID: inv.RequestID,
	})

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    jsonHeaders(),
		Body:       string(respBody),
	}, nil
}

// jsonHeaders returns the headers for JSON response envelopes.
func jsonHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
	}
}

// errorResponse builds a failure envelope with the given status and headers.
func errorResponse(status int, headers map[string]string, body failureBody) events.APIGatewayProxyResponse {
	b, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(b),
	}
}
