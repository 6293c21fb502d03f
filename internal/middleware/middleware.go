// Package middleware composes cross-cutting wrappers around Lambda handlers.
// Each wrapper forwards the event and context unchanged and returns the inner
// handler's result untouched, adding only log emission or context enrichment.
package middleware

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"batch-record-processor/internal/logging"
)

// Handler is the Lambda handler signature the chain wraps.
type Handler func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Middleware wraps a Handler with pre/post behavior.
type Middleware func(Handler) Handler

// Chain applies middlewares to h so the first one listed runs outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDFromContext returns the request ID stored by WithLoggerContext,
// or "" if none was stored.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithLoggerContext resolves the invocation's request ID, generating one when
// the runtime supplied none, and stores it in the context for downstream log
// correlation.
func WithLoggerContext() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			requestID := ""
			if lc, ok := lambdacontext.FromContext(ctx); ok {
				requestID = lc.AwsRequestID
			}
			if requestID == "" {
				requestID = uuid.New().String()
			}
			return next(context.WithValue(ctx, requestIDKey, requestID), request)
		}
	}
}

// WithObservability logs a timed span around the handler for the given route.
func WithObservability(logger *logging.Logger, route string) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, request)

			fields := []logging.Field{
				logging.String("route", route),
				logging.Int("status_code", resp.StatusCode),
				logging.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if err != nil {
				logger.Error("Handler completed with error", append(fields, logging.Error(err))...)
			} else {
				logger.Info("Handler completed", fields...)
			}

			return resp, err
		}
	}
}

// WithInvocationLog logs invocation receipt and completion.
func WithInvocationLog(logger *logging.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			logger.Info("Invocation received",
				logging.String("request_id", RequestIDFromContext(ctx)),
				logging.Int("body_bytes", len(request.Body)))

			resp, err := next(ctx, request)

			logger.Info("Invocation finished",
				logging.String("request_id", RequestIDFromContext(ctx)),
				logging.Int("status_code", resp.StatusCode))

			return resp, err
		}
	}
}
