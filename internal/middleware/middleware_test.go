package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batch-record-processor/internal/logging"
	"batch-record-processor/internal/middleware"
)

func newTestLogger() (*logging.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logging.NewWithSink(buf, "debug"), buf
}

// tagging returns a middleware appending name to order on the way in.
func tagging(name string, order *[]string) middleware.Middleware {
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			*order = append(*order, name)
			return next(ctx, request)
		}
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	handler := middleware.Chain(
		func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			order = append(order, "handler")
			return events.APIGatewayProxyResponse{}, nil
		},
		tagging("outer", &order),
		tagging("inner", &order),
	)

	_, err := handler(context.Background(), events.APIGatewayProxyRequest{})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestChain_PassThrough(t *testing.T) {
	logger, _ := newTestLogger()
	request := events.APIGatewayProxyRequest{Body: `{"records":[]}`, Path: "/process"}
	want := events.APIGatewayProxyResponse{StatusCode: 200, Body: `{"ok":true}`}

	handler := middleware.Chain(
		func(ctx context.Context, got events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			// Event forwarded unchanged
			assert.Equal(t, request, got)
			return want, nil
		},
		middleware.WithObservability(logger, "/process"),
		middleware.WithLoggerContext(),
		middleware.WithInvocationLog(logger),
	)

	resp, err := handler(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, want, resp)
}

func TestWithLoggerContext_UsesLambdaRequestID(t *testing.T) {
	var seen string
	handler := middleware.Chain(
		func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			seen = middleware.RequestIDFromContext(ctx)
			return events.APIGatewayProxyResponse{}, nil
		},
		middleware.WithLoggerContext(),
	)

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{
		AwsRequestID: "req-123",
	})
	_, err := handler(ctx, events.APIGatewayProxyRequest{})

	require.NoError(t, err)
	assert.Equal(t, "req-123", seen)
}

func TestWithLoggerContext_GeneratesRequestID(t *testing.T) {
	var seen string
	handler := middleware.Chain(
		func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			seen = middleware.RequestIDFromContext(ctx)
			return events.APIGatewayProxyResponse{}, nil
		},
		middleware.WithLoggerContext(),
	)

	_, err := handler(context.Background(), events.APIGatewayProxyRequest{})

	require.NoError(t, err)
	_, parseErr := uuid.Parse(seen)
	assert.NoError(t, parseErr)
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	assert.Empty(t, middleware.RequestIDFromContext(context.Background()))
}

func TestWithObservability_LogsSpan(t *testing.T) {
	logger, buf := newTestLogger()
	handler := middleware.Chain(
		func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return events.APIGatewayProxyResponse{StatusCode: 200}, nil
		},
		middleware.WithObservability(logger, "/process"),
	)

	_, err := handler(context.Background(), events.APIGatewayProxyRequest{})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Handler completed")
	assert.Contains(t, out, "/process")
	assert.Contains(t, out, `"status_code":200`)
}

func TestWithObservability_PropagatesError(t *testing.T) {
	logger, buf := newTestLogger()
	wantErr := errors.New("downstream failure")
	handler := middleware.Chain(
		func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return events.APIGatewayProxyResponse{}, wantErr
		},
		middleware.WithObservability(logger, "/process"),
	)

	_, err := handler(context.Background(), events.APIGatewayProxyRequest{})

	assert.ErrorIs(t, err, wantErr)
	assert.Contains(t, buf.String(), "Handler completed with error")
}

func TestWithInvocationLog_LogsAroundHandler(t *testing.T) {
	logger, buf := newTestLogger()
	handler := middleware.Chain(
		func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return events.APIGatewayProxyResponse{StatusCode: 400}, nil
		},
		middleware.WithInvocationLog(logger),
	)

	_, err := handler(context.Background(), events.APIGatewayProxyRequest{Body: "abc"})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Invocation received")
	assert.Contains(t, out, `"body_bytes":3`)
	assert.Contains(t, out, "Invocation finished")
	assert.Contains(t, out, `"status_code":400`)
}
