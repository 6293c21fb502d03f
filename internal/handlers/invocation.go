// Package handlers provides Lambda handlers for batch record processing.
package handlers

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"batch-record-processor/internal/logging"
	"batch-record-processor/internal/middleware"
)

// Invocation carries the runtime capabilities resolved once at the handler
// boundary. Absent capabilities stay at their zero values; readers must not
// assume every field is populated.
type Invocation struct {
	RequestID     string
	FunctionName  string
	MemoryLimitMB int
	Deadline      time.Time
	HasDeadline   bool
}

// resolveInvocation reads the Lambda context and deadline from ctx, falling
// back to a middleware-injected request ID and then to a fresh one so
// responses always carry an identifier.
func resolveInvocation(ctx context.Context) Invocation {
	inv := Invocation{
		FunctionName:  lambdacontext.FunctionName,
		MemoryLimitMB: lambdacontext.MemoryLimitInMB,
	}

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		inv.RequestID = lc.AwsRequestID
	}
	if inv.RequestID == "" {
		inv.RequestID = middleware.RequestIDFromContext(ctx)
	}
	if inv.RequestID == "" {
		inv.RequestID = uuid.New().String()
	}

	if deadline, ok := ctx.Deadline(); ok {
		inv.Deadline = deadline
		inv.HasDeadline = true
	}

	return inv
}

// RemainingMillis returns the time left before the invocation deadline, when
// the runtime provided one.
func (inv Invocation) RemainingMillis() (int64, bool) {
	if !inv.HasDeadline {
		return 0, false
	}
	remaining := time.Until(inv.Deadline).Milliseconds()
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// fields renders the invocation for the entry log, reporting "unknown" for
// capabilities the runtime did not provide.
func (inv Invocation) fields() []logging.Field {
	fields := []logging.Field{logging.String("request_id", inv.RequestID)}

	if inv.FunctionName != "" {
		fields = append(fields, logging.String("function_name", inv.FunctionName))
	} else {
		fields = append(fields, logging.String("function_name", "unknown"))
	}

	if inv.MemoryLimitMB > 0 {
		fields = append(fields, logging.Int("memory_limit_mb", inv.MemoryLimitMB))
	} else {
		fields = append(fields, logging.String("memory_limit_mb", "unknown"))
	}

	if remaining, ok := inv.RemainingMillis(); ok {
		fields = append(fields, logging.Int64("remaining_time_ms", remaining))
	} else {
		fields = append(fields, logging.String("remaining_time_ms", "unknown"))
	}

	return fields
}
