package observability

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/event"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/tbourn/mission-control/internal/observability"

// MongoMonitor returns a command monitor that opens a client span for every
// command the driver sends and closes it when the reply (or failure) arrives.
// Spans are parented on the context passed to the driver call, so they nest
// under the otelgin request span.
func MongoMonitor() *event.CommandMonitor {
	var (
		mu    sync.Mutex
		spans = make(map[int64]trace.Span)
	)

	finish := func(requestID int64, err error) {
		mu.Lock()
		span, ok := spans[requestID]
		delete(spans, requestID)
		mu.Unlock()
		if !ok {
			return
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}

	return &event.CommandMonitor{
		Started: func(ctx context.Context, e *event.CommandStartedEvent) {
			_, span := otel.Tracer(tracerName).Start(ctx, "mongo."+e.CommandName,
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					attribute.String("db.system", "mongodb"),
					attribute.String("db.name", e.DatabaseName),
					attribute.String("db.operation", e.CommandName),
				),
			)
			mu.Lock()
			spans[e.RequestID] = span
			mu.Unlock()
		},
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			finish(e.RequestID, nil)
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			finish(e.RequestID, errors.New(e.Failure))
		},
	}
}
