// Package store holds the MappingStore adapters: DynamoDB, Redis, Postgres
// and an in-memory variant. Adapters never return Go errors for backend
// problems; they classify them into a tinyurl.Failure.
package store

import (
	"context"
	"errors"
	"net/http"

	"tinyurl.local/internal/app/tinyurl"
)

// Display names used as the "<store>" part of composed failure messages.
const (
	DynamoName   = "DynamoDB"
	RedisName    = "Redis"
	PostgresName = "Postgres"
	MemoryName   = "Memory"
)

// Pinger is implemented by adapters that can report backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// contextFailure classifies deadline and cancellation errors, which look the
// same on every backend. ok is false for anything else.
func contextFailure(store string, err error) (*tinyurl.Failure, bool) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &tinyurl.Failure{Store: store, Code: http.StatusGatewayTimeout, Name: "Timeout", Message: err.Error()}, true
	case errors.Is(err, context.Canceled):
		return &tinyurl.Failure{Store: store, Code: 499, Name: "RequestCanceled", Message: err.Error()}, true
	default:
		return nil, false
	}
}
