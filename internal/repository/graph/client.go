// Package graph implements the property-graph store for books, users and
// HAS_READ edges on top of Neo4j.
package graph

import (
	"context"
	"errors"
)

// Record groups key-value pairs returned from the graph engine.
type Record map[string]any

// String returns the value under key coerced to string. Missing or null
// values become "": a fetched node with an absent property materializes as
// the zero value rather than an error.
func (r Record) String(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

// Int returns the value under key coerced to int64, zero when missing,
// null or non-numeric.
func (r Record) Int(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

// Client is the minimal contract the store needs from the underlying graph
// database. It is implemented by the Neo4j driver wrapper and by scripted
// fakes in tests.
type Client interface {
	// ExecuteRead runs a read query and returns all result records.
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) ([]Record, error)
	// ExecuteWrite runs a mutating query and returns all result records.
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) ([]Record, error)
	// VerifyConnectivity checks that the backing database is reachable.
	VerifyConnectivity(ctx context.Context) error
	// Close releases the underlying connections.
	Close(ctx context.Context) error
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
