package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Config holds connection settings for the Neo4j-backed client.
type Config struct {
	URI       string
	Username  string
	Password  string
	FetchSize int // result page size per round trip
}

// neoClient implements Client over a long-lived Neo4j driver. Sessions are
// opened per operation; the driver pools connections internally.
type neoClient struct {
	driver    neo4j.DriverWithContext
	fetchSize int
}

// Connect opens a driver against the configured endpoint. The caller is
// expected to verify connectivity once at startup and treat failure as fatal.
func Connect(ctx context.Context, cfg Config) (Client, error) {
	if cfg.URI == "" {
		return nil, ErrMissingURI
	}
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, err
	}
	return &neoClient{driver: driver, fetchSize: cfg.FetchSize}, nil
}

func (c *neoClient) run(ctx context.Context, mode neo4j.AccessMode, cypher string, params map[string]any) ([]Record, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode: mode,
		FetchSize:  c.fetchSize,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	var records []Record
	for result.Next(ctx) {
		records = append(records, Record(result.Record().AsMap()))
	}
	return records, result.Err()
}

// ExecuteRead runs cypher in a read-mode session.
func (c *neoClient) ExecuteRead(ctx context.Context, cypher string, params map[string]any) ([]Record, error) {
	return c.run(ctx, neo4j.AccessModeRead, cypher, params)
}

// ExecuteWrite runs cypher in a write-mode session.
func (c *neoClient) ExecuteWrite(ctx context.Context, cypher string, params map[string]any) ([]Record, error) {
	return c.run(ctx, neo4j.AccessModeWrite, cypher, params)
}

// VerifyConnectivity checks the endpoint is reachable.
func (c *neoClient) VerifyConnectivity(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

// Close shuts down the driver and its connection pool.
func (c *neoClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}
