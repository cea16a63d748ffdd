package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// PostgreSQLClient is a direct Postgres connection for self-hosted
// deployments of the measurements store.
type PostgreSQLClient struct {
	DB *sql.DB
}

// NewPostgreSQLClient connects using POSTGRES_DSN.
func NewPostgreSQLClient() (*PostgreSQLClient, error) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_DSN environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	return &PostgreSQLClient{DB: db}, nil
}

// NewPostgreSQLClientWithRetry retries the initial connection, for
// environments where the database comes up after the service.
func NewPostgreSQLClientWithRetry(attempts int, interval time.Duration) (*PostgreSQLClient, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		client, err := NewPostgreSQLClient()
		if err == nil {
			return client, nil
		}
		lastErr = err
		time.Sleep(interval)
	}
	return nil, fmt.Errorf("postgres connection failed after %d attempts: %w", attempts, lastErr)
}

// Close closes the connection pool.
func (pc *PostgreSQLClient) Close() error {
	if pc.DB != nil {
		return pc.DB.Close()
	}
	return nil
}

// HealthCheck pings the database.
func (pc *PostgreSQLClient) HealthCheck() error {
	if pc.DB == nil {
		return fmt.Errorf("postgres client is not initialized")
	}
	return pc.DB.Ping()
}
