package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"gymangel-backend/internal/config"
)

// PostgresDB quản lý connection pool và lifecycle của database
type PostgresDB struct {
	Pool   *pgxpool.Pool
	Config *config.DatabaseConfig
}

// Connect tạo connection pool với retry + exponential backoff.
// Pool duy trì sẵn connections, giảm latency và tăng throughput.
func Connect(ctx context.Context, cfg *config.DatabaseConfig) (*PostgresDB, error) {
	db := &PostgresDB{Config: cfg}

	poolConfig, err := db.configurePool()
	if err != nil {
		return nil, err
	}

	pool, err := db.connectWithRetry(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	db.Pool = pool
	log.Printf("[DATABASE] Connected to %s:%d/%s (pool %d-%d)",
		cfg.Host, cfg.Port, cfg.Database, cfg.MinConns, cfg.MaxConns)
	return db, nil
}

func (db *PostgresDB) buildConnectionString() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		db.Config.User,
		db.Config.Password,
		db.Config.Host,
		db.Config.Port,
		db.Config.Database,
		db.Config.SSLMode,
	)
}

func (db *PostgresDB) configurePool() (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(db.buildConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	cfg.MaxConns = int32(db.Config.MaxConns)
	cfg.MinConns = int32(db.Config.MinConns)

	// Refresh connections định kỳ để tránh stale connections
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute
	cfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return cfg, nil
}

func (db *PostgresDB) connectWithRetry(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
	const maxRetries = 5
	delay := time.Second

	var pool *pgxpool.Pool
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("[DATABASE] Connection attempt %d/%d", attempt, maxRetries)

		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		pool, lastErr = pgxpool.NewWithConfig(connectCtx, cfg)
		if lastErr == nil {
			lastErr = pool.Ping(connectCtx)
		}
		cancel()

		if lastErr == nil {
			return pool, nil
		}

		log.Printf("[DATABASE] Attempt %d failed: %v", attempt, lastErr)
		time.Sleep(delay)
		delay *= 2 // exponential backoff
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", maxRetries, lastErr)
}

// HealthCheck ping database với timeout ngắn
func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.Pool.Ping(ctx)
}

// Close đóng connection pool
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}
