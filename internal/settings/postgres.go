package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"community-bot/internal/settings/migrations"
)

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// PostgresStore keeps the snapshot as a single jsonb row, for deployments
// where a mounted settings file is not an option.
type PostgresStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPostgresStore(ctx context.Context, cfg PostgresConfig, logger *zap.Logger) (*PostgresStore, error) {
	const operation = "settings.NewPostgresStore"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName,
	)

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	if err := migrations.Run(ctx, db.DB); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStore{db: db, logger: logger}, nil
}

func (p *PostgresStore) Load(ctx context.Context) (*Settings, error) {
	var data []byte
	err := p.db.GetContext(ctx, &data, `SELECT data FROM bot_settings WHERE id = 1`)
	if err != nil {
		return nil, fmt.Errorf("load settings row: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings row: %w", err)
	}
	if s.NoticedUsers == nil {
		s.NoticedUsers = make(map[string]int64)
	}
	return &s, nil
}

func (p *PostgresStore) Save(ctx context.Context, s *Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if _, err := p.db.ExecContext(ctx,
		`UPDATE bot_settings SET data = $1, updated_at = now() WHERE id = 1`, data); err != nil {
		return fmt.Errorf("save settings row: %w", err)
	}
	return nil
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}
