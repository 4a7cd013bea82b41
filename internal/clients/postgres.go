package clients

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vyborpervykh/estatebot/core/logger"
	"log/slog"
)

type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore constructs a Store backed by the clients table.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

// Upsert inserts the client or replaces every registered field for an
// existing telegram_id.
func (s *postgresStore) Upsert(ctx context.Context, client Client) error {
	start := time.Now()
	const query = `
		INSERT INTO clients (telegram_id, name, phone, username, referrer)
		VALUES (:telegram_id, :name, :phone, :username, :referrer)
		ON CONFLICT (telegram_id) DO UPDATE SET
			name       = EXCLUDED.name,
			phone      = EXCLUDED.phone,
			username   = EXCLUDED.username,
			referrer   = EXCLUDED.referrer,
			updated_at = now()`

	if _, err := s.db.NamedExecContext(ctx, query, client); err != nil {
		logger.LogEvent(ctx, logger.SVCClients, slog.LevelError, "client.upsert",
			slog.String("status", "fail"),
			slog.Int64("user_id", client.TelegramID),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("upsert client %d: %w", client.TelegramID, err)
	}

	logger.LogEvent(ctx, logger.SVCClients, slog.LevelInfo, "client.upsert",
		slog.String("status", "ok"),
		slog.Int64("user_id", client.TelegramID),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// Get fetches a client by telegram id; absence is not an error.
func (s *postgresStore) Get(ctx context.Context, telegramID int64) (*Client, error) {
	const query = `
		SELECT telegram_id, name, phone, username, referrer, created_at, updated_at
		FROM clients
		WHERE telegram_id = $1`

	var client Client
	if err := s.db.GetContext(ctx, &client, query, telegramID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.LogEvent(ctx, logger.SVCClients, slog.LevelError, "client.get",
			slog.String("status", "fail"),
			slog.Int64("user_id", telegramID),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("get client %d: %w", telegramID, err)
	}
	return &client, nil
}
