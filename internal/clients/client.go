package clients

import (
	"context"
	"time"
)

// Client is a registered lead: someone who completed the name/phone intake.
// Username and Referrer keep the values captured at registration time;
// re-registering replaces the whole record.
type Client struct {
	TelegramID int64     `db:"telegram_id"`
	Name       string    `db:"name"`
	Phone      string    `db:"phone"`
	Username   string    `db:"username"`
	Referrer   string    `db:"referrer"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Store persists the client registry.
//
// Get returns (nil, nil) when the client is not registered; an error means
// the lookup itself failed.
type Store interface {
	Upsert(ctx context.Context, client Client) error
	Get(ctx context.Context, telegramID int64) (*Client, error)
}
