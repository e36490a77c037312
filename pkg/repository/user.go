package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsdrop/pkg/domain"
)

// UserRepository stores user channel configurations
type UserRepository struct {
	db *sqlx.DB
}

// userSQL represents a user channel config for SQL operations
type userSQL struct {
	UserID                 string     `db:"user_id"`
	Categories             stringsSQL `db:"categories"`
	Channels               stringsSQL `db:"channels"`
	Email                  string     `db:"email"`
	Phone                  string     `db:"phone"`
	TelegramChatID         string     `db:"telegram_chat_id"`
	IntervalMinutes        int        `db:"notification_interval_minutes"`
	LastNotificationSentAt *time.Time `db:"last_notification_sent_at"`
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userSelect = `
	SELECT user_id, categories, channels, email, phone, telegram_chat_id,
	       notification_interval_minutes, last_notification_sent_at
	FROM users`

// GetAll returns all user configs
func (r *UserRepository) GetAll(ctx context.Context) ([]domain.UserChannelConfig, error) {
	var recs []userSQL
	if err := r.db.SelectContext(ctx, &recs, userSelect+" ORDER BY user_id"); err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	res := make([]domain.UserChannelConfig, len(recs))
	for i := range recs {
		res[i] = recs[i].toDomain()
	}
	return res, nil
}

// GetUser returns a single user config or domain.ErrNotFound
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*domain.UserChannelConfig, error) {
	var rec userSQL
	err := r.db.GetContext(ctx, &rec, userSelect+" WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	res := rec.toDomain()
	return &res, nil
}

// GetUserByTelegramChat returns the user linked to a telegram chat or domain.ErrNotFound
func (r *UserRepository) GetUserByTelegramChat(ctx context.Context, chatID string) (*domain.UserChannelConfig, error) {
	if chatID == "" {
		return nil, fmt.Errorf("empty telegram chat: %w", domain.ErrNotFound)
	}
	var rec userSQL
	err := r.db.GetContext(ctx, &rec, userSelect+" WHERE telegram_chat_id = ? ORDER BY updated_at DESC LIMIT 1", chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user with telegram chat %s: %w", chatID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by telegram chat %s: %w", chatID, err)
	}
	res := rec.toDomain()
	return &res, nil
}

// SaveUser creates or replaces a user config. The last notification time is kept unless set in cfg.
func (r *UserRepository) SaveUser(ctx context.Context, cfg *domain.UserChannelConfig) error {
	if cfg.NotificationIntervalMinutes <= 0 {
		cfg.NotificationIntervalMinutes = domain.DefaultNotificationInterval
	}
	query := `
		INSERT INTO users (user_id, categories, channels, email, phone, telegram_chat_id,
		                   notification_interval_minutes, last_notification_sent_at)
		VALUES (:user_id, :categories, :channels, :email, :phone, :telegram_chat_id,
		        :notification_interval_minutes, :last_notification_sent_at)
		ON CONFLICT(user_id) DO UPDATE SET
			categories = excluded.categories,
			channels = excluded.channels,
			email = excluded.email,
			phone = excluded.phone,
			telegram_chat_id = excluded.telegram_chat_id,
			notification_interval_minutes = excluded.notification_interval_minutes,
			last_notification_sent_at = COALESCE(excluded.last_notification_sent_at, users.last_notification_sent_at),
			updated_at = CURRENT_TIMESTAMP
	`
	err := withRetry(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, query, fromDomainUser(cfg))
		return err
	})
	if err != nil {
		return fmt.Errorf("save user %s: %w", cfg.UserID, err)
	}
	return nil
}

// UpdateLastNotificationSent sets the time of the last delivered batch
func (r *UserRepository) UpdateLastNotificationSent(ctx context.Context, userID string, sentAt time.Time) error {
	var affected int64
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			"UPDATE users SET last_notification_sent_at = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?",
			sentAt.UTC(), userID)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("update last notification of %s: %w", userID, err)
	}
	if affected == 0 {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}

func (u *userSQL) toDomain() domain.UserChannelConfig {
	channels := make([]domain.Channel, len(u.Channels))
	for i, ch := range u.Channels {
		channels[i] = domain.Channel(ch)
	}
	return domain.UserChannelConfig{
		UserID:                      u.UserID,
		Categories:                  []string(u.Categories),
		Channels:                    channels,
		Email:                       u.Email,
		Phone:                       u.Phone,
		TelegramChatID:              u.TelegramChatID,
		NotificationIntervalMinutes: u.IntervalMinutes,
		LastNotificationSentAt:      u.LastNotificationSentAt,
	}
}

func fromDomainUser(cfg *domain.UserChannelConfig) *userSQL {
	channels := make(stringsSQL, len(cfg.Channels))
	for i, ch := range cfg.Channels {
		channels[i] = string(ch)
	}
	categories := make(stringsSQL, len(cfg.Categories))
	for i, c := range cfg.Categories {
		categories[i] = partition(c)
	}
	res := &userSQL{
		UserID:          cfg.UserID,
		Categories:      categories,
		Channels:        channels,
		Email:           cfg.Email,
		Phone:           cfg.Phone,
		TelegramChatID:  cfg.TelegramChatID,
		IntervalMinutes: cfg.NotificationIntervalMinutes,
	}
	if cfg.LastNotificationSentAt != nil {
		last := cfg.LastNotificationSentAt.UTC()
		res.LastNotificationSentAt = &last
	}
	return res
}
