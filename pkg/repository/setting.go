package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mappin-app/mappin/pkg/domain"
)

// SettingRepository handles setting-related database operations
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

type settingSQL struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// GetSetting retrieves a setting value, missing key is an empty value
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	s, err := r.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.Value, nil
}

// Get retrieves a setting with its update time
func (r *SettingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	var row settingSQL
	err := r.db.GetContext(ctx, &row, r.db.Rebind("SELECT key, value, updated_at FROM settings WHERE key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &domain.Setting{Key: row.Key, Value: row.Value, UpdatedAt: row.UpdatedAt}, nil
}

// SetSetting stores a setting value
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	query := r.db.Rebind(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	return lockRetrier().Do(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("set setting: %w", err)}
		}
		return nil
	}, errCritical)
}
