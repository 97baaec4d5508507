package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chriscakes/internal/models"
)

// SiteSettings returns the settings document, or nil if none is stored.
func (s *Store) SiteSettings(ctx context.Context) (*models.SiteSettings, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT document FROM site_settings WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load site settings: %w", err)
	}

	var settings models.SiteSettings
	if err := decodeJSON(raw, &settings, "site settings"); err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSiteSettings upserts the settings document.
func (s *Store) SaveSiteSettings(ctx context.Context, settings *models.SiteSettings) error {
	return saveSettings(ctx, s.db, settings)
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveSettings(ctx context.Context, db execer, settings *models.SiteSettings) error {
	if settings == nil {
		_, err := db.ExecContext(ctx, `DELETE FROM site_settings`)
		return err
	}
	doc, err := encodeJSON(settings)
	if err != nil {
		return fmt.Errorf("encode site settings: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO site_settings (id, document, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id)
		DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`,
		doc,
	)
	if err != nil {
		return fmt.Errorf("save site settings: %w", err)
	}
	return nil
}
