package repository

import (
	"context"
	"fmt"
)

// ListSettings returns all site settings as raw key/value pairs. Typed
// interpretation happens in domain.ParseSiteConfig.
func (q *Queries) ListSettings(ctx context.Context) (map[string]string, error) {
	rows, err := q.db.Query(ctx, `SELECT key, value FROM site_settings`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

func (q *Queries) UpsertSetting(ctx context.Context, key, value string) error {
	if _, err := q.db.Exec(ctx, `
		INSERT INTO site_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value); err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}
