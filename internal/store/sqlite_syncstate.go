package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetLastSync returns the last completed sync time for an entity type.
// A zero time means no sync has completed yet.
func (s *Store) GetLastSync(entity string) (time.Time, error) {
	var ts time.Time
	err := s.db.QueryRow(`SELECT last_sync FROM sync_state WHERE entity = ?`, entity).Scan(&ts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to query last sync for %s: %w", entity, err)
	}
	return ts, nil
}

func (s *Store) SetLastSync(entity string, ts time.Time) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO sync_state (entity, last_sync) VALUES (?, ?)
	`, entity, ts)
	if err != nil {
		return fmt.Errorf("failed to set last sync for %s: %w", entity, err)
	}
	return nil
}
