package database

import (
	"fmt"
	"time"
)

// Prune deletes samples older than the retention window and reports
// how many rows went away.
func (db *DB) Prune(retention time.Duration) (int64, error) {
	seconds := int64(retention.Seconds())

	res, err := db.Exec(
		`DELETE FROM samples WHERE timestamp < datetime('now', '-' || ? || ' seconds')`,
		seconds,
	)
	if err != nil {
		return 0, fmt.Errorf("prune samples: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	// Reclaim space once a month
	if time.Now().Day() == 1 {
		if _, err := db.Exec("VACUUM"); err != nil {
			return deleted, err
		}
	}

	return deleted, nil
}
