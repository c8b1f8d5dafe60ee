package database

import (
	"database/sql"

	"netpulse/internal/models"
)

// SaveSample saves a probe sample to the database
func (db *DB) SaveSample(s models.Sample) error {
	query := `
        INSERT INTO samples (timestamp, target, success, rtt_ms, error)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := db.Exec(query,
		s.Timestamp.UTC().Format(sqliteTimeLayout),
		s.Target,
		s.Success,
		s.RTT,
		s.Error,
	)
	return err
}

// RecentSamples retrieves samples from the last given hours, newest
// first.
func (db *DB) RecentSamples(hours int) ([]models.Sample, error) {
	query := `
        SELECT timestamp, target, success, rtt_ms, error
        FROM samples
        WHERE timestamp > datetime('now', '-' || ? || ' hours')
        ORDER BY timestamp DESC
        LIMIT 10000
    `

	rows, err := db.Query(query, hours)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.Sample
	for rows.Next() {
		var s models.Sample
		var errMsg sql.NullString
		if err := rows.Scan(&s.Timestamp, &s.Target, &s.Success, &s.RTT, &errMsg); err != nil {
			continue
		}
		if errMsg.Valid {
			s.Error = errMsg.String
		}
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

// StatsByTarget aggregates per-target statistics over the last given
// hours. Targets whose probes all failed still get a row; their RTT
// aggregates are zero.
func (db *DB) StatsByTarget(hours int) ([]models.Stats, error) {
	query := `
        SELECT
            target,
            COUNT(*) as total_probes,
            SUM(CASE WHEN success THEN 1 ELSE 0 END) as successful_probes,
            AVG(CASE WHEN success THEN rtt_ms ELSE NULL END) as avg_rtt,
            MAX(CASE WHEN success THEN rtt_ms ELSE NULL END) as max_rtt,
            MIN(CASE WHEN success THEN rtt_ms ELSE NULL END) as min_rtt,
            ROUND((1.0 - (CAST(SUM(CASE WHEN success THEN 1 ELSE 0 END) AS REAL) / COUNT(*))) * 100, 2) as loss_percent
        FROM samples
        WHERE timestamp > datetime('now', '-' || ? || ' hours')
        GROUP BY target
        ORDER BY target
    `

	rows, err := db.Query(query, hours)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.Stats
	for rows.Next() {
		var s models.Stats
		var avg, max, min sql.NullFloat64
		if err := rows.Scan(&s.Target, &s.TotalProbes, &s.Successful,
			&avg, &max, &min, &s.LossPercent); err != nil {
			continue
		}
		s.AvgRTT = avg.Float64
		s.MaxRTT = max.Float64
		s.MinRTT = min.Float64
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
