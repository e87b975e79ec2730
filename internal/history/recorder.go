// Package history reads observed states from a Home Assistant recorder
// SQLite database, feeding the knowledge base's historical tier.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/home-assistant-tools/automation-lint-go/internal/errors"
)

// Recorder queries the recorder schema (states joined to states_meta).
// The database is opened read-only so a running recorder is never disturbed.
type Recorder struct {
	db *sqlx.DB
}

// Open opens the recorder database at path.
func Open(path string) (*Recorder, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, apperrors.ErrRecorderQuery(err).WithPath(path)
	}
	return &Recorder{db: db}, nil
}

// Close releases the database handle.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// observedRow is one (entity, state) pair from the lookback window.
type observedRow struct {
	EntityID string `db:"entity_id"`
	State    string `db:"state"`
}

// ObservedStates returns the distinct states seen per entity over the last
// `days` days. "unknown" and "unavailable" rows are excluded; they say
// nothing about an entity's real vocabulary.
func (r *Recorder) ObservedStates(ctx context.Context, days int) (map[string][]string, error) {
	cutoff := float64(time.Now().AddDate(0, 0, -days).Unix())

	const query = `
		SELECT sm.entity_id AS entity_id, s.state AS state
		FROM states s
		JOIN states_meta sm ON s.metadata_id = sm.metadata_id
		WHERE s.last_updated_ts >= ?
		  AND s.state IS NOT NULL
		  AND s.state NOT IN ('unknown', 'unavailable', '')
		GROUP BY sm.entity_id, s.state`

	var rows []observedRow
	if err := r.db.SelectContext(ctx, &rows, query, cutoff); err != nil {
		return nil, apperrors.ErrRecorderQuery(err)
	}

	observed := make(map[string][]string)
	for _, row := range rows {
		observed[row.EntityID] = append(observed[row.EntityID], row.State)
	}
	return observed, nil
}
