package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRecorderDB creates a recorder-shaped SQLite database with a few rows:
// recent states inside the lookback window, one stale row outside it, and
// unavailable noise that must be filtered.
func newRecorderDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "home-assistant_v2.db")

	db, err := sqlx.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	schema := `
	CREATE TABLE states_meta (
		metadata_id INTEGER PRIMARY KEY,
		entity_id TEXT NOT NULL
	);
	CREATE TABLE states (
		state_id INTEGER PRIMARY KEY,
		metadata_id INTEGER NOT NULL,
		state TEXT,
		last_updated_ts REAL
	);`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	now := float64(time.Now().Unix())
	old := float64(time.Now().AddDate(0, 0, -60).Unix())

	_, err = db.Exec(`INSERT INTO states_meta (metadata_id, entity_id) VALUES
		(1, 'binary_sensor.front_door'),
		(2, 'person.matt'),
		(3, 'sensor.retired')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO states (metadata_id, state, last_updated_ts) VALUES
		(1, 'on', ?),
		(1, 'off', ?),
		(1, 'on', ?),
		(1, 'unavailable', ?),
		(2, 'home', ?),
		(2, 'not_home', ?),
		(3, 'gone', ?)`,
		now, now, now, now, now, now, old)
	require.NoError(t, err)

	return path
}

func TestObservedStates(t *testing.T) {
	t.Parallel()

	rec, err := Open(newRecorderDB(t))
	require.NoError(t, err)
	defer rec.Close()

	observed, err := rec.ObservedStates(context.Background(), 30)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"on", "off"}, observed["binary_sensor.front_door"])
	assert.ElementsMatch(t, []string{"home", "not_home"}, observed["person.matt"])

	// Outside the lookback window.
	_, ok := observed["sensor.retired"]
	assert.False(t, ok)
}

func TestObservedStatesRespectsContext(t *testing.T) {
	t.Parallel()

	rec, err := Open(newRecorderDB(t))
	require.NoError(t, err)
	defer rec.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = rec.ObservedStates(ctx, 30)
	require.Error(t, err)
}

func TestOpenMissingFileFailsOnQuery(t *testing.T) {
	t.Parallel()

	rec, err := Open(filepath.Join(t.TempDir(), "missing.db"))
	require.NoError(t, err, "sqlite defers file access to the first query")
	defer rec.Close()

	_, err = rec.ObservedStates(context.Background(), 30)
	require.Error(t, err)
}
