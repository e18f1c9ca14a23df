// Package history records which stations were played, and for how long,
// in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/tessro/dial/internal/logging"
)

// Play is one continuous stretch of a station being played.
type Play struct {
	ID          int64
	SessionID   string
	StationID   string
	StationName string
	Country     string
	Language    string
	StreamURL   string
	StartedAt   time.Time
	EndedAt     time.Time // zero while still playing
}

// Duration returns how long the play lasted, or has lasted so far.
func (p Play) Duration() time.Duration {
	if p.EndedAt.IsZero() {
		return time.Since(p.StartedAt)
	}
	return p.EndedAt.Sub(p.StartedAt)
}

// StationCount is a station with its number of plays.
type StationCount struct {
	StationID   string
	StationName string
	Plays       int
	LastPlayed  time.Time
}

// Store is the play history database.
type Store struct {
	db  *sql.DB
	log *log.Entry
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create history directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// One writer at a time; avoids SQLITE_BUSY between the recorder and readers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db, log: logging.For("history")}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}

	s.log.Debugf("history database at %s", path)
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS plays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL DEFAULT '',
			station_id TEXT NOT NULL,
			station_name TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT '',
			stream_url TEXT NOT NULL DEFAULT '',
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plays_started_at ON plays(started_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_plays_station_id ON plays(station_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// Start records the beginning of a play and returns its ID.
func (s *Store) Start(ctx context.Context, p Play) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO plays (session_id, station_id, station_name, country, language, stream_url, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.SessionID, p.StationID, p.StationName, p.Country, p.Language, p.StreamURL, formatTime(p.StartedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("record play: %w", err)
	}
	return res.LastInsertId()
}

// Finish sets the end time of a play.
func (s *Store) Finish(ctx context.Context, id int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE plays SET ended_at = ? WHERE id = ? AND ended_at = ''`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("finish play: %w", err)
	}
	return nil
}

// Recent returns the most recent plays, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Play, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, station_id, station_name, country, language, stream_url, started_at, ended_at
		 FROM plays
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var started, ended string
		if err := rows.Scan(&p.ID, &p.SessionID, &p.StationID, &p.StationName, &p.Country,
			&p.Language, &p.StreamURL, &started, &ended); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		p.StartedAt = parseTime(started)
		p.EndedAt = parseTime(ended)
		plays = append(plays, p)
	}
	return plays, rows.Err()
}

// MostPlayed returns stations ordered by number of plays.
func (s *Store) MostPlayed(ctx context.Context, limit int) ([]StationCount, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT station_id, MAX(station_name), COUNT(*) AS play_count, MAX(started_at) AS last_played
		 FROM plays
		 GROUP BY station_id
		 ORDER BY play_count DESC, last_played DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query most played: %w", err)
	}
	defer rows.Close()

	var counts []StationCount
	for rows.Next() {
		var c StationCount
		var last string
		if err := rows.Scan(&c.StationID, &c.StationName, &c.Plays, &last); err != nil {
			return nil, fmt.Errorf("scan most played row: %w", err)
		}
		c.LastPlayed = parseTime(last)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
