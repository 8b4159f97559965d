// Package storage provides SQLite-based persistence for campaign runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord represents one campaign run.
type RunRecord struct {
	RunID      string // UUID, generated by SaveRun when empty
	CampaignID string
	Completed  bool
	LivesLeft  int
	Seed       int64
	Difficulty string
	CreatedAt  time.Time
	Results    []LevelRecord // Filled by SaveRun input and RunResults, not by RecentRuns
}

// LevelRecord represents one attempt at one level within a run.
type LevelRecord struct {
	LevelID   string
	Attempt   int
	Outcome   string // "won", "lost" or "timeout"
	Ticks     int
	CoinsLeft int
}

// CampaignStats contains aggregated statistics for a campaign.
type CampaignStats struct {
	CampaignID    string
	Runs          int
	Completed     int
	BestLivesLeft int
	LevelsWon     int
	LevelsLost    int
	Timeouts      int
	LastPlayed    time.Time
}

// NewRunRecord converts a campaign result into a record ready to save.
func NewRunRecord(campaignID string, seed int64, difficulty string, res platformer.CampaignResult) RunRecord {
	rec := RunRecord{
		CampaignID: campaignID,
		Completed:  res.Completed,
		LivesLeft:  res.LivesLeft,
		Seed:       seed,
		Difficulty: difficulty,
		Results:    make([]LevelRecord, len(res.Results)),
	}
	for i, r := range res.Results {
		rec.Results[i] = LevelRecord{
			LevelID:   r.LevelID,
			Attempt:   r.Attempt,
			Outcome:   string(r.Outcome),
			Ticks:     r.Ticks,
			CoinsLeft: r.CoinsLeft,
		}
	}
	return rec
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			campaign_id TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			lives_left INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_campaign_id ON runs(campaign_id);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			attempt INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			coins_left INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_run_id ON level_results(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and its level results in one transaction.
// Returns the run ID.
func (s *Store) SaveRun(run RunRecord) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (run_id, campaign_id, completed, lives_left, seed, difficulty)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID, run.CampaignID, run.Completed, run.LivesLeft, run.Seed, run.Difficulty,
	); err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	for _, r := range run.Results {
		if _, err := tx.Exec(
			`INSERT INTO level_results (run_id, level_id, attempt, outcome, ticks, coins_left)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			run.RunID, r.LevelID, r.Attempt, r.Outcome, r.Ticks, r.CoinsLeft,
		); err != nil {
			return "", fmt.Errorf("storage: cannot save level result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}

	return run.RunID, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// An empty campaignID returns runs of every campaign.
func (s *Store) RecentRuns(campaignID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT run_id, campaign_id, completed, lives_left, seed, difficulty, created_at
		 FROM runs
		 WHERE ? = '' OR campaign_id = ?
		 ORDER BY seq DESC
		 LIMIT ?`,
		campaignID, campaignID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.RunID, &r.CampaignID, &r.Completed, &r.LivesLeft, &r.Seed, &r.Difficulty, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunResults retrieves the level results of a run in play order.
func (s *Store) RunResults(runID string) ([]LevelRecord, error) {
	rows, err := s.db.Query(
		`SELECT level_id, attempt, outcome, ticks, coins_left
		 FROM level_results
		 WHERE run_id = ?
		 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level results: %w", err)
	}
	defer rows.Close()

	var results []LevelRecord
	for rows.Next() {
		var r LevelRecord
		if err := rows.Scan(&r.LevelID, &r.Attempt, &r.Outcome, &r.Ticks, &r.CoinsLeft); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// CampaignStats retrieves aggregated statistics for a campaign.
func (s *Store) CampaignStats(campaignID string) (*CampaignStats, error) {
	stats := &CampaignStats{CampaignID: campaignID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(completed), 0), COALESCE(MAX(CASE WHEN completed THEN lives_left END), 0)
		 FROM runs WHERE campaign_id = ?`,
		campaignID,
	).Scan(&stats.Runs, &stats.Completed, &stats.BestLivesLeft)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get campaign stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT
			COALESCE(SUM(CASE WHEN l.outcome = 'won' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN l.outcome = 'lost' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN l.outcome = 'timeout' THEN 1 ELSE 0 END), 0)
		 FROM level_results l JOIN runs r ON r.run_id = l.run_id
		 WHERE r.campaign_id = ?`,
		campaignID,
	).Scan(&stats.LevelsWon, &stats.LevelsLost, &stats.Timeouts)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE campaign_id = ? ORDER BY seq DESC LIMIT 1`,
		campaignID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearRuns deletes all runs of the given campaign and their results.
func (s *Store) ClearRuns(campaignID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM level_results WHERE run_id IN (SELECT run_id FROM runs WHERE campaign_id = ?)`,
		campaignID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear level results: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE campaign_id = ?", campaignID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
