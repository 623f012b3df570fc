// Package store handles SQLite persistence of finished rounds.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/guessr/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for score data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY,
			player TEXT NOT NULL,
			game TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			won INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			max_attempts INTEGER NOT NULL,
			secret TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_ended_at ON scores(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertScore stores a finished round and returns its id.
func (s *Store) InsertScore(ctx context.Context, rec model.ScoreRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (player, game, difficulty, won, attempts, max_attempts, secret, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Player,
		rec.Game,
		rec.Difficulty,
		boolToInt(rec.Won),
		rec.Attempts,
		rec.MaxAttempts,
		rec.Secret,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.EndedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Record implements game.Recorder.
func (s *Store) Record(ctx context.Context, rec model.ScoreRecord) error {
	if _, err := s.InsertScore(ctx, rec); err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}
	return nil
}

func filterClauses(cfg model.StatsConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Player != "" {
		clauses = append(clauses, "player = ?")
		args = append(args, cfg.Player)
	}
	if cfg.Game != "" {
		clauses = append(clauses, "game = ?")
		args = append(args, cfg.Game)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	return strings.Join(clauses, " AND "), args
}

// ListScores returns rounds filtered by stats config, oldest first.
func (s *Store) ListScores(ctx context.Context, cfg model.StatsConfig) ([]model.ScoreRecord, error) {
	where, args := filterClauses(cfg)
	query := fmt.Sprintf(`SELECT id, player, game, difficulty, won, attempts, max_attempts, secret, started_at, ended_at
		FROM scores
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var scores []model.ScoreRecord
	for rows.Next() {
		var rec model.ScoreRecord
		var won int
		var startedAt, endedAt string
		if err := rows.Scan(&rec.ID, &rec.Player, &rec.Game, &rec.Difficulty, &won, &rec.Attempts, &rec.MaxAttempts, &rec.Secret, &startedAt, &endedAt); err != nil {
			return nil, err
		}
		rec.Won = won != 0
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		scores = append(scores, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(scores) > cfg.Last {
		scores = scores[len(scores)-cfg.Last:]
	}
	return scores, nil
}

// ListPlayerAggregates groups the filtered rounds by player.
func (s *Store) ListPlayerAggregates(ctx context.Context, cfg model.StatsConfig) ([]model.PlayerAggregate, error) {
	where, args := filterClauses(cfg)
	query := fmt.Sprintf(`SELECT player, COUNT(*) AS played, SUM(won) AS won, SUM(attempts) AS attempts
		FROM scores
		WHERE %s
		GROUP BY player
		ORDER BY player ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.PlayerAggregate
	for rows.Next() {
		var agg model.PlayerAggregate
		if err := rows.Scan(&agg.Player, &agg.Played, &agg.Won, &agg.AttemptsSum); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
