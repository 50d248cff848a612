package main

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// TopScoreSink is the write-only persistence collaborator the game worker
// calls at the end of every round. It is best-effort: a failure is logged
// by the caller and never propagated into the game worker, per the
// collaborator-failure rule.
type TopScoreSink interface {
	Record(style, language, difficulty string, roundScores []*Score, effectiveWordsCount int) error
	Close() error
}

// sqliteTopScoreSink persists round scores to a local sqlite file using the
// pure-Go driver, grounded on the Store.Open/migrate/Save pattern used
// elsewhere in the retrieved pack for a local high-score table.
type sqliteTopScoreSink struct {
	db *sql.DB
}

func newSQLiteTopScoreSink(path string) (TopScoreSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := migrateTopScores(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteTopScoreSink{db: db}, nil
}

func migrateTopScores(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS round_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_name TEXT NOT NULL,
			points INTEGER NOT NULL,
			speed REAL NOT NULL,
			style TEXT NOT NULL,
			language TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			words_count INTEGER NOT NULL,
			recorded_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
		)
	`)
	return err
}

func (s *sqliteTopScoreSink) Record(style, language, difficulty string, roundScores []*Score, effectiveWordsCount int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO round_scores (user_name, points, speed, style, language, difficulty, words_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, score := range roundScores {
		if _, err := stmt.Exec(score.UserName, score.Points, score.Speed, style, language, difficulty, effectiveWordsCount); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (s *sqliteTopScoreSink) topScores(style string, limit int) ([]Score, error) {
	rows, err := s.db.Query(`
		SELECT user_name, points, speed FROM round_scores
		WHERE style = ?
		ORDER BY points DESC, speed DESC
		LIMIT ?
	`, style, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top scores: %w", err)
	}
	defer rows.Close()

	var out []Score
	for rows.Next() {
		var sc Score
		if err := rows.Scan(&sc.UserName, &sc.Points, &sc.Speed); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}

	return out, rows.Err()
}

func (s *sqliteTopScoreSink) Close() error {
	return s.db.Close()
}
