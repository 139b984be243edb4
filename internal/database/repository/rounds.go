package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/blackjack/internal/database"
)

// RoundRepo archives finished rounds.
type RoundRepo struct {
	db *sql.DB
}

func NewRoundRepo(db *sql.DB) *RoundRepo {
	return &RoundRepo{db: db}
}

// Insert stores a finished round. The ID is assigned here.
func (r *RoundRepo) Insert(ctx context.Context, rec RoundRecord) (string, error) {
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	finished := rec.FinishedAt
	if finished.IsZero() {
		finished = database.Now()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO rounds(id, mode, player1_result, player2_result, player1_score, player2_score, dealer_score, duration_seconds, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, id, rec.Mode, rec.Player1Result, rec.Player2Result, rec.Player1Score, rec.Player2Score, rec.DealerScore, rec.DurationSeconds, finished)
	if err != nil {
		return "", err
	}
	return id, nil
}

// List returns the most recent rounds, newest first.
func (r *RoundRepo) List(ctx context.Context, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, mode, player1_result, player2_result, player1_score, player2_score, dealer_score, duration_seconds, finished_at
	FROM rounds ORDER BY finished_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RoundRecord
	for rows.Next() {
		var rec RoundRecord
		if err := rows.Scan(&rec.ID, &rec.Mode, &rec.Player1Result, &rec.Player2Result,
			&rec.Player1Score, &rec.Player2Score, &rec.DealerScore,
			&rec.DurationSeconds, &rec.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Summarize aggregates player 1's record across all archived rounds.
func (r *RoundRepo) Summarize(ctx context.Context) (Summary, error) {
	var s Summary
	err := r.db.QueryRowContext(ctx, `
	SELECT
	 COUNT(*),
	 COALESCE(SUM(CASE WHEN player1_result = 'WIN' THEN 1 ELSE 0 END), 0),
	 COALESCE(SUM(CASE WHEN player1_result = 'LOSS' THEN 1 ELSE 0 END), 0),
	 COALESCE(SUM(CASE WHEN player1_result = 'BUST' THEN 1 ELSE 0 END), 0),
	 COALESCE(SUM(CASE WHEN player1_result = 'PUSH' THEN 1 ELSE 0 END), 0),
	 COALESCE(SUM(CASE WHEN dealer_score > 21 THEN 1 ELSE 0 END), 0)
	FROM rounds`).Scan(&s.TotalRounds, &s.Wins, &s.Losses, &s.Busts, &s.Pushes, &s.DealerBusts)
	return s, err
}
