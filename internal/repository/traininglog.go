package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/catchsup/catchsup/internal/domain"
)

// GoalStats summarizes the archived history of one goal.
type GoalStats struct {
	GoalID    int64
	Sessions  int
	TotalMin  float64
	LastStart domain.UnixTimestamp
}

// TrainingLogArchive is the append-only SQLite mirror of the training
// log, used for history queries. All writes are best-effort from the
// scheduler's point of view.
type TrainingLogArchive interface {
	Archive(ctx context.Context, log *domain.TrainingLog) error
	ListByGoal(ctx context.Context, goalID int64, limit int) ([]*domain.TrainingLog, error)
	ListRecent(ctx context.Context, since time.Time) ([]*domain.TrainingLog, error)
	StatsByGoal(ctx context.Context) ([]GoalStats, error)
	UpdateNotes(ctx context.Context, id, notes string) error
}

// SQLiteTrainingLogArchive implements TrainingLogArchive on SQLite.
type SQLiteTrainingLogArchive struct {
	db *sql.DB
}

func NewSQLiteTrainingLogArchive(db *sql.DB) *SQLiteTrainingLogArchive {
	return &SQLiteTrainingLogArchive{db: db}
}

func (r *SQLiteTrainingLogArchive) Archive(ctx context.Context, log *domain.TrainingLog) error {
	query := `INSERT INTO training_logs (id, goal_id, started_at, elapsed_min, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.GoalID,
		int64(log.StartTime),
		log.ElapsedMin,
		log.Notes,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("inserting training log: %w", err)
	}
	return nil
}

func (r *SQLiteTrainingLogArchive) ListByGoal(ctx context.Context, goalID int64, limit int) ([]*domain.TrainingLog, error) {
	query := `SELECT id, goal_id, started_at, elapsed_min, notes
		FROM training_logs WHERE goal_id = ? ORDER BY started_at DESC`
	args := []any{goalID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing training logs by goal: %w", err)
	}
	defer rows.Close()
	return scanLogs(rows)
}

func (r *SQLiteTrainingLogArchive) ListRecent(ctx context.Context, since time.Time) ([]*domain.TrainingLog, error) {
	query := `SELECT id, goal_id, started_at, elapsed_min, notes
		FROM training_logs WHERE started_at >= ? ORDER BY started_at DESC`
	rows, err := r.db.QueryContext(ctx, query, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("listing recent training logs: %w", err)
	}
	defer rows.Close()
	return scanLogs(rows)
}

func (r *SQLiteTrainingLogArchive) StatsByGoal(ctx context.Context) ([]GoalStats, error) {
	query := `SELECT goal_id, COUNT(*), SUM(elapsed_min), MAX(started_at)
		FROM training_logs GROUP BY goal_id ORDER BY goal_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("computing goal stats: %w", err)
	}
	defer rows.Close()

	var stats []GoalStats
	for rows.Next() {
		var s GoalStats
		var last int64
		if err := rows.Scan(&s.GoalID, &s.Sessions, &s.TotalMin, &last); err != nil {
			return nil, fmt.Errorf("scanning goal stats: %w", err)
		}
		s.LastStart = domain.UnixTimestamp(last)
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *SQLiteTrainingLogArchive) UpdateNotes(ctx context.Context, id, notes string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE training_logs SET notes = ? WHERE id = ?", notes, id)
	if err != nil {
		return fmt.Errorf("updating training log notes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating training log notes: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("updating training log notes: %s not found", id)
	}
	return nil
}

func scanLogs(rows *sql.Rows) ([]*domain.TrainingLog, error) {
	var logs []*domain.TrainingLog
	for rows.Next() {
		var l domain.TrainingLog
		var started int64
		if err := rows.Scan(&l.ID, &l.GoalID, &started, &l.ElapsedMin, &l.Notes); err != nil {
			return nil, fmt.Errorf("scanning training log: %w", err)
		}
		l.StartTime = domain.UnixTimestamp(started)
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
