package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"presence_backend/models"
)

// AttendanceStore is the Postgres attendance ledger.
type AttendanceStore struct {
	db *sql.DB
}

func NewAttendanceStore(db *sql.DB) *AttendanceStore {
	return &AttendanceStore{db: db}
}

const insertAttendance = `
    INSERT INTO attendance (student_id, class_name, subject, day, status, marked_at)
    VALUES ($1, $2, $3, $4, $5, $6)`

// Append inserts entries in a single transaction.
func (s *AttendanceStore) Append(ctx context.Context, entries []models.AttendanceEntry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertAttendance)
	if err != nil {
		return 0, fmt.Errorf("error preparing attendance insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			e.StudentID, e.ClassName, e.Subject, e.Day, string(e.Status), e.MarkedAt.UTC(),
		); err != nil {
			return 0, fmt.Errorf("error inserting attendance for student %s: %w", e.StudentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}
	return len(entries), nil
}

func (s *AttendanceStore) List(ctx context.Context, q models.LedgerQuery) ([]models.AttendanceEntry, error) {
	query := `SELECT id, student_id, class_name, subject, day, status, marked_at FROM attendance`

	var conds []string
	var args []interface{}
	where := func(cond string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if !q.From.IsZero() {
		where("marked_at >= $%d", q.From.UTC())
	}
	if !q.To.IsZero() {
		where("marked_at < $%d", q.To.UTC())
	}
	if q.ClassName != "" {
		where("class_name = $%d", q.ClassName)
	}
	if q.Subject != "" {
		where("subject = $%d", q.Subject)
	}
	if q.Day != "" {
		where("day = $%d", q.Day)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY marked_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying attendance: %w", err)
	}
	defer rows.Close()

	entries := []models.AttendanceEntry{}
	for rows.Next() {
		var e models.AttendanceEntry
		var status string
		if err := rows.Scan(&e.ID, &e.StudentID, &e.ClassName, &e.Subject, &e.Day, &status, &e.MarkedAt); err != nil {
			return nil, fmt.Errorf("error scanning attendance: %w", err)
		}
		e.Status = models.Status(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance: %w", err)
	}
	return entries, nil
}

const countAttendanceRange = `
    SELECT COUNT(*), COUNT(*) FILTER (WHERE LOWER(status) = 'present')
    FROM attendance
    WHERE marked_at >= $1 AND marked_at < $2`

func (s *AttendanceStore) CountRange(ctx context.Context, from, to time.Time) (int, int, error) {
	var present, total int
	err := s.db.QueryRowContext(ctx, countAttendanceRange, from.UTC(), to.UTC()).Scan(&total, &present)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting attendance: %w", err)
	}
	return present, total, nil
}

// DeleteAll removes every ledger row. The transaction is rolled back on failure.
func (s *AttendanceStore) DeleteAll(ctx context.Context) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM attendance`)
	if err != nil {
		return 0, fmt.Errorf("error deleting attendance: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading deleted row count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}
	return n, nil
}
