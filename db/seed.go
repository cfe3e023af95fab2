package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"presence_backend/models"
)

// SeedData populates an empty database with a demo school. today is the
// current time in the attendance zone and dates the demo marks and timetable.
// hash turns the shared demo password into the stored password hash.
func SeedData(ctx context.Context, db *sql.DB, today time.Time, hash func(string) (string, error)) error {
	var seeded bool
	if err := db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM teachers)`).Scan(&seeded); err != nil {
		return fmt.Errorf("error checking seed state: %w", err)
	}
	if seeded {
		return nil
	}

	password, err := hash("123")
	if err != nil {
		return fmt.Errorf("error hashing demo password: %w", err)
	}

	// Start a transaction
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	teachers := [][]string{
		{"T001", "Niraj Kumar", "niraj@example.com", "9999999999", "Computer Science"},
		{"T002", "Anita Sharma", "anita@example.com", "9888888888", "Mathematics"},
	}
	for _, t := range teachers {
		if _, err = tx.ExecContext(ctx, `
            INSERT INTO teachers (teacher_id, name, email, phone, department, password_hash)
            VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING
        `, t[0], t[1], t[2], t[3], t[4], password); err != nil {
			return fmt.Errorf("error seeding teachers: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `
        INSERT INTO admins (admin_id, name, organization, password_hash)
        VALUES ('admin', 'Principal User', 'Presence School', $1) ON CONFLICT DO NOTHING
    `, password); err != nil {
		return fmt.Errorf("error seeding admins: %w", err)
	}

	schoolAuth := [][]string{
		{"CENTRAL", "SCH001", "T001"},
		{"ARA", "SCH002", "T002"},
		{"SASARAM", "SCH003", "T003"},
	}
	for _, a := range schoolAuth {
		if _, err = tx.ExecContext(ctx, `
            INSERT INTO school_auth (area, school_id, teacher_id, password_hash)
            VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING
        `, a[0], a[1], a[2], password); err != nil {
			return fmt.Errorf("error seeding school auth: %w", err)
		}
	}

	students := [][]string{{"S001", "Rohan", "1"}, {"S002", "Sita", "1"}, {"S003", "Aman", "2"}}
	for _, s := range students {
		if _, err = tx.ExecContext(ctx, `
            INSERT INTO students (student_id, name, class_name) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING
        `, s[0], s[1], s[2]); err != nil {
			return fmt.Errorf("error seeding students: %w", err)
		}
	}

	date := today.Format("2006-01-02")
	marks := [][]string{{"S001", "Present"}, {"S002", "Absent"}}
	for _, m := range marks {
		if _, err = tx.ExecContext(ctx, `
            INSERT INTO attendance (student_id, class_name, subject, day, status, marked_at)
            VALUES ($1, '1', 'Math', $2, $3, $4)
        `, m[0], date, m[1], today.UTC()); err != nil {
			return fmt.Errorf("error seeding attendance: %w", err)
		}
	}

	schedules := [][]string{
		{"09:00 - 09:45", "1", "Math", "Anita Sharma", "A1"},
		{"10:00 - 10:45", "2", "Science", "Niraj Kumar", "B1"},
	}
	for _, s := range schedules {
		if _, err = tx.ExecContext(ctx, `
            INSERT INTO schedules (time, class_name, subject, teacher, room, date)
            VALUES ($1, $2, $3, $4, $5, $6)
        `, s[0], s[1], s[2], s[3], s[4], date); err != nil {
			return fmt.Errorf("error seeding schedules: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// BootstrapAdmin creates a as the first admin account. It inserts nothing once
// any admin exists and reports whether a row was written.
func BootstrapAdmin(ctx context.Context, db *sql.DB, a models.Admin) (bool, error) {
	result, err := db.ExecContext(ctx, `
        INSERT INTO admins (admin_id, name, organization, password_hash)
        SELECT $1, $2, $3, $4
        WHERE NOT EXISTS (SELECT 1 FROM admins)
        ON CONFLICT (admin_id) DO NOTHING
    `, a.AdminID, a.Name, a.Organization, a.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("error bootstrapping admin: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading bootstrapped admin count: %w", err)
	}
	return n > 0, nil
}
