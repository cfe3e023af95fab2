package db

import (
	"context"
	"database/sql"
	"fmt"
)

const Schema = `
CREATE TABLE IF NOT EXISTS teachers (
    id SERIAL PRIMARY KEY,
    teacher_id VARCHAR(64) UNIQUE NOT NULL,
    name VARCHAR(128) NOT NULL,
    email VARCHAR(128) NOT NULL DEFAULT '',
    phone VARCHAR(32) NOT NULL DEFAULT '',
    department VARCHAR(128) NOT NULL DEFAULT '',
    password_hash VARCHAR(255) NOT NULL
);

CREATE TABLE IF NOT EXISTS admins (
    id SERIAL PRIMARY KEY,
    admin_id VARCHAR(64) UNIQUE NOT NULL,
    name VARCHAR(128) NOT NULL,
    organization VARCHAR(128) NOT NULL DEFAULT '',
    password_hash VARCHAR(255) NOT NULL
);

CREATE TABLE IF NOT EXISTS school_auth (
    id SERIAL PRIMARY KEY,
    area VARCHAR(64) NOT NULL,
    school_id VARCHAR(64) NOT NULL,
    teacher_id VARCHAR(64) NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    CONSTRAINT unique_area_school UNIQUE (area, school_id)
);

CREATE TABLE IF NOT EXISTS students (
    id SERIAL PRIMARY KEY,
    student_id VARCHAR(64) UNIQUE NOT NULL,
    name VARCHAR(128) NOT NULL DEFAULT '',
    father_name VARCHAR(128) NOT NULL DEFAULT '',
    mobile VARCHAR(32) NOT NULL DEFAULT '',
    photo VARCHAR(256) NOT NULL DEFAULT '',
    class_name VARCHAR(64) NOT NULL DEFAULT ''
);

-- No foreign key to students: marks may reference unknown student ids.
CREATE TABLE IF NOT EXISTS attendance (
    id BIGSERIAL PRIMARY KEY,
    student_id TEXT NOT NULL CHECK (student_id <> ''),
    class_name TEXT NOT NULL DEFAULT '',
    subject TEXT NOT NULL DEFAULT '',
    day TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'Present',
    marked_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Ledger fields are free text; widen columns created with length limits.
ALTER TABLE attendance
    ALTER COLUMN student_id TYPE TEXT,
    ALTER COLUMN class_name TYPE TEXT,
    ALTER COLUMN subject TYPE TEXT,
    ALTER COLUMN day TYPE TEXT,
    ALTER COLUMN status TYPE TEXT;

CREATE INDEX IF NOT EXISTS idx_attendance_marked_at ON attendance (marked_at DESC);

CREATE TABLE IF NOT EXISTS schedules (
    id SERIAL PRIMARY KEY,
    time VARCHAR(32) NOT NULL DEFAULT '',
    class_name VARCHAR(64) NOT NULL DEFAULT '',
    subject VARCHAR(128) NOT NULL DEFAULT '',
    teacher VARCHAR(128) NOT NULL DEFAULT '',
    room VARCHAR(64) NOT NULL DEFAULT '',
    date DATE NOT NULL DEFAULT CURRENT_DATE
);

CREATE TABLE IF NOT EXISTS refresh_tokens (
    id SERIAL PRIMARY KEY,
    role VARCHAR(16) NOT NULL,
    user_id VARCHAR(64) NOT NULL,
    token VARCHAR(255) UNIQUE NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// InitSchema initializes the database schema
func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	if err != nil {
		return fmt.Errorf("error initializing database schema: %w", err)
	}
	return nil
}
