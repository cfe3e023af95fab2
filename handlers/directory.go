package handlers

import (
	"context"
	"time"

	"presence_backend/db"
	"presence_backend/models"
)

// Directory is implemented by db.DirectoryStore.
type Directory interface {
	Accounts
	ListTeachers(ctx context.Context) ([]models.Teacher, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
	StudentByID(ctx context.Context, studentID string) (models.Student, error)
	CreateStudent(ctx context.Context, s models.Student) error
	SchedulesOn(ctx context.Context, date time.Time) ([]models.Schedule, error)
	Counts(ctx context.Context) (db.DirectoryCounts, error)
}
