package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"presence_backend/models"
)

// DirectoryStore holds the school's people and timetable records.
type DirectoryStore struct {
	db *sql.DB
}

func NewDirectoryStore(db *sql.DB) *DirectoryStore {
	return &DirectoryStore{db: db}
}

func (s *DirectoryStore) TeacherByID(ctx context.Context, teacherID string) (models.Teacher, error) {
	var t models.Teacher
	err := s.db.QueryRowContext(ctx, `
        SELECT id, teacher_id, name, email, phone, department, password_hash
        FROM teachers WHERE teacher_id = $1
    `, teacherID).Scan(&t.ID, &t.TeacherID, &t.Name, &t.Email, &t.Phone, &t.Department, &t.PasswordHash)
	if err != nil {
		return models.Teacher{}, translate(err)
	}
	return t, nil
}

func (s *DirectoryStore) AdminByID(ctx context.Context, adminID string) (models.Admin, error) {
	var a models.Admin
	err := s.db.QueryRowContext(ctx, `
        SELECT id, admin_id, name, organization, password_hash
        FROM admins WHERE admin_id = $1
    `, adminID).Scan(&a.ID, &a.AdminID, &a.Name, &a.Organization, &a.PasswordHash)
	if err != nil {
		return models.Admin{}, translate(err)
	}
	return a, nil
}

// CreateTeacher returns ErrDuplicate when the teacher id is taken.
func (s *DirectoryStore) CreateTeacher(ctx context.Context, t models.Teacher) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO teachers (teacher_id, name, email, phone, department, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, t.TeacherID, t.Name, t.Email, t.Phone, t.Department, t.PasswordHash)
	if err != nil {
		return translate(err)
	}
	return nil
}

// CreateAdmin returns ErrDuplicate when the admin id is taken.
func (s *DirectoryStore) CreateAdmin(ctx context.Context, a models.Admin) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO admins (admin_id, name, organization, password_hash)
        VALUES ($1, $2, $3, $4)
    `, a.AdminID, a.Name, a.Organization, a.PasswordHash)
	if err != nil {
		return translate(err)
	}
	return nil
}

// SchoolAuthFor matches teacher, area and school case-insensitively.
func (s *DirectoryStore) SchoolAuthFor(ctx context.Context, teacherID, area, schoolID string) (models.SchoolAuth, error) {
	var a models.SchoolAuth
	err := s.db.QueryRowContext(ctx, `
        SELECT id, area, school_id, teacher_id, password_hash
        FROM school_auth
        WHERE UPPER(teacher_id) = UPPER($1) AND UPPER(area) = UPPER($2) AND UPPER(school_id) = UPPER($3)
        LIMIT 1
    `, teacherID, area, schoolID).Scan(&a.ID, &a.Area, &a.SchoolID, &a.TeacherID, &a.PasswordHash)
	if err != nil {
		return models.SchoolAuth{}, translate(err)
	}
	return a, nil
}

func (s *DirectoryStore) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, teacher_id, name, email, phone, department
        FROM teachers ORDER BY teacher_id
    `)
	if err != nil {
		return nil, fmt.Errorf("error querying teachers: %w", err)
	}
	defer rows.Close()

	teachers := []models.Teacher{}
	for rows.Next() {
		var t models.Teacher
		if err := rows.Scan(&t.ID, &t.TeacherID, &t.Name, &t.Email, &t.Phone, &t.Department); err != nil {
			return nil, fmt.Errorf("error scanning teacher: %w", err)
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func (s *DirectoryStore) ListStudents(ctx context.Context) ([]models.Student, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, student_id, name, father_name, mobile, photo, class_name
        FROM students ORDER BY student_id
    `)
	if err != nil {
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var st models.Student
		if err := rows.Scan(&st.ID, &st.StudentID, &st.Name, &st.FatherName, &st.Mobile, &st.Photo, &st.ClassName); err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

func (s *DirectoryStore) StudentByID(ctx context.Context, studentID string) (models.Student, error) {
	var st models.Student
	err := s.db.QueryRowContext(ctx, `
        SELECT id, student_id, name, father_name, mobile, photo, class_name
        FROM students WHERE student_id = $1
    `, studentID).Scan(&st.ID, &st.StudentID, &st.Name, &st.FatherName, &st.Mobile, &st.Photo, &st.ClassName)
	if err != nil {
		return models.Student{}, translate(err)
	}
	return st, nil
}

// CreateStudent returns ErrDuplicate when the student id is taken.
func (s *DirectoryStore) CreateStudent(ctx context.Context, st models.Student) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO students (student_id, name, father_name, mobile, photo, class_name)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, st.StudentID, st.Name, st.FatherName, st.Mobile, st.Photo, st.ClassName)
	if err != nil {
		return translate(err)
	}
	return nil
}

// SchedulesOn lists the timetable for one calendar date.
func (s *DirectoryStore) SchedulesOn(ctx context.Context, date time.Time) ([]models.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, time, class_name, subject, teacher, room, date
        FROM schedules WHERE date = $1 ORDER BY time
    `, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("error querying schedules: %w", err)
	}
	defer rows.Close()

	schedules := []models.Schedule{}
	for rows.Next() {
		var sc models.Schedule
		if err := rows.Scan(&sc.ID, &sc.Time, &sc.ClassName, &sc.Subject, &sc.Teacher, &sc.Room, &sc.Date); err != nil {
			return nil, fmt.Errorf("error scanning schedule: %w", err)
		}
		schedules = append(schedules, sc)
	}
	return schedules, rows.Err()
}

// DirectoryCounts feeds the dashboard summaries.
type DirectoryCounts struct {
	Teachers int
	Students int
	Classes  int
	Subjects int
}

func (s *DirectoryStore) Counts(ctx context.Context) (DirectoryCounts, error) {
	var c DirectoryCounts
	err := s.db.QueryRowContext(ctx, `
        SELECT
            (SELECT COUNT(*) FROM teachers),
            (SELECT COUNT(*) FROM students),
            (SELECT COUNT(DISTINCT class_name) FROM students),
            (SELECT COUNT(DISTINCT subject) FROM schedules)
    `).Scan(&c.Teachers, &c.Students, &c.Classes, &c.Subjects)
	if err != nil {
		return DirectoryCounts{}, fmt.Errorf("error counting directory: %w", err)
	}
	return c, nil
}
