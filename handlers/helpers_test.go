package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"presence_backend/attendance"
	"presence_backend/db"
	"presence_backend/middleware"
	"presence_backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	ist = time.FixedZone("IST", 5*60*60+30*60)
	now = time.Date(2024, 3, 20, 10, 15, 0, 0, ist)
)

func testClock() *attendance.Clock {
	return attendance.NewClock(ist).WithNow(func() time.Time { return now })
}

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func as(p models.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetPrincipal(c, p)
		c.Next()
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := middleware.HashPassword(password)
	require.NoError(t, err)
	return h
}

type fakeDirectory struct {
	mu        sync.Mutex
	teachers  map[string]models.Teacher
	admins    map[string]models.Admin
	students  map[string]models.Student
	auths     []models.SchoolAuth
	schedules []models.Schedule
	counts    db.DirectoryCounts
	err       error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		teachers: map[string]models.Teacher{},
		admins:   map[string]models.Admin{},
		students: map[string]models.Student{},
	}
}

func (d *fakeDirectory) TeacherByID(_ context.Context, id string) (models.Teacher, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return models.Teacher{}, d.err
	}
	t, ok := d.teachers[id]
	if !ok {
		return models.Teacher{}, db.ErrNotFound
	}
	return t, nil
}

func (d *fakeDirectory) AdminByID(_ context.Context, id string) (models.Admin, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return models.Admin{}, d.err
	}
	a, ok := d.admins[id]
	if !ok {
		return models.Admin{}, db.ErrNotFound
	}
	return a, nil
}

func (d *fakeDirectory) CreateTeacher(_ context.Context, t models.Teacher) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.teachers[t.TeacherID]; ok {
		return fmt.Errorf("error creating teacher: %w", db.ErrDuplicate)
	}
	d.teachers[t.TeacherID] = t
	return nil
}

func (d *fakeDirectory) CreateAdmin(_ context.Context, a models.Admin) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.admins[a.AdminID]; ok {
		return fmt.Errorf("error creating admin: %w", db.ErrDuplicate)
	}
	d.admins[a.AdminID] = a
	return nil
}

func (d *fakeDirectory) SchoolAuthFor(_ context.Context, teacherID, area, schoolID string) (models.SchoolAuth, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.auths {
		if strings.EqualFold(a.TeacherID, teacherID) &&
			strings.EqualFold(a.Area, area) &&
			strings.EqualFold(a.SchoolID, schoolID) {
			return a, nil
		}
	}
	return models.SchoolAuth{}, db.ErrNotFound
}

func (d *fakeDirectory) ListTeachers(context.Context) ([]models.Teacher, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	out := []models.Teacher{}
	for _, t := range d.teachers {
		out = append(out, t)
	}
	return out, nil
}

func (d *fakeDirectory) ListStudents(context.Context) ([]models.Student, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	out := []models.Student{}
	for _, s := range d.students {
		out = append(out, s)
	}
	return out, nil
}

func (d *fakeDirectory) StudentByID(_ context.Context, id string) (models.Student, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.students[id]
	if !ok {
		return models.Student{}, db.ErrNotFound
	}
	return s, nil
}

func (d *fakeDirectory) CreateStudent(_ context.Context, s models.Student) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.students[s.StudentID]; ok {
		return fmt.Errorf("error creating student: %w", db.ErrDuplicate)
	}
	d.students[s.StudentID] = s
	return nil
}

func (d *fakeDirectory) SchedulesOn(_ context.Context, date time.Time) ([]models.Schedule, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := []models.Schedule{}
	for _, s := range d.schedules {
		if s.Date.Format(attendance.DateLayout) == date.Format(attendance.DateLayout) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (d *fakeDirectory) Counts(context.Context) (db.DirectoryCounts, error) {
	if d.err != nil {
		return db.DirectoryCounts{}, d.err
	}
	return d.counts, nil
}

type fakeTokens struct {
	mu          sync.Mutex
	issued      []models.Principal
	refresh     map[string]models.Principal
	invalidated []string
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{refresh: map[string]models.Principal{}}
}

func (f *fakeTokens) GenerateTokens(_ context.Context, p models.Principal) (models.TokenPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issued = append(f.issued, p)
	refresh := fmt.Sprintf("refresh-%d", len(f.issued))
	f.refresh[refresh] = p
	return models.TokenPair{AccessToken: "access-" + p.UserID, RefreshToken: refresh}, nil
}

func (f *fakeTokens) ValidateRefreshToken(_ context.Context, token string) (models.Role, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.refresh[token]
	if !ok {
		return "", "", middleware.ErrInvalidRefreshToken
	}
	return p.Role, p.UserID, nil
}

func (f *fakeTokens) InvalidateRefreshToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.refresh, token)
	f.invalidated = append(f.invalidated, token)
	return nil
}

func (f *fakeTokens) lastIssued() models.Principal {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.issued) == 0 {
		return models.Principal{}
	}
	return f.issued[len(f.issued)-1]
}
