package handlers

import (
	"context"
	"errors"
	"net/http"

	"presence_backend/attendance"
	"presence_backend/db"
	"presence_backend/middleware"
	"presence_backend/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dir  Directory
	calc *attendance.Calculator
	log  *zap.Logger
}

func NewDashboardHandler(dir Directory, calc *attendance.Calculator, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dir: dir, calc: calc, log: log}
}

// TeacherDashboard returns the signed-in teacher's profile with today's summary.
func (h *DashboardHandler) TeacherDashboard(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	ctx := c.Request.Context()

	teacher, err := h.dir.TeacherByID(ctx, p.UserID)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		return
	}
	if err != nil {
		h.log.Error("teacher lookup failed", zap.String("teacher_id", p.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	summary, err := h.summary(ctx)
	if err != nil {
		h.log.Error("building summary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, models.TeacherDashboard{Teacher: teacher, Summary: summary})
}

// AdminDashboard returns the school-wide view for today.
func (h *DashboardHandler) AdminDashboard(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	ctx := c.Request.Context()

	admin, err := h.dir.AdminByID(ctx, p.UserID)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}
	if err != nil {
		h.log.Error("admin lookup failed", zap.String("admin_id", p.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	dash, err := h.adminView(ctx)
	if err != nil {
		h.log.Error("building admin dashboard failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	dash.Admin = admin

	c.JSON(http.StatusOK, dash)
}

func (h *DashboardHandler) adminView(ctx context.Context) (models.AdminDashboard, error) {
	var dash models.AdminDashboard
	var err error

	if dash.Summary, err = h.summary(ctx); err != nil {
		return dash, err
	}
	dash.AttendanceRate = dash.Summary.Attendance

	if dash.Teachers, err = h.dir.ListTeachers(ctx); err != nil {
		return dash, err
	}
	if dash.Students, err = h.dir.ListStudents(ctx); err != nil {
		return dash, err
	}

	clock := h.calc.Clock()
	today := clock.Now()
	entries, err := h.calc.History(ctx, models.AttendanceFilter{Date: &today})
	if err != nil {
		return dash, err
	}
	dash.AttendanceToday = make([]models.AttendanceResponse, 0, len(entries))
	for _, e := range entries {
		dash.AttendanceToday = append(dash.AttendanceToday, models.NewAttendanceResponse(e, clock.Location()))
	}

	schedules, err := h.dir.SchedulesOn(ctx, today)
	if err != nil {
		return dash, err
	}
	dash.SchedulesToday = make([]models.ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		dash.SchedulesToday = append(dash.SchedulesToday, models.ScheduleResponse{
			Schedule: s,
			Date:     s.Date.Format(attendance.DateLayout),
		})
	}
	return dash, nil
}

// Reports returns headline counts.
func (h *DashboardHandler) Reports(c *gin.Context) {
	ctx := c.Request.Context()

	counts, err := h.dir.Counts(ctx)
	if err != nil {
		h.log.Error("counting directory failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	today, err := h.calc.DayTotal(ctx, h.calc.Clock().Now())
	if err != nil {
		h.log.Error("counting today's attendance failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, models.Report{
		TotalTeachers:   counts.Teachers,
		TotalStudents:   counts.Students,
		AttendanceToday: today,
	})
}

func (h *DashboardHandler) summary(ctx context.Context) (models.Summary, error) {
	counts, err := h.dir.Counts(ctx)
	if err != nil {
		return models.Summary{}, err
	}
	rate, err := h.calc.Today(ctx)
	if err != nil {
		return models.Summary{}, err
	}
	return models.Summary{
		Classes:    counts.Classes,
		Students:   counts.Students,
		Attendance: rate,
		Subjects:   counts.Subjects,
	}, nil
}
