package routes

import (
	"presence_backend/handlers"
	"presence_backend/middleware"
	"presence_backend/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Attendance *handlers.AttendanceHandler
	Dashboard  *handlers.DashboardHandler
	Student    *handlers.StudentHandler
	Teacher    *handlers.TeacherHandler
	User       *handlers.UserHandler
	Health     *handlers.HealthHandler
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, h Handlers, tokens *middleware.TokenService, log *zap.Logger) {
	// Public routes
	r.POST("/login", h.Auth.Login)
	r.POST("/school_login", h.Auth.SchoolLogin)
	r.POST("/register_teacher", h.Auth.RegisterTeacher)
	r.POST("/refresh", h.Auth.RefreshToken)
	if h.Health != nil {
		r.GET("/health", h.Health.HealthCheck)
	}

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens, log), middleware.RequireRole(models.RoleTeacher, models.RoleAdmin))
	{
		// Attendance routes
		protected.POST("/save_attendance", h.Attendance.SaveAttendance)
		protected.GET("/get_attendance", h.Attendance.GetAttendance)
		protected.GET("/attendance/rate", h.Attendance.GetRate)

		// Directory routes
		protected.GET("/teachers", h.Teacher.GetTeachers)
		protected.GET("/students", h.Student.GetStudents)
		protected.POST("/save_student", h.Student.SaveStudent)
		protected.GET("/students/:id/qrcode", h.Student.StudentQRCode)

		protected.GET("/reports", h.Dashboard.Reports)
		protected.GET("/dashboard", middleware.RequireRole(models.RoleTeacher), h.Dashboard.TeacherDashboard)

		protected.GET("/userinfo", h.User.GetUserInfo)

		// Logout route
		protected.POST("/logout", h.Auth.Logout)
	}

	admin := protected.Group("/")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/register_admin", h.Auth.RegisterAdmin)
		admin.POST("/reset_attendance", h.Attendance.ResetAttendance)
		admin.GET("/admin", h.Dashboard.AdminDashboard)
	}
}
