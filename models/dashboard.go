package models

type Summary struct {
	Classes    int `json:"classes"`
	Students   int `json:"students"`
	Attendance int `json:"attendance"`
	Subjects   int `json:"subjects"`
}

type TeacherDashboard struct {
	Teacher Teacher `json:"teacher"`
	Summary Summary `json:"summary"`
}

type AdminDashboard struct {
	Admin           Admin                `json:"admin"`
	Summary         Summary              `json:"summary"`
	Teachers        []Teacher            `json:"teachers"`
	Students        []Student            `json:"students"`
	AttendanceToday []AttendanceResponse `json:"attendance_today"`
	SchedulesToday  []ScheduleResponse   `json:"schedules_today"`
	AttendanceRate  int                  `json:"attendance_rate"`
}

type ScheduleResponse struct {
	Schedule
	Date string `json:"date"`
}

type Report struct {
	TotalTeachers   int `json:"total_teachers"`
	TotalStudents   int `json:"total_students"`
	AttendanceToday int `json:"attendance_today"`
}
