package models

import "time"

type Teacher struct {
	ID           int    `json:"-"`
	TeacherID    string `json:"teacher_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Department   string `json:"department"`
	PasswordHash string `json:"-"`
}

type Admin struct {
	ID           int    `json:"-"`
	AdminID      string `json:"admin_id"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
	PasswordHash string `json:"-"`
}

type Student struct {
	ID         int    `json:"-"`
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	FatherName string `json:"father_name"`
	Mobile     string `json:"mobile"`
	Photo      string `json:"photo"`
	ClassName  string `json:"class"`
}

type CreateStudentRequest struct {
	StudentID  string `json:"studentId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	FatherName string `json:"fatherName"`
	Mobile     string `json:"mobile"`
	ClassName  string `json:"class"`
}

// SchoolAuth is a teacher credential scoped to an area and school.
type SchoolAuth struct {
	ID           int
	Area         string
	SchoolID     string
	TeacherID    string
	PasswordHash string
}

type Schedule struct {
	ID        int       `json:"id"`
	Time      string    `json:"time"`
	ClassName string    `json:"class_name"`
	Subject   string    `json:"subject"`
	Teacher   string    `json:"teacher"`
	Room      string    `json:"room"`
	Date      time.Time `json:"-"`
}
