package handlers

import (
	"errors"
	"net/http"

	"presence_backend/db"
	"presence_backend/models"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrCodeSize = 256

type StudentHandler struct {
	dir Directory
	log *zap.Logger
}

func NewStudentHandler(dir Directory, log *zap.Logger) *StudentHandler {
	return &StudentHandler{dir: dir, log: log}
}

func (h *StudentHandler) GetStudents(c *gin.Context) {
	students, err := h.dir.ListStudents(c.Request.Context())
	if err != nil {
		h.log.Error("listing students failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}
	c.JSON(http.StatusOK, students)
}

// SaveStudent registers a student for ID card printing.
func (h *StudentHandler) SaveStudent(c *gin.Context) {
	var req models.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	student := models.Student{
		StudentID:  req.StudentID,
		Name:       req.Name,
		FatherName: req.FatherName,
		Mobile:     req.Mobile,
		ClassName:  req.ClassName,
	}
	if student.ClassName == "" {
		student.ClassName = "N/A"
	}

	err := h.dir.CreateStudent(c.Request.Context(), student)
	if errors.Is(err, db.ErrDuplicate) {
		c.JSON(http.StatusConflict, gin.H{"error": "Student ID already exists"})
		return
	}
	if err != nil {
		h.log.Error("creating student failed", zap.String("student_id", req.StudentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create student"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": student})
}

// StudentQRCode renders the student id as a PNG QR code for the ID card.
func (h *StudentHandler) StudentQRCode(c *gin.Context) {
	student, err := h.dir.StudentByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	if err != nil {
		h.log.Error("student lookup failed", zap.String("student_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student"})
		return
	}

	png, err := qrcode.Encode(student.StudentID, qrcode.Medium, qrCodeSize)
	if err != nil {
		h.log.Error("encoding qr code failed", zap.String("student_id", student.StudentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
