package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"presence_backend/attendance"
	"presence_backend/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AttendanceHandler struct {
	recorder *attendance.Recorder
	calc     *attendance.Calculator
	log      *zap.Logger
}

func NewAttendanceHandler(recorder *attendance.Recorder, calc *attendance.Calculator, log *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{recorder: recorder, calc: calc, log: log}
}

// SaveAttendance accepts one mark object or an array of them.
func (h *AttendanceHandler) SaveAttendance(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	entries, err := decodeEntries(body)
	if errors.Is(err, errNoData) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no data received"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.recorder.Record(c.Request.Context(), entries)
	if err != nil {
		h.log.Error("saving attendance failed", zap.Int("entries", len(entries)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save attendance"})
		return
	}

	if len(result.Skipped) > 0 {
		h.log.Info("attendance entries skipped",
			zap.Int("saved", result.Saved), zap.Any("skipped", result.Skipped))
	}
	c.JSON(http.StatusCreated, result)
}

var errNoData = errors.New("no data received")

func decodeEntries(body []byte) ([]models.SubmitEntry, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, errNoData
	}

	var entries []models.SubmitEntry
	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &entries); err != nil {
			return nil, fmt.Errorf("invalid attendance payload: %w", err)
		}
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("invalid attendance payload: %w", err)
		}
		if len(raw) == 0 {
			return nil, errNoData
		}
		var entry models.SubmitEntry
		if err := json.Unmarshal(body, &entry); err != nil {
			return nil, fmt.Errorf("invalid attendance payload: %w", err)
		}
		entries = []models.SubmitEntry{entry}
	default:
		return nil, fmt.Errorf("invalid attendance payload: expected an object or an array")
	}

	if len(entries) == 0 {
		return nil, errNoData
	}
	return entries, nil
}

// GetAttendance lists ledger rows, most recent first. A date that does not
// parse matches nothing.
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	filter := models.AttendanceFilter{
		ClassName: c.Query("class"),
		Subject:   c.Query("subject"),
		Day:       c.Query("day"),
	}

	clock := h.calc.Clock()
	if dateStr := c.Query("date"); dateStr != "" {
		day, err := clock.ParseDate(dateStr)
		if err != nil {
			c.JSON(http.StatusOK, []models.AttendanceResponse{})
			return
		}
		filter.Date = &day
	}

	entries, err := h.calc.History(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("fetching attendance failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance records"})
		return
	}

	out := make([]models.AttendanceResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.NewAttendanceResponse(e, clock.Location()))
	}
	c.JSON(http.StatusOK, out)
}

// GetRate reports the attendance rate for ?date=YYYY-MM-DD, defaulting to today.
func (h *AttendanceHandler) GetRate(c *gin.Context) {
	clock := h.calc.Clock()
	day := clock.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := clock.ParseDate(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
			return
		}
		day = parsed
	}

	rate, err := h.calc.Rate(c.Request.Context(), day)
	if err != nil {
		h.log.Error("computing attendance rate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute attendance rate"})
		return
	}

	c.JSON(http.StatusOK, models.RateResponse{Date: clock.DayKey(day), Rate: rate})
}

// ResetAttendance deletes the whole ledger.
func (h *AttendanceHandler) ResetAttendance(c *gin.Context) {
	n, err := h.recorder.Reset(c.Request.Context())
	if err != nil {
		h.log.Error("resetting attendance failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Deleted %d records", n),
		"deleted": n,
	})
}
