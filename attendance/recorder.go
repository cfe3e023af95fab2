package attendance

import (
	"context"
	"fmt"
	"time"

	"presence_backend/models"

	"go.uber.org/zap"
)

const (
	ReasonMissingStudentID = "missing student id"
	ReasonUnknownStatus    = "unknown status"
)

// Recorder normalizes submitted marks and appends them to the ledger.
type Recorder struct {
	ledger Ledger
	clock  *Clock
	opts   options
}

func NewRecorder(ledger Ledger, clock *Clock, opts ...Option) *Recorder {
	return &Recorder{ledger: ledger, clock: clock, opts: buildOptions(opts)}
}

// Record stores every acceptable entry in one batch. Entries without a student
// id (or with an unknown status in strict mode) are reported in Skipped and do
// not fail the batch. A storage error saves nothing.
func (r *Recorder) Record(ctx context.Context, submitted []models.SubmitEntry) (models.RecordResult, error) {
	result := models.RecordResult{Skipped: []models.SkippedEntry{}}
	entries := make([]models.AttendanceEntry, 0, len(submitted))

	for i, s := range submitted {
		entry, reason := r.normalize(s)
		if reason != "" {
			result.Skipped = append(result.Skipped, models.SkippedEntry{Index: i, Reason: reason})
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return result, nil
	}

	saved, err := r.ledger.Append(ctx, entries)
	if err != nil {
		return models.RecordResult{}, fmt.Errorf("recording attendance: %w", err)
	}
	result.Saved = saved

	r.opts.cache.Invalidate(ctx, r.touchedDays(entries)...)
	return result, nil
}

// Reset empties the ledger and returns the number of deleted rows.
func (r *Recorder) Reset(ctx context.Context) (int64, error) {
	n, err := r.ledger.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("resetting attendance: %w", err)
	}
	r.opts.cache.Invalidate(ctx)
	r.opts.log.Info("attendance ledger reset", zap.Int64("deleted", n))
	return n, nil
}

func (r *Recorder) normalize(s models.SubmitEntry) (models.AttendanceEntry, string) {
	studentID := s.ResolveStudentID()
	if studentID == "" {
		return models.AttendanceEntry{}, ReasonMissingStudentID
	}

	status := models.StatusPresent
	if raw := string(s.Status); raw != "" {
		parsed, ok := models.ParseStatus(raw)
		if !ok && r.opts.strict {
			return models.AttendanceEntry{}, ReasonUnknownStatus
		}
		status = parsed
	}

	return models.AttendanceEntry{
		StudentID: studentID,
		ClassName: s.ResolveClassName(),
		Subject:   string(s.Subject),
		Day:       string(s.Day),
		Status:    status,
		MarkedAt:  r.markedAt(string(s.Date)).UTC(),
	}, ""
}

// markedAt falls back to the current time when date is empty or malformed.
func (r *Recorder) markedAt(date string) time.Time {
	if date != "" {
		t, err := r.clock.ParseDate(date)
		if err == nil {
			return t
		}
		r.opts.log.Debug("unparseable attendance date, using current time", zap.String("date", date))
	}
	return r.clock.Now()
}

func (r *Recorder) touchedDays(entries []models.AttendanceEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	days := make([]string, 0, 1)
	for _, e := range entries {
		key := r.clock.DayKey(e.MarkedAt)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, key)
	}
	return days
}
