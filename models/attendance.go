package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Status is the attendance mark of one ledger row.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLate    Status = "Late"
	StatusExcused Status = "Excused"
)

var knownStatuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusExcused}

// ParseStatus matches s against the known statuses ignoring case. Surrounding
// whitespace is significant. Unknown input is returned verbatim with ok=false.
func ParseStatus(s string) (Status, bool) {
	lower := strings.ToLower(s)
	for _, st := range knownStatuses {
		if lower == strings.ToLower(string(st)) {
			return st, true
		}
	}
	return Status(s), false
}

// IsPresent mirrors the LOWER(status) = 'present' check used by the ledger queries.
func (s Status) IsPresent() bool {
	return strings.ToLower(string(s)) == "present"
}

// AttendanceEntry is one row of the attendance ledger.
type AttendanceEntry struct {
	ID        int64
	StudentID string
	ClassName string
	Subject   string
	Day       string
	Status    Status
	MarkedAt  time.Time
}

type AttendanceResponse struct {
	ID        int64  `json:"id"`
	StudentID string `json:"student_id"`
	ClassName string `json:"class_name"`
	Subject   string `json:"subject"`
	Day       string `json:"day"`
	Status    string `json:"status"`
	MarkedAt  string `json:"marked_at"`
}

// MarkedAtLayout is the wire format of marked_at.
const MarkedAtLayout = "2006-01-02 15:04:05"

func NewAttendanceResponse(e AttendanceEntry, loc *time.Location) AttendanceResponse {
	return AttendanceResponse{
		ID:        e.ID,
		StudentID: e.StudentID,
		ClassName: e.ClassName,
		Subject:   e.Subject,
		Day:       e.Day,
		Status:    string(e.Status),
		MarkedAt:  e.MarkedAt.In(loc).Format(MarkedAtLayout),
	}
}

// FlexString accepts a JSON string, number or boolean. null, false, numeric
// zero and composite values decode to "", so a zero id falls through to the
// next accepted field.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*f = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case 't':
		*f = "true"
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if n, err := strconv.ParseFloat(string(data), 64); err == nil && n == 0 {
			*f = ""
			return nil
		}
		*f = FlexString(data)
	default:
		*f = ""
	}
	return nil
}

// SubmitEntry is one attendance mark as posted by the front end. Several field
// names are accepted for the same value.
type SubmitEntry struct {
	StudentID FlexString `json:"student_id"`
	ID        FlexString `json:"id"`
	Student   FlexString `json:"student"`
	ClassName FlexString `json:"class_name"`
	Class     FlexString `json:"class"`
	Subject   FlexString `json:"subject"`
	Day       FlexString `json:"day"`
	Status    FlexString `json:"status"`
	Date      FlexString `json:"date"`
}

func (e SubmitEntry) ResolveStudentID() string {
	return firstNonEmpty(e.StudentID, e.ID, e.Student)
}

func (e SubmitEntry) ResolveClassName() string {
	return firstNonEmpty(e.ClassName, e.Class)
}

func firstNonEmpty(values ...FlexString) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

type SkippedEntry struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type RecordResult struct {
	Saved   int            `json:"saved"`
	Skipped []SkippedEntry `json:"skipped"`
}

// AttendanceFilter narrows a history query. A nil Date means every day.
type AttendanceFilter struct {
	Date      *time.Time
	ClassName string
	Subject   string
	Day       string
}

// LedgerQuery is an AttendanceFilter resolved to an instant range.
// A zero From/To leaves that side unbounded.
type LedgerQuery struct {
	From      time.Time
	To        time.Time
	ClassName string
	Subject   string
	Day       string
}

type RateResponse struct {
	Date string `json:"date"`
	Rate int    `json:"rate"`
}
