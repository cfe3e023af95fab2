package attendance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"presence_backend/attendance"
	"presence_backend/attendance/attendancetest"
	"presence_backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, ledger attendance.Ledger, body string) {
	t.Helper()
	rec := attendance.NewRecorder(ledger, fixedClock(now))
	_, err := rec.Record(context.Background(), decodeEntries(t, body))
	require.NoError(t, err)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, attendance.Percentage(0, 0))
	assert.Equal(t, 0, attendance.Percentage(3, 0))
	assert.Equal(t, 50, attendance.Percentage(2, 4))
	assert.Equal(t, 66, attendance.Percentage(2, 3))
	assert.Equal(t, 33, attendance.Percentage(1, 3))
	assert.Equal(t, 100, attendance.Percentage(7, 7))
}

func TestRateEmptyDayIsZero(t *testing.T) {
	calc := attendance.NewCalculator(attendancetest.NewMemoryLedger(), fixedClock(now))

	rate, err := calc.Rate(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, rate)
}

func TestRateMixedStatuses(t *testing.T) {
	ledger := attendancetest.NewMemoryLedger()
	seed(t, ledger, `[
		{"student_id": "S1", "status": "present", "date": "2024-03-15"},
		{"student_id": "S2", "status": "present", "date": "2024-03-15"},
		{"student_id": "S3", "status": "absent", "date": "2024-03-15"},
		{"student_id": "S4", "status": "late", "date": "2024-03-15"}
	]`)
	calc := attendance.NewCalculator(ledger, fixedClock(now))

	day, _ := fixedClock(now).ParseDate("2024-03-15")
	rate, err := calc.Rate(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 50, rate)
}

func TestRateStatusIsCaseInsensitive(t *testing.T) {
	ledger := attendancetest.NewMemoryLedger()
	seed(t, ledger, `[
		{"student_id": "S1", "status": "PRESENT"},
		{"student_id": "S2", "status": "Present"},
		{"student_id": "S3", "status": "present"},
		{"student_id": "S4", "status": "presents"}
	]`)
	calc := attendance.NewCalculator(ledger, fixedClock(now))

	rate, err := calc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 75, rate)
}

func TestRateUsesCivilDayBoundaries(t *testing.T) {
	ledger := attendancetest.NewMemoryLedger()
	_, err := ledger.Append(context.Background(), []models.AttendanceEntry{
		// 23:59 IST on the 15th.
		{StudentID: "S1", Status: models.StatusPresent, MarkedAt: time.Date(2024, 3, 15, 18, 29, 0, 0, time.UTC)},
		// 00:00 IST on the 16th.
		{StudentID: "S2", Status: models.StatusAbsent, MarkedAt: time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	calc := attendance.NewCalculator(ledger, fixedClock(now))

	fifteenth := time.Date(2024, 3, 15, 12, 0, 0, 0, ist)
	rate, err := calc.Rate(context.Background(), fifteenth)
	require.NoError(t, err)
	assert.Equal(t, 100, rate)

	rate, err = calc.Rate(context.Background(), fifteenth.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, rate)
}

func TestRateAfterResetIsZero(t *testing.T) {
	ledger := attendancetest.NewMemoryLedger()
	cache := attendancetest.NewMemoryCache()
	clock := fixedClock(now)
	seed(t, ledger, `[{"student_id": "S1"}, {"student_id": "S2", "date": "2024-01-02"}]`)

	calc := attendance.NewCalculator(ledger, clock, attendance.WithCache(cache))
	rec := attendance.NewRecorder(ledger, clock, attendance.WithCache(cache))
	ctx := context.Background()

	rate, err := calc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, rate)

	_, err = rec.Reset(ctx)
	require.NoError(t, err)

	for _, day := range []time.Time{now, time.Date(2024, 1, 2, 0, 0, 0, 0, ist)} {
		rate, err := calc.Rate(ctx, day)
		require.NoError(t, err)
		assert.Equal(t, 0, rate)
	}
}

func TestRateServedFromCache(t *testing.T) {
	ledger := attendancetest.NewMemoryLedger()
	cache := attendancetest.NewMemoryCache()
	calc := attendance.NewCalculator(ledger, fixedClock(now), attendance.WithCache(cache))
	ctx := context.Background()

	cache.Prime("2024-03-20", 42)
	rate, err := calc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, rate)
	assert.Equal(t, 1, cache.Hits)
}

// countHook runs once, after CountRange has read the ledger and before the
// calculator stores the result.
type countHook struct {
	attendance.Ledger
	after func()
}

func (l *countHook) CountRange(ctx context.Context, from, to time.Time) (int, int, error) {
	present, total, err := l.Ledger.CountRange(ctx, from, to)
	if l.after != nil {
		after := l.after
		l.after = nil
		after()
	}
	return present, total, err
}

func TestRateCountedAcrossWriteIsNotCached(t *testing.T) {
	ledger := attendancetest.NewMemoryLedger()
	cache := attendancetest.NewMemoryCache()
	clock := fixedClock(now)
	rec := attendance.NewRecorder(ledger, clock, attendance.WithCache(cache))
	ctx := context.Background()

	hooked := &countHook{Ledger: ledger, after: func() {
		_, err := rec.Record(ctx, decodeEntries(t, `[{"student_id": "S1", "status": "Present"}]`))
		require.NoError(t, err)
	}}
	calc := attendance.NewCalculator(hooked, clock, attendance.WithCache(cache))

	first, err := calc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, first)
	assert.False(t, cache.Has("2024-03-20"))

	second, err := calc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, second)
	assert.True(t, cache.Has("2024-03-20"))
}

func TestRateCountedAcrossResetIsNotCached(t *testing.T) {
	ledger := attendancetest.NewMemoryLedger()
	cache := attendancetest.NewMemoryCache()
	clock := fixedClock(now)
	seed(t, ledger, `[{"student_id": "S1"}]`)
	rec := attendance.NewRecorder(ledger, clock, attendance.WithCache(cache))
	ctx := context.Background()

	hooked := &countHook{Ledger: ledger, after: func() {
		_, err := rec.Reset(ctx)
		require.NoError(t, err)
	}}
	calc := attendance.NewCalculator(hooked, clock, attendance.WithCache(cache))

	first, err := calc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, first)

	second, err := calc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second)
}

func TestRateStorageError(t *testing.T) {
	ledger := attendancetest.NewMemoryLedger()
	ledger.Err = errors.New("timeout")
	calc := attendance.NewCalculator(ledger, fixedClock(now))

	_, err := calc.Today(context.Background())
	assert.ErrorIs(t, err, ledger.Err)
}

func TestHistoryFiltersAndOrder(t *testing.T) {
	ledger := attendancetest.NewMemoryLedger()
	seed(t, ledger, `[
		{"student_id": "S1", "class": "1", "subject": "Math", "day": "Mon", "date": "2024-03-15"},
		{"student_id": "S2", "class": "1", "subject": "Math", "day": "Mon", "date": "2024-03-18"},
		{"student_id": "S3", "class": "2", "subject": "Science", "day": "Mon", "date": "2024-03-18"},
		{"student_id": "S4", "class": "1", "subject": "Math", "day": "Tue", "date": "2024-03-18"}
	]`)
	calc := attendance.NewCalculator(ledger, fixedClock(now))
	ctx := context.Background()

	all, err := calc.History(ctx, models.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "S4", all[0].StudentID)
	assert.Equal(t, "S1", all[3].StudentID)

	day := time.Date(2024, 3, 18, 0, 0, 0, 0, ist)
	got, err := calc.History(ctx, models.AttendanceFilter{Date: &day, ClassName: "1", Subject: "Math", Day: "Mon"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "S2", got[0].StudentID)

	none, err := calc.History(ctx, models.AttendanceFilter{ClassName: "9"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDayTotal(t *testing.T) {
	ledger := attendancetest.NewMemoryLedger()
	seed(t, ledger, `[{"student_id": "S1", "status": "Absent"}, {"student_id": "S2"}, {"student_id": "S3", "date": "2024-01-01"}]`)
	calc := attendance.NewCalculator(ledger, fixedClock(now))

	total, err := calc.DayTotal(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}
