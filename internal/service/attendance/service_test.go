package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/domain/accesstoken"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/attendance"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/employee"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/schedule"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "a81bc81b-dead-4e5d-abff-90865d1e13b1"

type fakeEmployeeRepo struct {
	byPIN map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(context.Context, employee.Employee) (employee.Employee, error) {
	panic("not used")
}
func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.byPIN {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
func (f *fakeEmployeeRepo) GetByUsername(context.Context, string) (employee.Employee, error) {
	panic("not used")
}
func (f *fakeEmployeeRepo) GetActiveByPIN(_ context.Context, pin string) (employee.Employee, error) {
	e, ok := f.byPIN[pin]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}
func (f *fakeEmployeeRepo) List(context.Context, bool) ([]employee.Employee, error) {
	panic("not used")
}
func (f *fakeEmployeeRepo) Update(context.Context, employee.Employee) error { panic("not used") }
func (f *fakeEmployeeRepo) PINInUse(context.Context, string, string) (bool, error) {
	panic("not used")
}

type fakeScheduleRepo struct {
	schedules map[string]schedule.WorkSchedule // key employeeID|date
}

func schedKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeScheduleRepo) Upsert(context.Context, schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	panic("not used")
}
func (f *fakeScheduleRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*schedule.WorkSchedule, error) {
	s, ok := f.schedules[schedKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}
func (f *fakeScheduleRepo) ListRange(context.Context, time.Time, time.Time) ([]schedule.WorkSchedule, error) {
	panic("not used")
}
func (f *fakeScheduleRepo) ListByEmployeeRange(context.Context, string, time.Time, time.Time) ([]schedule.WorkSchedule, error) {
	panic("not used")
}
func (f *fakeScheduleRepo) Delete(context.Context, string) error { panic("not used") }

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance // key employeeID|date
	nextID  int
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	key := schedKey(att.EmployeeID, att.Date)
	if _, exists := f.records[key]; exists {
		return attendance.Attendance{}, attendance.ErrDuplicateCheckIn
	}
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[key] = att
	return att, nil
}
func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	for key, rec := range f.records {
		if rec.ID == att.ID {
			f.records[key] = att
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}
func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	for key, rec := range f.records {
		if rec.ID == id {
			delete(f.records, key)
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}
func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	rec, ok := f.records[schedKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}
func (f *fakeAttendanceRepo) List(context.Context, attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	panic("not used")
}
func (f *fakeAttendanceRepo) ListRange(context.Context, time.Time, time.Time) ([]attendance.Attendance, error) {
	panic("not used")
}
func (f *fakeAttendanceRepo) ListByEmployeeRange(context.Context, string, time.Time, time.Time) ([]attendance.Attendance, error) {
	panic("not used")
}

type fakeSettingsService struct {
	cfg settings.AttendanceSettings
}

func (f *fakeSettingsService) Get(context.Context) (settings.AttendanceSettings, error) {
	return f.cfg, nil
}
func (f *fakeSettingsService) Update(context.Context, settings.UpdateSettingsRequest) (settings.AttendanceSettings, error) {
	panic("not used")
}

type fakeTokenService struct {
	purposes map[string]accesstoken.Purpose
	consumed map[string]string // token -> pin
}

func (f *fakeTokenService) Issue(context.Context, accesstoken.IssueRequest) (accesstoken.IssueResponse, error) {
	panic("not used")
}
func (f *fakeTokenService) Validate(_ context.Context, value string) (accesstoken.ValidateResponse, error) {
	p, ok := f.purposes[value]
	if !ok {
		return accesstoken.ValidateResponse{}, accesstoken.ErrTokenNotFound
	}
	return accesstoken.ValidateResponse{Valid: true, Purpose: p}, nil
}
func (f *fakeTokenService) Consume(_ context.Context, value string, pin string) error {
	if _, ok := f.purposes[value]; !ok {
		return accesstoken.ErrTokenNotFound
	}
	if prev, done := f.consumed[value]; done && prev != pin {
		return accesstoken.ErrTokenAlreadyConsumed
	}
	f.consumed[value] = pin
	return nil
}
func (f *fakeTokenService) CleanupExpired(context.Context) (int64, error) { panic("not used") }

type fixture struct {
	svc      *AttendanceServiceImpl
	attRepo  *fakeAttendanceRepo
	tokens   *fakeTokenService
	now      *time.Time
	employee employee.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	emp := employee.Employee{ID: testEmployeeID, FullName: "Tran Van A", IsActive: true}
	pin := "1234"
	emp.PIN = &pin

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) // a Monday

	attRepo := &fakeAttendanceRepo{records: map[string]attendance.Attendance{}}
	schedRepo := &fakeScheduleRepo{schedules: map[string]schedule.WorkSchedule{}}
	tokens := &fakeTokenService{
		purposes: map[string]accesstoken.Purpose{},
		consumed: map[string]string{},
	}

	fx := &fixture{
		attRepo:  attRepo,
		tokens:   tokens,
		now:      &now,
		employee: emp,
	}
	fx.svc = &AttendanceServiceImpl{
		attendanceRepo: attRepo,
		employeeRepo:   &fakeEmployeeRepo{byPIN: map[string]employee.Employee{pin: emp}},
		scheduleRepo:   schedRepo,
		settingsSvc:    &fakeSettingsService{cfg: settings.DefaultSettings()},
		tokenSvc:       tokens,
		now:            func() time.Time { return *fx.now },
	}

	// Day shift on 2025-03-10 and an overnight shift on 2025-03-11.
	schedRepo.schedules[schedKey(emp.ID, date(2025, 3, 10))] = schedule.WorkSchedule{
		ID: "sched-1", EmployeeID: emp.ID, WorkDate: date(2025, 3, 10),
		StartTime: "09:00", EndTime: "17:00", IsActive: true,
	}
	schedRepo.schedules[schedKey(emp.ID, date(2025, 3, 11))] = schedule.WorkSchedule{
		ID: "sched-2", EmployeeID: emp.ID, WorkDate: date(2025, 3, 11),
		StartTime: "20:00", EndTime: "02:00", IsActive: true,
	}

	return fx
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (fx *fixture) addToken(value string, purpose accesstoken.Purpose) {
	fx.tokens.purposes[value] = purpose
}

func (fx *fixture) submit(t *testing.T, token string) (attendance.SubmitResponse, error) {
	t.Helper()
	fx.addToken(token, accesstoken.PurposeAttendance)
	return fx.svc.Submit(context.Background(), attendance.SubmitRequest{Token: token, PIN: "1234"})
}

func TestSubmitCheckInOnTime(t *testing.T) {
	fx := newFixture(t)
	*fx.now = time.Date(2025, 3, 10, 8, 55, 0, 0, time.UTC)

	resp, err := fx.submit(t, "tok-1")
	require.NoError(t, err)

	assert.Equal(t, attendance.ActionCheckIn, resp.Action)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, 0, resp.LateMinutes)
	assert.Equal(t, "1234", fx.tokens.consumed["tok-1"])
}

func TestSubmitCheckInWithinGraceIsPresent(t *testing.T) {
	fx := newFixture(t)
	// 12 minutes late, inside the default 15-minute allowance.
	*fx.now = time.Date(2025, 3, 10, 9, 12, 0, 0, time.UTC)

	resp, err := fx.submit(t, "tok-1")
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, 12, resp.LateMinutes)
}

func TestSubmitCheckInLate(t *testing.T) {
	fx := newFixture(t)
	*fx.now = time.Date(2025, 3, 10, 9, 40, 0, 0, time.UTC)

	resp, err := fx.submit(t, "tok-1")
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLate, resp.Status)
	assert.Equal(t, 40, resp.LateMinutes)

	rec, _ := fx.attRepo.GetByEmployeeAndDate(context.Background(), testEmployeeID, date(2025, 3, 10))
	require.NotNil(t, rec)
	assert.True(t, rec.IsLate)
}

func TestSubmitCheckInWithoutSchedule(t *testing.T) {
	fx := newFixture(t)
	*fx.now = time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC) // no shift planned

	_, err := fx.submit(t, "tok-1")
	assert.ErrorIs(t, err, attendance.ErrNoScheduledShift)

	// The token must survive a rejected submission.
	_, consumed := fx.tokens.consumed["tok-1"]
	assert.False(t, consumed)
}

func TestSubmitCheckOut(t *testing.T) {
	fx := newFixture(t)
	*fx.now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := fx.submit(t, "tok-in")
	require.NoError(t, err)

	*fx.now = time.Date(2025, 3, 10, 17, 5, 0, 0, time.UTC)
	resp, err := fx.submit(t, "tok-out")
	require.NoError(t, err)

	assert.Equal(t, attendance.ActionCheckOut, resp.Action)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, 0, resp.EarlyMinutes)
}

func TestSubmitEarlyCheckout(t *testing.T) {
	fx := newFixture(t)
	*fx.now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := fx.submit(t, "tok-in")
	require.NoError(t, err)

	// Leaving 45 minutes before shift end, past the 10-minute grace.
	*fx.now = time.Date(2025, 3, 10, 16, 15, 0, 0, time.UTC)
	resp, err := fx.submit(t, "tok-out")
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusEarlyCheckout, resp.Status)
	assert.Equal(t, 45, resp.EarlyMinutes)
}

func TestSubmitLateArrivalKeepsLateStatusOnEarlyCheckout(t *testing.T) {
	fx := newFixture(t)
	*fx.now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	_, err := fx.submit(t, "tok-in")
	require.NoError(t, err)

	*fx.now = time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)
	resp, err := fx.submit(t, "tok-out")
	require.NoError(t, err)

	// Late wins the display status; both flags are kept on the record.
	assert.Equal(t, attendance.StatusLate, resp.Status)

	rec, _ := fx.attRepo.GetByEmployeeAndDate(context.Background(), testEmployeeID, date(2025, 3, 10))
	require.NotNil(t, rec)
	assert.True(t, rec.IsLate)
	assert.True(t, rec.IsEarlyCheckout)
}

func TestSubmitThirdScanRejected(t *testing.T) {
	fx := newFixture(t)
	*fx.now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := fx.submit(t, "tok-in")
	require.NoError(t, err)

	*fx.now = time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	_, err = fx.submit(t, "tok-out")
	require.NoError(t, err)

	*fx.now = time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)
	_, err = fx.submit(t, "tok-again")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestSubmitOvernightCheckout(t *testing.T) {
	fx := newFixture(t)

	// Check in for the overnight shift on the 11th.
	*fx.now = time.Date(2025, 3, 11, 20, 0, 0, 0, time.UTC)
	_, err := fx.submit(t, "tok-in")
	require.NoError(t, err)

	// Check out at 02:00 the next calendar day closes the open record.
	*fx.now = time.Date(2025, 3, 12, 2, 0, 0, 0, time.UTC)
	resp, err := fx.submit(t, "tok-out")
	require.NoError(t, err)

	assert.Equal(t, attendance.ActionCheckOut, resp.Action)
	assert.Equal(t, attendance.StatusPresent, resp.Status)

	rec, _ := fx.attRepo.GetByEmployeeAndDate(context.Background(), testEmployeeID, date(2025, 3, 11))
	require.NotNil(t, rec)
	assert.NotNil(t, rec.CheckOutTime)
}

func TestSubmitCheckoutBeforeShiftStart(t *testing.T) {
	fx := newFixture(t)
	*fx.now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := fx.submit(t, "tok-in")
	require.NoError(t, err)

	// Force an open record with a schedule whose start is in the future by
	// rewinding the clock below shift start.
	*fx.now = time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	_, err = fx.submit(t, "tok-out")
	assert.ErrorIs(t, err, attendance.ErrCheckoutTooEarly)
}

func TestSubmitCheckoutPastWindow(t *testing.T) {
	fx := newFixture(t)
	*fx.now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := fx.submit(t, "tok-in")
	require.NoError(t, err)

	// More than 4 hours after the 17:00 shift end.
	*fx.now = time.Date(2025, 3, 10, 21, 30, 0, 0, time.UTC)
	_, err = fx.submit(t, "tok-out")
	assert.ErrorIs(t, err, attendance.ErrCheckoutTooLate)
}

func TestSubmitUnknownPIN(t *testing.T) {
	fx := newFixture(t)
	fx.addToken("tok-1", accesstoken.PurposeAttendance)

	_, err := fx.svc.Submit(context.Background(), attendance.SubmitRequest{Token: "tok-1", PIN: "9999"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSubmitPurposeMismatch(t *testing.T) {
	fx := newFixture(t)
	*fx.now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	// A checkout-only token cannot be used to check in.
	fx.addToken("tok-co", accesstoken.PurposeCheckOut)
	_, err := fx.svc.Submit(context.Background(), attendance.SubmitRequest{Token: "tok-co", PIN: "1234"})
	assert.ErrorIs(t, err, accesstoken.ErrInvalidPurpose)
}

func TestSubmitCheckInOverridesAbsentRecord(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.svc.MarkAbsent(context.Background(), testEmployeeID, date(2025, 3, 10), "sched-1"))

	*fx.now = time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC)
	resp, err := fx.submit(t, "tok-1")
	require.NoError(t, err)

	assert.Equal(t, attendance.ActionCheckIn, resp.Action)

	rec, _ := fx.attRepo.GetByEmployeeAndDate(context.Background(), testEmployeeID, date(2025, 3, 10))
	require.NotNil(t, rec)
	assert.NotEqual(t, attendance.StatusAbsent, rec.Status)
	assert.NotNil(t, rec.CheckInTime)
}

func TestMarkAbsentTwiceIsQuiet(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.svc.MarkAbsent(ctx, testEmployeeID, date(2025, 3, 10), "sched-1"))

	// The fake surfaces the duplicate as a create failure, which MarkAbsent
	// must swallow only for unique violations, so here it propagates.
	err := fx.svc.MarkAbsent(ctx, testEmployeeID, date(2025, 3, 10), "sched-1")
	assert.Error(t, err)
}

func TestManualUpsertComputesStatus(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	in := "2025-03-10T09:45:00Z"
	out := "2025-03-10T17:00:00Z"
	resp, err := fx.svc.Upsert(ctx, attendance.ManualUpsertRequest{
		EmployeeID:   testEmployeeID,
		Date:         "2025-03-10",
		CheckInTime:  &in,
		CheckOutTime: &out,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, attendance.StatusLate, resp.Status)
	assert.Equal(t, 45, resp.LateMinutes)
}

func TestManualUpsertCheckOutOnlyIsAbsent(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	// A record holding only a checkout stays, in a partial state.
	out := "2025-03-10T17:00:00Z"
	resp, err := fx.svc.Upsert(ctx, attendance.ManualUpsertRequest{
		EmployeeID:   testEmployeeID,
		Date:         "2025-03-10",
		CheckOutTime: &out,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, attendance.StatusAbsent, resp.Status)
	assert.Nil(t, resp.CheckInTime)
	assert.NotNil(t, resp.CheckOutTime)
	assert.False(t, resp.IsLate)
}

func TestManualUpsertClearingCheckInKeepsCheckout(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	in := "2025-03-10T09:45:00Z"
	out := "2025-03-10T17:00:00Z"
	_, err := fx.svc.Upsert(ctx, attendance.ManualUpsertRequest{
		EmployeeID:   testEmployeeID,
		Date:         "2025-03-10",
		CheckInTime:  &in,
		CheckOutTime: &out,
	})
	require.NoError(t, err)

	// Dropping the check-in alone downgrades the day to absent without
	// losing the checkout timestamp.
	resp, err := fx.svc.Upsert(ctx, attendance.ManualUpsertRequest{
		EmployeeID:   testEmployeeID,
		Date:         "2025-03-10",
		CheckOutTime: &out,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, attendance.StatusAbsent, resp.Status)
	assert.Nil(t, resp.CheckInTime)
	assert.NotNil(t, resp.CheckOutTime)
	assert.Equal(t, 0, resp.LateMinutes)
}

func TestManualUpsertClearingDeletesRecord(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	in := "2025-03-10T09:00:00Z"
	_, err := fx.svc.Upsert(ctx, attendance.ManualUpsertRequest{
		EmployeeID:  testEmployeeID,
		Date:        "2025-03-10",
		CheckInTime: &in,
	})
	require.NoError(t, err)

	resp, err := fx.svc.Upsert(ctx, attendance.ManualUpsertRequest{
		EmployeeID: testEmployeeID,
		Date:       "2025-03-10",
	})
	require.NoError(t, err)
	assert.Nil(t, resp)

	rec, _ := fx.attRepo.GetByEmployeeAndDate(ctx, testEmployeeID, date(2025, 3, 10))
	assert.Nil(t, rec)
}
