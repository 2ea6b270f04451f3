package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/domain/attendance"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/employee"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/ledger"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/payroll"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "a81bc81b-dead-4e5d-abff-90865d1e13b1"

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(context.Context, employee.Employee) (employee.Employee, error) {
	panic("not used")
}
func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
func (f *fakeEmployeeRepo) GetByUsername(context.Context, string) (employee.Employee, error) {
	panic("not used")
}
func (f *fakeEmployeeRepo) GetActiveByPIN(context.Context, string) (employee.Employee, error) {
	panic("not used")
}
func (f *fakeEmployeeRepo) List(context.Context, bool) ([]employee.Employee, error) {
	return f.employees, nil
}
func (f *fakeEmployeeRepo) Update(context.Context, employee.Employee) error { panic("not used") }
func (f *fakeEmployeeRepo) PINInUse(context.Context, string, string) (bool, error) {
	panic("not used")
}

type fakeScheduleRepo struct {
	schedules []schedule.WorkSchedule
}

func (f *fakeScheduleRepo) Upsert(context.Context, schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	panic("not used")
}
func (f *fakeScheduleRepo) GetByEmployeeAndDate(context.Context, string, time.Time) (*schedule.WorkSchedule, error) {
	panic("not used")
}
func (f *fakeScheduleRepo) ListRange(context.Context, time.Time, time.Time) ([]schedule.WorkSchedule, error) {
	panic("not used")
}
func (f *fakeScheduleRepo) ListByEmployeeRange(_ context.Context, employeeID string, start, end time.Time) ([]schedule.WorkSchedule, error) {
	var out []schedule.WorkSchedule
	for _, s := range f.schedules {
		if s.EmployeeID == employeeID && !s.WorkDate.Before(start) && !s.WorkDate.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeScheduleRepo) Delete(context.Context, string) error { panic("not used") }

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance // key employeeID|date
}

func recKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(context.Context, attendance.Attendance) (attendance.Attendance, error) {
	panic("not used")
}
func (f *fakeAttendanceRepo) Update(context.Context, attendance.Attendance) error {
	panic("not used")
}
func (f *fakeAttendanceRepo) Delete(context.Context, string) error { panic("not used") }
func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	rec, ok := f.records[recKey(employeeID, date)]
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
func (f *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(start) && !rec.Date.After(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeEntryRepo struct {
	sums map[ledger.Kind]decimal.Decimal
}

func (f *fakeEntryRepo) Create(context.Context, ledger.Entry) (ledger.Entry, error) {
	panic("not used")
}
func (f *fakeEntryRepo) CreateAutoIfAbsent(context.Context, ledger.Entry) (bool, error) {
	panic("not used")
}
func (f *fakeEntryRepo) GetByID(context.Context, string) (ledger.Entry, error) { panic("not used") }
func (f *fakeEntryRepo) List(context.Context, ledger.EntryFilter) ([]ledger.Entry, error) {
	panic("not used")
}
func (f *fakeEntryRepo) Update(context.Context, ledger.Entry) error { panic("not used") }
func (f *fakeEntryRepo) Delete(context.Context, string) error       { panic("not used") }
func (f *fakeEntryRepo) SumByKind(_ context.Context, _ string, kind ledger.Kind, _, _ time.Time) (decimal.Decimal, error) {
	return f.sums[kind], nil
}

type fakeDebtRepo struct {
	unpaid decimal.Decimal
}

func (f *fakeDebtRepo) Create(context.Context, ledger.Debt) (ledger.Debt, error) {
	panic("not used")
}
func (f *fakeDebtRepo) GetByID(context.Context, string) (ledger.Debt, error) { panic("not used") }
func (f *fakeDebtRepo) List(context.Context, *string, bool) ([]ledger.Debt, error) {
	panic("not used")
}
func (f *fakeDebtRepo) Update(context.Context, ledger.Debt) error { panic("not used") }
func (f *fakeDebtRepo) Delete(context.Context, string) error      { panic("not used") }
func (f *fakeDebtRepo) SumUnpaid(context.Context, string) (decimal.Decimal, error) {
	return f.unpaid, nil
}

type fixture struct {
	svc       *PayrollServiceImpl
	schedRepo *fakeScheduleRepo
	attRepo   *fakeAttendanceRepo
	entries   *fakeEntryRepo
	debts     *fakeDebtRepo
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ts(y int, m time.Month, d, hh, mm int) *time.Time {
	t := time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
	return &t
}

func newFixture(t *testing.T, emp employee.Employee) *fixture {
	t.Helper()

	fx := &fixture{
		schedRepo: &fakeScheduleRepo{},
		attRepo:   &fakeAttendanceRepo{records: map[string]attendance.Attendance{}},
		entries:   &fakeEntryRepo{sums: map[ledger.Kind]decimal.Decimal{}},
		debts:     &fakeDebtRepo{unpaid: decimal.Zero},
	}
	fx.svc = &PayrollServiceImpl{
		employeeRepo:   &fakeEmployeeRepo{employees: []employee.Employee{emp}},
		scheduleRepo:   fx.schedRepo,
		attendanceRepo: fx.attRepo,
		entryRepo:      fx.entries,
		debtRepo:       fx.debts,
	}
	return fx
}

// addDay schedules an 8-hour shift and, when checkIn is set, records the
// matching attendance.
func (fx *fixture) addDay(day time.Time, checkIn *time.Time, lateMinutes int) {
	fx.schedRepo.schedules = append(fx.schedRepo.schedules, schedule.WorkSchedule{
		EmployeeID: testEmployeeID, WorkDate: day,
		StartTime: "09:00", EndTime: "17:00", IsActive: true,
	})
	if checkIn == nil {
		return
	}
	fx.attRepo.records[recKey(testEmployeeID, day)] = attendance.Attendance{
		EmployeeID: testEmployeeID, Date: day,
		CheckInTime: checkIn,
		IsLate:      lateMinutes > 15,
		LateMinutes: lateMinutes,
		Status:      attendance.DisplayStatus(lateMinutes > 15, false),
	}
}

func hourlyEmployee(rate int64) employee.Employee {
	return employee.Employee{
		ID: testEmployeeID, FullName: "Tran Van A",
		SalaryType: employee.SalaryTypeHourly,
		HourlyRate: decimal.NewFromInt(rate),
		IsActive:   true,
	}
}

func fixedEmployee(salary int64) employee.Employee {
	return employee.Employee{
		ID: testEmployeeID, FullName: "Tran Van A",
		SalaryType:  employee.SalaryTypeFixed,
		FixedSalary: decimal.NewFromInt(salary),
		IsActive:    true,
	}
}

func TestEmployeeSummaryHourly(t *testing.T) {
	fx := newFixture(t, hourlyEmployee(50000))

	fx.addDay(date(2025, 3, 10), ts(2025, 3, 10, 9, 0), 0)   // full 8h
	fx.addDay(date(2025, 3, 11), ts(2025, 3, 11, 9, 25), 25) // -1h
	fx.addDay(date(2025, 3, 12), nil, 0)                     // absent, earns nothing

	summary, err := fx.svc.EmployeeSummary(context.Background(), testEmployeeID, "2025-03")
	require.NoError(t, err)

	assert.Equal(t, 24.0, summary.TotalScheduledHours)
	assert.Equal(t, 15.0, summary.TotalPayableHours)
	assert.True(t, summary.GrossSalary.Equal(decimal.NewFromInt(750000)),
		"gross = 15h x 50000, got %s", summary.GrossSalary)

	require.Len(t, summary.Days, 3)
	assert.Equal(t, attendance.StatusAbsent, summary.Days[2].Status)
	assert.Equal(t, 0.0, summary.Days[2].PayableHours)
}

func TestEmployeeSummaryHourlyDeductionSteps(t *testing.T) {
	tests := []struct {
		name        string
		lateMinutes int
		wantPayable float64
	}{
		{"under ten minutes is free", 9, 8},
		{"ten minutes costs half an hour", 10, 7.5},
		{"thirty-nine minutes costs an hour", 39, 7},
		{"forty minutes forfeits half the shift", 40, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, hourlyEmployee(50000))
			day := date(2025, 3, 10)
			in := day.Add(9*time.Hour + time.Duration(tt.lateMinutes)*time.Minute)
			fx.addDay(day, &in, tt.lateMinutes)

			summary, err := fx.svc.EmployeeSummary(context.Background(), testEmployeeID, "2025-03")
			require.NoError(t, err)

			assert.Equal(t, tt.wantPayable, summary.TotalPayableHours)
		})
	}
}

func TestEmployeeSummaryFixedSalaryIgnoresHours(t *testing.T) {
	fx := newFixture(t, fixedEmployee(10000000))

	fx.addDay(date(2025, 3, 10), ts(2025, 3, 10, 10, 0), 60)
	fx.addDay(date(2025, 3, 11), nil, 0)

	summary, err := fx.svc.EmployeeSummary(context.Background(), testEmployeeID, "2025-03")
	require.NoError(t, err)

	// Deductions still show in the hours, but gross stays the fixed amount.
	assert.Equal(t, 4.0, summary.TotalPayableHours)
	assert.True(t, summary.GrossSalary.Equal(decimal.NewFromInt(10000000)))
}

func TestEmployeeSummaryNetPayFormula(t *testing.T) {
	fx := newFixture(t, fixedEmployee(5000000))
	fx.entries.sums[ledger.KindBonus] = decimal.NewFromInt(500000)
	fx.entries.sums[ledger.KindAdvance] = decimal.NewFromInt(2000000)
	fx.entries.sums[ledger.KindPenalty] = decimal.NewFromInt(150000)
	fx.debts.unpaid = decimal.NewFromInt(300000)

	summary, err := fx.svc.EmployeeSummary(context.Background(), testEmployeeID, "2025-03")
	require.NoError(t, err)

	// 5000000 + 500000 - 2000000 - 300000 - 150000
	assert.True(t, summary.NetPay.Equal(decimal.NewFromInt(3050000)),
		"got %s", summary.NetPay)
}

func TestEmployeeSummaryNetPayCanGoNegative(t *testing.T) {
	fx := newFixture(t, fixedEmployee(1000000))
	fx.entries.sums[ledger.KindAdvance] = decimal.NewFromInt(1500000)

	summary, err := fx.svc.EmployeeSummary(context.Background(), testEmployeeID, "2025-03")
	require.NoError(t, err)

	assert.True(t, summary.NetPay.Equal(decimal.NewFromInt(-500000)),
		"net pay must not be clamped, got %s", summary.NetPay)
}

func TestEmployeeSummaryInvalidMonth(t *testing.T) {
	fx := newFixture(t, fixedEmployee(1000000))

	_, err := fx.svc.EmployeeSummary(context.Background(), testEmployeeID, "03-2025")
	assert.ErrorIs(t, err, payroll.ErrInvalidMonth)
}

func TestEmployeeSummaryUnknownEmployee(t *testing.T) {
	fx := newFixture(t, fixedEmployee(1000000))

	_, err := fx.svc.EmployeeSummary(context.Background(), "c03de03d-cafe-4a7f-8dff-90865d1e13b3", "2025-03")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestStaffSummaryOmitsDays(t *testing.T) {
	fx := newFixture(t, hourlyEmployee(50000))
	fx.addDay(date(2025, 3, 10), ts(2025, 3, 10, 9, 0), 0)

	summaries, err := fx.svc.StaffSummary(context.Background(), "2025-03")
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	assert.Equal(t, testEmployeeID, summaries[0].EmployeeID)
	assert.Equal(t, 8.0, summaries[0].TotalPayableHours)
	assert.Nil(t, summaries[0].Days)
}
