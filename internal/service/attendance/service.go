package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/accesstoken"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/attendance"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/employee"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/schedule"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/settings"
)

// checkoutGracePeriod is how long after scheduled shift end a checkout is
// still accepted.
const checkoutGracePeriod = 4 * time.Hour

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	scheduleRepo   schedule.WorkScheduleRepository
	settingsSvc    settings.SettingsService
	tokenSvc       accesstoken.TokenService
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.WorkScheduleRepository,
	settingsSvc settings.SettingsService,
	tokenSvc accesstoken.TokenService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		scheduleRepo:   scheduleRepo,
		settingsSvc:    settingsSvc,
		tokenSvc:       tokenSvc,
		now:            time.Now,
	}
}

// Submit implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Submit(ctx context.Context, req attendance.SubmitRequest) (attendance.SubmitResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SubmitResponse{}, err
	}

	emp, err := s.employeeRepo.GetActiveByPIN(ctx, req.PIN)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.SubmitResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.SubmitResponse{}, fmt.Errorf("failed to resolve pin: %w", err)
	}

	now := s.now()
	today := dateOf(now)

	// The record state decides the action, not the token purpose.
	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.SubmitResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	if rec == nil {
		// An open record from yesterday means an overnight shift is still
		// running; this submission closes it.
		yesterday := today.AddDate(0, 0, -1)
		yRec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, yesterday)
		if err != nil {
			return attendance.SubmitResponse{}, fmt.Errorf("failed to load attendance: %w", err)
		}
		if yRec != nil && yRec.Open() {
			rec = yRec
		}
	}

	switch {
	case rec == nil || !rec.CheckedIn():
		return s.checkIn(ctx, emp, rec, req, now, today)
	case rec.Open():
		return s.checkOut(ctx, emp, *rec, req, now)
	default:
		return attendance.SubmitResponse{}, attendance.ErrAlreadyCheckedOut
	}
}

func (s *AttendanceServiceImpl) checkIn(
	ctx context.Context,
	emp employee.Employee,
	rec *attendance.Attendance,
	req attendance.SubmitRequest,
	now time.Time,
	today time.Time,
) (attendance.SubmitResponse, error) {
	sched, err := s.scheduleRepo.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.SubmitResponse{}, fmt.Errorf("failed to load schedule: %w", err)
	}
	if sched == nil {
		return attendance.SubmitResponse{}, attendance.ErrNoScheduledShift
	}

	shiftStart, _, err := sched.ShiftBounds()
	if err != nil {
		return attendance.SubmitResponse{}, fmt.Errorf("invalid shift time: %w", err)
	}

	cfg, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return attendance.SubmitResponse{}, fmt.Errorf("failed to load settings: %w", err)
	}

	lateMinutes := 0
	if now.After(shiftStart) {
		lateMinutes = int(now.Sub(shiftStart).Minutes())
	}
	isLate := lateMinutes > cfg.AllowedLateMinutes

	if err := s.consumeToken(ctx, req.Token, req.PIN, attendance.ActionCheckIn); err != nil {
		return attendance.SubmitResponse{}, err
	}

	status := attendance.DisplayStatus(isLate, false)

	if rec != nil {
		// The auto-absent job got here first; the check-in supersedes it.
		rec.WorkScheduleID = &sched.ID
		rec.CheckInTime = &now
		rec.CheckInToken = &req.Token
		rec.Status = status
		rec.IsLate = isLate
		rec.LateMinutes = lateMinutes
		if err := s.attendanceRepo.Update(ctx, *rec); err != nil {
			return attendance.SubmitResponse{}, fmt.Errorf("failed to update attendance: %w", err)
		}
	} else {
		newRec := attendance.Attendance{
			EmployeeID:     emp.ID,
			WorkScheduleID: &sched.ID,
			Date:           today,
			CheckInTime:    &now,
			CheckInToken:   &req.Token,
			WifiSSID:       req.WifiSSID,
			WifiBSSID:      req.WifiBSSID,
			IPAddress:      req.IPAddress,
			Status:         status,
			IsLate:         isLate,
			LateMinutes:    lateMinutes,
		}
		if _, err := s.attendanceRepo.Create(ctx, newRec); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return attendance.SubmitResponse{}, attendance.ErrDuplicateCheckIn
			}
			return attendance.SubmitResponse{}, fmt.Errorf("failed to create attendance: %w", err)
		}
	}

	return attendance.SubmitResponse{
		Action:       attendance.ActionCheckIn,
		EmployeeName: emp.FullName,
		Timestamp:    now,
		Status:       status,
		LateMinutes:  lateMinutes,
	}, nil
}

func (s *AttendanceServiceImpl) checkOut(
	ctx context.Context,
	emp employee.Employee,
	rec attendance.Attendance,
	req attendance.SubmitRequest,
	now time.Time,
) (attendance.SubmitResponse, error) {
	// The shift is anchored on the record's date, so an overnight checkout
	// after midnight still measures against the right shift end.
	sched, err := s.scheduleRepo.GetByEmployeeAndDate(ctx, emp.ID, rec.Date)
	if err != nil {
		return attendance.SubmitResponse{}, fmt.Errorf("failed to load schedule: %w", err)
	}

	earlyMinutes := 0
	isEarly := false

	if sched != nil {
		shiftStart, shiftEnd, err := sched.ShiftBounds()
		if err != nil {
			return attendance.SubmitResponse{}, fmt.Errorf("invalid shift time: %w", err)
		}

		if now.Before(shiftStart) {
			return attendance.SubmitResponse{}, attendance.ErrCheckoutTooEarly
		}
		if now.After(shiftEnd.Add(checkoutGracePeriod)) {
			return attendance.SubmitResponse{}, attendance.ErrCheckoutTooLate
		}

		cfg, err := s.settingsSvc.Get(ctx)
		if err != nil {
			return attendance.SubmitResponse{}, fmt.Errorf("failed to load settings: %w", err)
		}

		if now.Before(shiftEnd) {
			earlyMinutes = int(shiftEnd.Sub(now).Minutes())
		}
		isEarly = earlyMinutes > cfg.EarlyCheckoutGraceMinutes
	}

	if err := s.consumeToken(ctx, req.Token, req.PIN, attendance.ActionCheckOut); err != nil {
		return attendance.SubmitResponse{}, err
	}

	// Leaving early never hides a late arrival.
	status := attendance.DisplayStatus(rec.IsLate, isEarly)

	rec.CheckOutTime = &now
	rec.CheckOutToken = &req.Token
	rec.Status = status
	rec.IsEarlyCheckout = isEarly
	rec.EarlyMinutes = earlyMinutes

	if err := s.attendanceRepo.Update(ctx, rec); err != nil {
		return attendance.SubmitResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return attendance.SubmitResponse{
		Action:       attendance.ActionCheckOut,
		EmployeeName: emp.FullName,
		Timestamp:    now,
		Status:       status,
		LateMinutes:  rec.LateMinutes,
		EarlyMinutes: earlyMinutes,
	}, nil
}

// consumeToken checks the token purpose against the action, then burns it.
func (s *AttendanceServiceImpl) consumeToken(ctx context.Context, token, pin string, action attendance.Action) error {
	resp, err := s.tokenSvc.Validate(ctx, token)
	if err != nil {
		return err
	}

	if resp.Purpose != accesstoken.PurposeAttendance {
		wanted := accesstoken.PurposeCheckIn
		if action == attendance.ActionCheckOut {
			wanted = accesstoken.PurposeCheckOut
		}
		if resp.Purpose != wanted {
			return accesstoken.ErrInvalidPurpose
		}
	}

	return s.tokenSvc.Consume(ctx, token, pin)
}

// Upsert implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Upsert(ctx context.Context, req attendance.ManualUpsertRequest) (*attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}

	// Clearing both timestamps removes the record.
	if req.CheckInTime == nil && req.CheckOutTime == nil {
		if rec == nil {
			return nil, attendance.ErrAttendanceNotFound
		}
		if err := s.attendanceRepo.Delete(ctx, rec.ID); err != nil {
			return nil, fmt.Errorf("failed to delete attendance: %w", err)
		}
		return nil, nil
	}

	var checkIn *time.Time
	if req.CheckInTime != nil {
		ci, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err != nil {
			return nil, fmt.Errorf("invalid check_in_time: %w", err)
		}
		checkIn = &ci
	}
	var checkOut *time.Time
	if req.CheckOutTime != nil {
		co, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err != nil {
			return nil, fmt.Errorf("invalid check_out_time: %w", err)
		}
		// Overnight correction: a checkout clock-time before the check-in
		// belongs to the next day.
		if checkIn != nil && co.Before(*checkIn) {
			co = co.Add(24 * time.Hour)
		}
		checkOut = &co
	}

	isLate, lateMinutes, isEarly, earlyMinutes, err := s.classify(ctx, req.EmployeeID, date, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	// A record without a check-in reads as an absence, whatever else is set.
	status := attendance.DisplayStatus(isLate, isEarly)
	if checkIn == nil {
		status = attendance.StatusAbsent
	}

	if rec == nil {
		rec = &attendance.Attendance{
			EmployeeID: req.EmployeeID,
			Date:       date,
		}
	}
	rec.CheckInTime = checkIn
	rec.CheckOutTime = checkOut
	rec.Status = status
	rec.IsLate = isLate
	rec.IsEarlyCheckout = isEarly
	rec.LateMinutes = lateMinutes
	rec.EarlyMinutes = earlyMinutes
	rec.Notes = req.Notes

	if rec.ID == "" {
		created, err := s.attendanceRepo.Create(ctx, *rec)
		if err != nil {
			return nil, fmt.Errorf("failed to create attendance: %w", err)
		}
		rec = &created
	} else {
		if err := s.attendanceRepo.Update(ctx, *rec); err != nil {
			return nil, fmt.Errorf("failed to update attendance: %w", err)
		}
	}

	resp := attendance.ToResponse(*rec)
	return &resp, nil
}

// classify recomputes the late/early flags against the schedule, if one
// exists; manual records without a schedule stay unflagged.
func (s *AttendanceServiceImpl) classify(
	ctx context.Context,
	employeeID string,
	date time.Time,
	checkIn *time.Time,
	checkOut *time.Time,
) (isLate bool, lateMinutes int, isEarly bool, earlyMinutes int, err error) {
	sched, err := s.scheduleRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return false, 0, false, 0, fmt.Errorf("failed to load schedule: %w", err)
	}
	if sched == nil {
		return false, 0, false, 0, nil
	}

	shiftStart, shiftEnd, err := sched.ShiftBounds()
	if err != nil {
		return false, 0, false, 0, fmt.Errorf("invalid shift time: %w", err)
	}

	cfg, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return false, 0, false, 0, fmt.Errorf("failed to load settings: %w", err)
	}

	if checkIn != nil && checkIn.After(shiftStart) {
		lateMinutes = int(checkIn.Sub(shiftStart).Minutes())
	}
	isLate = lateMinutes > cfg.AllowedLateMinutes

	if checkOut != nil && checkOut.Before(shiftEnd) {
		earlyMinutes = int(shiftEnd.Sub(*checkOut).Minutes())
		isEarly = earlyMinutes > cfg.EarlyCheckoutGraceMinutes
	}

	return isLate, lateMinutes, isEarly, earlyMinutes, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, int64, error) {
	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToResponse(rec))
	}

	return responses, total, nil
}

// MarkAbsent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAbsent(ctx context.Context, employeeID string, date time.Time, scheduleID string) error {
	rec := attendance.Attendance{
		EmployeeID:     employeeID,
		WorkScheduleID: &scheduleID,
		Date:           dateOf(date),
		Status:         attendance.StatusAbsent,
	}

	if _, err := s.attendanceRepo.Create(ctx, rec); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Someone checked in between the lookup and the insert.
			return nil
		}
		return fmt.Errorf("failed to mark absent: %w", err)
	}

	return nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
