package payroll

// HourDeduction converts a late arrival into deducted work hours. The
// thresholds are fixed and deliberately independent of the cash penalty
// tiers: under 10 minutes is free, under 20 costs half an hour, under 40
// costs a full hour, anything beyond forfeits half the scheduled shift.
func HourDeduction(lateMinutes int, scheduledHours float64) float64 {
	switch {
	case lateMinutes < 10:
		return 0
	case lateMinutes < 20:
		return 0.5
	case lateMinutes < 40:
		return 1
	default:
		return scheduledHours / 2
	}
}

// PayableHours applies the late deduction to a scheduled shift, never
// going below zero.
func PayableHours(scheduledHours float64, lateMinutes int) float64 {
	payable := scheduledHours - HourDeduction(lateMinutes, scheduledHours)
	if payable < 0 {
		return 0
	}
	return payable
}
