package scheduling

import (
	"strings"
	"time"

	"github.com/clinicsched/medical-scheduler/internal/httperr"
)

type DayOfWeek string

const (
	Sunday    DayOfWeek = "SUNDAY"
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
)

func (d DayOfWeek) Valid() bool {
	switch d {
	case Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday:
		return true
	}
	return false
}

func ParseDayOfWeek(s string) (DayOfWeek, error) {
	d := DayOfWeek(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", httperr.ErrValidation("invalid_day_of_week")
	}
	return d, nil
}

func DayOfWeekFromTime(t time.Time) DayOfWeek {
	switch t.Weekday() {
	case time.Sunday:
		return Sunday
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	default:
		return Saturday
	}
}
