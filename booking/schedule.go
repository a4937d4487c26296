package booking

import (
	"fmt"
	"time"
)

const (
	// CustomerNoticeDays is how many calendar days ahead a customer must book
	CustomerNoticeDays = 2
	// SameDayLeadTime is the minimum lead for a same-day admin booking
	SameDayLeadTime = 8 * time.Hour
)

func dateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// EarliestDate is the first calendar day an event may be booked on
func EarliestDate(now time.Time, privileged bool, loc *time.Location) time.Time {
	today := dateOf(now, loc)
	if privileged {
		return today
	}
	return today.AddDate(0, 0, CustomerNoticeDays)
}

// ValidateEventTime applies the advance-notice rules in the business time zone.
// Customers need the event at least two calendar days out. Admins may book from today, but a
// same-day event must start at least eight hours from now.
func ValidateEventTime(eventAt, now time.Time, privileged bool, loc *time.Location) error {
	if eventAt.IsZero() {
		return fmt.Errorf("%w: event date and time are required", ErrInvalidDateTime)
	}
	if err := checkDate(dateOf(eventAt, loc), now, privileged, loc); err != nil {
		return err
	}
	if privileged && dateOf(eventAt, loc).Equal(dateOf(now, loc)) {
		earliest := now.Add(SameDayLeadTime)
		if eventAt.Before(earliest) {
			return fmt.Errorf("%w: same-day events must start at %s or later",
				ErrInvalidDateTime, earliest.In(loc).Format("3:04 PM"))
		}
	}
	return nil
}

func checkDate(date, now time.Time, privileged bool, loc *time.Location) error {
	earliest := EarliestDate(now, privileged, loc)
	if date.Before(earliest) {
		return fmt.Errorf("%w: the earliest available date is %s",
			ErrInvalidDateTime, earliest.Format("January 2, 2006"))
	}
	return nil
}

// PickerState is where the date/time picker stands
type PickerState string

const (
	PickerUnset          PickerState = "unset"
	PickerDateChosen     PickerState = "date_chosen"
	PickerDateTimeChosen PickerState = "date_time_chosen"
	PickerValid          PickerState = "valid"
	PickerInvalid        PickerState = "invalid"
)

// Picker tracks a date then a time of day. Every change re-runs validation against the clock,
// and choosing a new date clears the time.
type Picker struct {
	loc        *time.Location
	privileged bool

	date    time.Time
	clock   time.Duration
	hasDate bool
	hasTime bool

	state  PickerState
	reason string
}

func NewPicker(loc *time.Location, privileged bool) *Picker {
	return &Picker{loc: loc, privileged: privileged, state: PickerUnset}
}

// ChooseDate sets the calendar day. The time of day is cleared.
func (p *Picker) ChooseDate(year int, month time.Month, day int, now time.Time) PickerState {
	p.date = time.Date(year, month, day, 0, 0, 0, 0, p.loc)
	p.hasDate = true
	p.hasTime = false
	p.clock = 0

	p.state, p.reason = PickerDateChosen, ""
	if err := checkDate(p.date, now, p.privileged, p.loc); err != nil {
		p.state, p.reason = PickerInvalid, err.Error()
	}
	return p.state
}

// ChooseTime sets the time of day. Without a date the picker stays unset.
func (p *Picker) ChooseTime(hour, minute int, now time.Time) PickerState {
	if !p.hasDate {
		p.state, p.reason = PickerUnset, "choose a date first"
		return p.state
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		p.state, p.reason = PickerInvalid, fmt.Sprintf("%02d:%02d is not a time of day", hour, minute)
		return p.state
	}
	p.clock = time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute
	p.hasTime = true
	p.state = PickerDateTimeChosen
	return p.Revalidate(now)
}

// Revalidate recomputes Valid or Invalid against now
func (p *Picker) Revalidate(now time.Time) PickerState {
	switch {
	case !p.hasDate:
		p.state, p.reason = PickerUnset, ""
	case !p.hasTime:
		p.ChooseDate(p.date.Year(), p.date.Month(), p.date.Day(), now)
	default:
		p.state, p.reason = PickerValid, ""
		if err := ValidateEventTime(p.eventAt(), now, p.privileged, p.loc); err != nil {
			p.state, p.reason = PickerInvalid, err.Error()
		}
	}
	return p.state
}

func (p *Picker) eventAt() time.Time {
	return time.Date(p.date.Year(), p.date.Month(), p.date.Day(), 0, 0, 0, 0, p.loc).Add(p.clock)
}

func (p *Picker) State() PickerState { return p.state }

// Reason explains an invalid state
func (p *Picker) Reason() string { return p.reason }

// EventAt returns the chosen moment once both parts are set
func (p *Picker) EventAt() (time.Time, bool) {
	if !p.hasDate || !p.hasTime {
		return time.Time{}, false
	}
	return p.eventAt(), true
}
