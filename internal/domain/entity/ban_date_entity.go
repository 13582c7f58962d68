package entity

import "time"

// DateStatus is a member's availability for one calendar day
type DateStatus string

const (
	DateImpossible DateStatus = "IMPOSSIBLE"
	DateUncertain  DateStatus = "UNCERTAIN"
	DatePossible   DateStatus = "POSSIBLE"
)

func (s DateStatus) Valid() bool {
	switch s {
	case DateImpossible, DateUncertain, DatePossible:
		return true
	}
	return false
}

func ParseDateStatus(v string) (DateStatus, error) {
	s := DateStatus(v)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// PersonalBanDate records an availability exception of a member for a date.
type PersonalBanDate struct {
	Base
	MemberID   string
	Date       time.Time
	DateStatus DateStatus
}

// NewPersonalBanDate truncates date to the calendar day and starts as IMPOSSIBLE.
func NewPersonalBanDate(memberID string, date time.Time, now time.Time) *PersonalBanDate {
	return &PersonalBanDate{
		Base:       newBase(StatusActive, now),
		MemberID:   memberID,
		Date:       Day(date),
		DateStatus: DateImpossible,
	}
}

// EditStatus overwrites the status. There is no transition graph; any valid value is accepted.
func (p *PersonalBanDate) EditStatus(status DateStatus, now time.Time) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	p.DateStatus = status
	p.UpdatedAt = now
	return nil
}

// Day strips the clock part of t, keeping its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
