package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	YearMonthLayout = "2006-01"
	TimeOfDayLayout = "15:04"
)

// Clock provides "now" for the business timezone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type SystemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return SystemClock{loc: loc}
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c SystemClock) Location() *time.Location {
	return c.loc
}

// FixedClock always returns the same instant. Used by tests and the CLI.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

func (c FixedClock) Location() *time.Location {
	return c.At.Location()
}

// Today returns the current business date (midnight in the clock location).
func Today(c Clock) time.Time {
	return DateOf(c.Now(), c.Location())
}

// DateOf truncates t to the calendar date it falls on in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// YearMonth identifies a calendar month, e.g. 2026-10.
type YearMonth struct {
	Year  int
	Month time.Month
}

func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(YearMonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// FirstDay returns the first day of the month at midnight in loc.
func (ym YearMonth) FirstDay(loc *time.Location) time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, loc)
}

// LastDay returns the last day of the month at midnight in loc.
func (ym YearMonth) LastDay(loc *time.Location) time.Time {
	return ym.FirstDay(loc).AddDate(0, 1, -1)
}

func (ym YearMonth) Contains(date time.Time) bool {
	return date.Year() == ym.Year && date.Month() == ym.Month
}

func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// IsBusinessDay reports whether date is Monday through Friday. No holiday calendar.
func IsBusinessDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// BusinessDays lists the business days of ym from the first day up to and including upTo.
func BusinessDays(ym YearMonth, upTo time.Time) []time.Time {
	loc := upTo.Location()
	last := ym.LastDay(loc)
	if upTo.Before(last) {
		last = DateOf(upTo, loc)
	}

	var days []time.Time
	for d := ym.FirstDay(loc); !d.After(last); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// TimeOfDay is a 24-hour wall clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

var timeOfDayRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayRegex.FindStringSubmatch(s)
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return TimeOfDay{Hour: h, Minute: min}, nil
}

func MustTimeOfDay(s string) TimeOfDay {
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return tod
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// At places the time of day on the calendar date of date, in date's location.
func At(date time.Time, tod TimeOfDay) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, tod.Hour, tod.Minute, 0, 0, date.Location())
}

// MinutesBetween returns whole minutes from a to b, truncated toward zero.
func MinutesBetween(a, b time.Time) int {
	return int(b.Sub(a) / time.Minute)
}

// FormatMinutes renders a minute count as HH:MM.
func FormatMinutes(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// FormatClock renders t as HH:MM, or nil when t is nil.
func FormatClock(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(TimeOfDayLayout)
	return &s
}
