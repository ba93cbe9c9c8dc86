package news

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrBadDate = errors.New("bad date")

// DefaultFutureTolerance is how far past "now" a month/day may land before it
// is assumed to belong to the previous year.
const DefaultFutureTolerance = 7 * 24 * time.Hour

var reMonthDay = regexp.MustCompile(`^(\d{1,2})月(\d{1,2})日$`)

// Date is a month/day as printed on the listing page together with the year
// it was resolved to.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate reads a "<M>月<D>日" label. The listing carries no year, so the
// year of now is assumed unless that puts the date more than futureTolerance
// ahead of now, in which case the previous year is used.
func ParseDate(text string, now time.Time, futureTolerance time.Duration) (Date, error) {
	m := reMonthDay.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Date{}, fmt.Errorf("%w: %q", ErrBadDate, text)
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])

	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: month %d out of range", ErrBadDate, month)
	}
	// 2000 is a leap year, so 2月29日 is accepted here and settled below.
	if day < 1 || day > daysIn(time.Month(month), 2000) {
		return Date{}, fmt.Errorf("%w: day %d out of range for month %d", ErrBadDate, day, month)
	}

	d := Date{Year: now.Year(), Month: time.Month(month), Day: day}
	if d.Time(now.Location()).Sub(now) > futureTolerance {
		d.Year--
	}

	for d.Day > daysIn(d.Month, d.Year) {
		d.Year--
	}

	return d, nil
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Label renders the date the way the listing page prints it.
func (d Date) Label() string {
	return fmt.Sprintf("%d月%d日", int(d.Month), d.Day)
}

func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns local midnight of the date in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Unix() int64 {
	return d.Time(time.Local).Unix()
}

func (d Date) key() int {
	return d.Year*10000 + int(d.Month)*100 + d.Day
}

func (d Date) After(o Date) bool {
	return d.key() > o.key()
}

func (d Date) Equal(o Date) bool {
	return d.key() == o.key()
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}
