package util

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateLayout is the format to use anywhere we need to output a date to an
// user, and the storage format of TimeAsDate: lexicographic order on the
// stored string is chronological order.
const DateLayout = "2006-01-02"

// TimeAsDate is stored as a "2006-01-02" string but used as a day-granular
// time.Time in UTC.
type TimeAsDate time.Time

func NewTimeAsDate(t time.Time) TimeAsDate {
	return TimeAsDate(DayOf(t))
}

// DayOf truncates a time to midnight UTC of the same calendar day.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (t TimeAsDate) Value() (driver.Value, error) {
	return driver.Value(t.Time().Format(DateLayout)), nil
}

func (t TimeAsDate) Time() time.Time {
	return time.Time(t)
}

func (t TimeAsDate) String() string {
	return t.Time().Format(DateLayout)
}

func (t *TimeAsDate) Scan(src interface{}) error {
	var str string
	switch src := src.(type) {
	case []byte:
		str = string(src)
	case string:
		str = src
	case time.Time: // the driver parses DATE columns on its own
		*t = TimeAsDate(DayOf(src))
		return nil
	default:
		return fmt.Errorf("expected []byte, string, or time.Time, got %T", src)
	}

	tmp, err := time.ParseInLocation(DateLayout, str, time.UTC)
	if err != nil {
		return err
	}

	*t = TimeAsDate(tmp)
	return nil
}
