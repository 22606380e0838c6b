package clock

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/philtim/offsetclock/offset"
)

// ConvertLayout is the 12-hour layout of converted times
const ConvertLayout = "3:04 PM"

// ErrTimeFormat is returned when a conversion input is not H:MM or HH:MM
var ErrTimeFormat = errors.New("invalid time format")

var wallPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// Conversion is the result of moving a wall clock time between offsets
type Conversion struct {
	// Time is the wall clock in the target offset, expressed in UTC
	Time time.Time
	// DayShift is the number of days the result lies from the source day.
	// It is -1, 0 or +1 for valid H:MM input; rolled-over input such as
	// 99:99 can move further.
	DayShift int
}

// String returns the converted time as H:MM AM
func (c Conversion) String() string {
	return c.Time.Format(ConvertLayout)
}

// Convert moves a 24-hour H:MM time typed in offset from to offset to,
// anchored on today's date as reported by src.
func Convert(src Source, input string, from, to offset.Offset) (string, error) {
	conv, err := ConvertOn(src.Now(), input, from, to)
	if err != nil {
		return "", err
	}
	return conv.String(), nil
}

// ConvertOn moves a 24-hour H:MM time typed in offset from to offset to,
// anchored on the calendar date of day. Hours and minutes beyond their
// usual range roll over into the following hour or day.
func ConvertOn(day time.Time, input string, from, to offset.Offset) (Conversion, error) {
	m := wallPattern.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return Conversion{}, fmt.Errorf("convert %q: %w", input, ErrTimeFormat)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])

	y, mo, d := day.Date()
	// wall clock in the source offset, written as if it were UTC
	wall := time.Date(y, mo, d, hours, minutes, 0, 0, time.UTC)
	utc := wall.Add(-from.Duration())
	target := utc.Add(to.Duration())

	return Conversion{
		Time:     target,
		DayShift: dayDiff(time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), target),
	}, nil
}

func dayDiff(anchor, t time.Time) int {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(day.Sub(anchor).Hours() / 24)
}
