package offset

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// Min is the westernmost supported offset
	Min Offset = -12
	// Max is the easternmost supported offset
	Max Offset = 12
)

var (
	// ErrFormat is returned when a label does not match PREFIX±H
	ErrFormat = errors.New("invalid format")
	// ErrRange is returned when the hour magnitude is above 12
	ErrRange = errors.New("offset out of range")
)

var labelPattern = regexp.MustCompile(`(?i)^(UTC|GMT)\s*([+-])\s*(\d{1,2})$`)

// Offset is a whole-hour displacement from UTC
type Offset int

// Valid reports whether the offset lies within [Min, Max]
func (o Offset) Valid() bool {
	return o >= Min && o <= Max
}

// Seconds returns the offset in seconds east of UTC
func (o Offset) Seconds() int {
	return int(o) * 3600
}

// Duration returns the offset as a time.Duration
func (o Offset) Duration() time.Duration {
	return time.Duration(o) * time.Hour
}

// Location returns a fixed zone for the offset
func (o Offset) Location() *time.Location {
	return time.FixedZone(New("UTC", o).String(), o.Seconds())
}

// String returns the offset as a signed hour count, e.g. "+9h"
func (o Offset) String() string {
	if o < 0 {
		return fmt.Sprintf("%dh", int(o))
	}
	return fmt.Sprintf("+%dh", int(o))
}

// Label is a parsed offset label such as "GMT-4"
type Label struct {
	Prefix string
	Sign   byte
	Hours  int
}

// Parse validates a raw label like "utc + 3" or "GMT-4".
// Matching is case-insensitive and whitespace around the sign is allowed.
func Parse(raw string) (Label, error) {
	m := labelPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Label{}, fmt.Errorf("parse offset %q: %w", raw, ErrFormat)
	}

	hours, err := strconv.Atoi(m[3])
	if err != nil {
		return Label{}, fmt.Errorf("parse offset %q: %w", raw, ErrFormat)
	}
	if hours > int(Max) {
		return Label{}, fmt.Errorf("parse offset %q: %w", raw, ErrRange)
	}

	return Label{
		Prefix: strings.ToUpper(m[1]),
		Sign:   m[2][0],
		Hours:  hours,
	}, nil
}

// MustParse is like Parse but panics on error
func MustParse(raw string) Label {
	l, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return l
}

// New builds the label for an offset value
func New(prefix string, o Offset) Label {
	l := Label{Prefix: strings.ToUpper(prefix), Sign: '+', Hours: int(o)}
	if o < 0 {
		l.Sign = '-'
		l.Hours = -int(o)
	}
	return l
}

// Offset returns the signed offset value
func (l Label) Offset() Offset {
	if l.Sign == '-' {
		return Offset(-l.Hours)
	}
	return Offset(l.Hours)
}

// String returns the canonical label, e.g. "GMT-4"
func (l Label) String() string {
	return fmt.Sprintf("%s%c%d", l.Prefix, l.Sign, l.Hours)
}
