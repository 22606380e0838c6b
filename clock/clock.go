package clock

import (
	"fmt"
	"sort"
	"time"

	"github.com/philtim/offsetclock/offset"
)

const (
	// TimeLayout is the 12-hour layout used on clock cards
	TimeLayout = "3:04:05 PM"
	// DateLayout is the date layout used on clock cards
	DateLayout = "2006-01-02"
)

// Clock represents a world clock for a fixed UTC offset
type Clock struct {
	Name   string
	Label  offset.Label
	Offset offset.Offset
}

// New creates a new Clock from a raw offset label such as "UTC+9"
func New(name, label string) (*Clock, error) {
	l, err := offset.Parse(label)
	if err != nil {
		return nil, fmt.Errorf("failed to create clock '%s': %w", name, err)
	}

	return &Clock{
		Name:   name,
		Label:  l,
		Offset: l.Offset(),
	}, nil
}

// FromOffset creates a Clock from an already validated offset value
func FromOffset(name string, o offset.Offset) *Clock {
	return &Clock{
		Name:   name,
		Label:  offset.New("UTC", o),
		Offset: o,
	}
}

// TimeAt returns instant t in this clock's fixed zone
func (c *Clock) TimeAt(t time.Time) time.Time {
	return t.In(c.Offset.Location())
}

// FormatAt returns the time at t in 12-hour format (H:MM:SS AM)
func (c *Clock) FormatAt(t time.Time) string {
	return Format(t, c.Offset)
}

// FormatDateAt returns the date at t in YYYY-MM-DD format
func (c *Clock) FormatDateAt(t time.Time) string {
	return c.TimeAt(t).Format(DateLayout)
}

// FormatDateWithOffset returns the date and canonical label
// Format: "YYYY-MM-DD - UTC+9"
func (c *Clock) FormatDateWithOffset(t time.Time) string {
	return fmt.Sprintf("%s - %s", c.FormatDateAt(t), c.Label)
}

// At shifts instant t onto the wall clock of offset o.
// The location of t is irrelevant; only the instant is used.
func At(t time.Time, o offset.Offset) time.Time {
	return t.UTC().Add(o.Duration())
}

// Format returns what a clock set to offset o displays at instant t
func Format(t time.Time, o offset.Offset) string {
	return At(t, o).Format(TimeLayout)
}

// Lead returns how far other runs ahead of home, e.g. "+8h" or "-3h"
func Lead(home, other offset.Offset) string {
	return (other - home).String()
}

// SortByOffset sorts a slice of clocks by their UTC offset (west to east)
func SortByOffset(clocks []*Clock) {
	sort.SliceStable(clocks, func(i, j int) bool {
		return clocks[i].Offset < clocks[j].Offset
	})
}
