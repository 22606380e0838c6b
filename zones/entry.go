package zones

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/philtim/offsetclock/offset"
)

// HomeID is the reserved identifier of the home entry
const HomeID = "home"

var (
	ErrEmptyName   = errors.New("name is required")
	ErrEmptyOffset = errors.New("offset is required")
	ErrReservedID  = errors.New("identifier is reserved")
	ErrDuplicateID = errors.New("identifier already exists")
)

// Entry is a named time zone as persisted by the dashboard
type Entry struct {
	ID          string        `json:"id" validate:"required"`
	Name        string        `json:"name" validate:"required"`
	Label       string        `json:"offset" validate:"required"`
	Offset      offset.Offset `json:"offsetValue" validate:"min=-12,max=12"`
	WindowsZone string        `json:"windowsTimeZone,omitempty"`
}

// NewEntry validates user input and returns an entry with a fresh,
// time-ordered identifier
func NewEntry(name, rawOffset string) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, ErrEmptyName
	}
	if strings.TrimSpace(rawOffset) == "" {
		return Entry{}, ErrEmptyOffset
	}

	l, err := offset.Parse(rawOffset)
	if err != nil {
		return Entry{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Entry{}, fmt.Errorf("failed to generate id: %w", err)
	}

	return Entry{
		ID:          id.String(),
		Name:        name,
		Label:       l.String(),
		Offset:      l.Offset(),
		WindowsZone: offset.WindowsZone(l.Offset()),
	}, nil
}

// DefaultHome is the home entry used until one is stored (GMT+1)
func DefaultHome() Entry {
	l := offset.MustParse("GMT+1")
	return Entry{
		ID:          HomeID,
		Name:        "HOME",
		Label:       l.String(),
		Offset:      l.Offset(),
		WindowsZone: offset.WindowsZone(l.Offset()),
	}
}

// withWindowsZone fills a missing Windows identifier from the offset
func (e Entry) withWindowsZone() Entry {
	if e.WindowsZone == "" {
		e.WindowsZone = offset.WindowsZone(e.Offset)
	}
	return e
}
