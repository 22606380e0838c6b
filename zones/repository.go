package zones

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/philtim/offsetclock/offset"
	"github.com/philtim/offsetclock/store"
)

// Storage keys
const (
	KeyTimeZones = "timeZones"
	KeyHome      = "homeTimeZone"
	KeyDarkMode  = "darkMode"
)

// Repository persists the time zone collection, the home entry and
// display preferences through a store.Store.
//
// Reads never fail: a missing, corrupt or unreachable store degrades to an
// empty collection and the default home entry.
type Repository struct {
	store    store.Store
	validate *validator.Validate
}

// NewRepository creates a repository on top of s
func NewRepository(s store.Store) *Repository {
	return &Repository{
		store:    s,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// List returns every stored entry in insertion order
func (r *Repository) List(ctx context.Context) []Entry {
	entries, err := r.load(ctx)
	if err != nil {
		log.Error().Err(err).Str("key", KeyTimeZones).Msg("Error loading time zones")
		return []Entry{}
	}
	return entries
}

// Add appends e and returns the updated collection.
// On failure the stored collection is returned unchanged together with the error.
// A failed read is reported and never overwrites what is stored.
func (r *Repository) Add(ctx context.Context, e Entry) ([]Entry, error) {
	e = e.withWindowsZone()
	if err := r.check(e); err != nil {
		return r.List(ctx), err
	}

	current, err := r.load(ctx)
	if err != nil {
		log.Error().Err(err).Str("id", e.ID).Msg("Error loading time zones before add")
		return []Entry{}, fmt.Errorf("add '%s': %w", e.ID, err)
	}
	for _, existing := range current {
		if existing.ID == e.ID {
			return current, fmt.Errorf("add '%s': %w", e.ID, ErrDuplicateID)
		}
	}

	updated := append(current[:len(current):len(current)], e)
	if err := r.save(ctx, KeyTimeZones, updated); err != nil {
		log.Error().Err(err).Str("id", e.ID).Msg("Error adding time zone")
		return current, err
	}

	log.Info().Str("id", e.ID).Str("name", e.Name).Str("offset", e.Label).Msg("Time zone added")
	return updated, nil
}

// Remove deletes the entry with id and returns the updated collection.
// Unknown ids, including HomeID, leave the collection untouched.
func (r *Repository) Remove(ctx context.Context, id string) ([]Entry, error) {
	current, err := r.load(ctx)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Error loading time zones before delete")
		return []Entry{}, fmt.Errorf("delete '%s': %w", id, err)
	}

	updated := make([]Entry, 0, len(current))
	for _, e := range current {
		if e.ID != id {
			updated = append(updated, e)
		}
	}
	if len(updated) == len(current) {
		return current, nil
	}

	if err := r.save(ctx, KeyTimeZones, updated); err != nil {
		log.Error().Err(err).Str("id", id).Msg("Error deleting time zone")
		return current, err
	}

	log.Info().Str("id", id).Msg("Time zone deleted")
	return updated, nil
}

// Home returns the stored home entry or DefaultHome
func (r *Repository) Home(ctx context.Context) Entry {
	data, err := r.store.Get(ctx, KeyHome)
	if errors.Is(err, store.ErrNotFound) {
		return DefaultHome()
	}
	if err != nil {
		log.Error().Err(err).Msg("Error loading home time zone")
		return DefaultHome()
	}

	var home Entry
	if err := json.Unmarshal(data, &home); err != nil {
		log.Error().Err(err).Msg("Error decoding home time zone")
		return DefaultHome()
	}
	if err := r.verify(home); err != nil {
		log.Warn().Err(err).Msg("Ignoring invalid home time zone")
		return DefaultHome()
	}
	return home.withWindowsZone()
}

// SetHome replaces the home entry; its id is always HomeID
func (r *Repository) SetHome(ctx context.Context, e Entry) error {
	e.ID = HomeID
	e = e.withWindowsZone()
	if err := r.validate.Struct(e); err != nil {
		return fmt.Errorf("invalid home time zone: %w", err)
	}

	if err := r.save(ctx, KeyHome, e); err != nil {
		log.Error().Err(err).Msg("Error setting home time zone")
		return err
	}

	log.Info().Str("name", e.Name).Str("offset", e.Label).Msg("Home time zone set")
	return nil
}

// DarkMode reports the stored theme preference; false when unset
func (r *Repository) DarkMode(ctx context.Context) bool {
	data, err := r.store.Get(ctx, KeyDarkMode)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn().Err(err).Msg("Error loading dark mode preference")
		}
		return false
	}

	var dark bool
	if err := json.Unmarshal(data, &dark); err != nil {
		log.Warn().Err(err).Msg("Error decoding dark mode preference")
		return false
	}
	return dark
}

// SetDarkMode stores the theme preference
func (r *Repository) SetDarkMode(ctx context.Context, dark bool) error {
	return r.save(ctx, KeyDarkMode, dark)
}

func (r *Repository) check(e Entry) error {
	if e.ID == HomeID {
		return fmt.Errorf("add '%s': %w", e.ID, ErrReservedID)
	}
	if err := r.validate.Struct(e); err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}
	return nil
}

// verify rejects decoded entries whose offset is out of range or
// disagrees with their label
func (r *Repository) verify(e Entry) error {
	if err := r.validate.Struct(e); err != nil {
		return err
	}
	l, err := offset.Parse(e.Label)
	if err != nil {
		return err
	}
	if l.Offset() != e.Offset {
		return fmt.Errorf("label %s does not match offset %d", e.Label, e.Offset)
	}
	return nil
}

func (r *Repository) load(ctx context.Context) ([]Entry, error) {
	data, err := r.store.Get(ctx, KeyTimeZones)
	if errors.Is(err, store.ErrNotFound) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode time zones: %w", err)
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if err := r.verify(e); err != nil {
			log.Warn().Err(err).Str("id", e.ID).Msg("Skipping invalid time zone")
			continue
		}
		out = append(out, e.withWindowsZone())
	}
	return out, nil
}

func (r *Repository) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode '%s': %w", key, err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to store '%s': %w", key, err)
	}
	return nil
}
