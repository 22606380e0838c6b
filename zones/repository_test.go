package zones_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philtim/offsetclock/offset"
	"github.com/philtim/offsetclock/store"
	"github.com/philtim/offsetclock/zones"
)

// ---- failing store ---------------------------------------------------------

type brokenStore struct {
	store.Store
	getErr error
	setErr error
}

func (b *brokenStore) Get(ctx context.Context, key string) ([]byte, error) {
	if b.getErr != nil {
		return nil, b.getErr
	}
	return b.Store.Get(ctx, key)
}

func (b *brokenStore) Set(ctx context.Context, key string, value []byte) error {
	if b.setErr != nil {
		return b.setErr
	}
	return b.Store.Set(ctx, key, value)
}

var _ store.Store = (*brokenStore)(nil)

func mustEntry(t *testing.T, name, raw string) zones.Entry {
	t.Helper()
	e, err := zones.NewEntry(name, raw)
	require.NoError(t, err)
	return e
}

// ---- NewEntry --------------------------------------------------------------

func TestNewEntry(t *testing.T) {
	e := mustEntry(t, "  Tokyo ", "utc + 9")
	assert.Equal(t, "Tokyo", e.Name)
	assert.Equal(t, "UTC+9", e.Label)
	assert.Equal(t, offset.Offset(9), e.Offset)
	assert.Equal(t, "Tokyo Standard Time", e.WindowsZone)
	assert.NotEmpty(t, e.ID)
	assert.NotEqual(t, zones.HomeID, e.ID)
}

func TestNewEntry_UniqueOrderedIDs(t *testing.T) {
	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 200; i++ {
		e := mustEntry(t, "x", "UTC+0")
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
		assert.Greater(t, e.ID, prev)
		prev = e.ID
	}
}

func TestNewEntry_Errors(t *testing.T) {
	tests := []struct {
		name, raw string
		want      error
	}{
		{name: "", raw: "UTC+1", want: zones.ErrEmptyName},
		{name: "   ", raw: "UTC+1", want: zones.ErrEmptyName},
		{name: "Lagos", raw: " ", want: zones.ErrEmptyOffset},
		{name: "Lagos", raw: "WAT", want: offset.ErrFormat},
		{name: "Lagos", raw: "GMT+13", want: offset.ErrRange},
	}
	for _, tt := range tests {
		_, err := zones.NewEntry(tt.name, tt.raw)
		assert.ErrorIs(t, err, tt.want, "%q %q", tt.name, tt.raw)
	}
}

// ---- collection ------------------------------------------------------------

func TestRepository_AddListRemove(t *testing.T) {
	ctx := context.Background()
	repo := zones.NewRepository(store.NewMemory())

	assert.Empty(t, repo.List(ctx))

	tokyo := mustEntry(t, "Tokyo", "UTC+9")
	ny := mustEntry(t, "New York", "GMT-5")

	list, err := repo.Add(ctx, tokyo)
	require.NoError(t, err)
	assert.Equal(t, []zones.Entry{tokyo}, list)

	list, err = repo.Add(ctx, ny)
	require.NoError(t, err)
	assert.Equal(t, []zones.Entry{tokyo, ny}, list)
	assert.Equal(t, list, repo.List(ctx))

	list, err = repo.Remove(ctx, tokyo.ID)
	require.NoError(t, err)
	assert.Equal(t, []zones.Entry{ny}, list)
	assert.Equal(t, list, repo.List(ctx))
}

func TestRepository_RemoveUnknownLeavesCollection(t *testing.T) {
	ctx := context.Background()
	repo := zones.NewRepository(store.NewMemory())

	tokyo := mustEntry(t, "Tokyo", "UTC+9")
	_, err := repo.Add(ctx, tokyo)
	require.NoError(t, err)
	require.NoError(t, repo.SetHome(ctx, mustEntry(t, "Lagos", "GMT+1")))

	for _, id := range []string{"does-not-exist", zones.HomeID, ""} {
		list, err := repo.Remove(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []zones.Entry{tokyo}, list)
	}

	assert.Equal(t, "Lagos", repo.Home(ctx).Name)
}

func TestRepository_AddRejects(t *testing.T) {
	ctx := context.Background()
	repo := zones.NewRepository(store.NewMemory())

	tokyo := mustEntry(t, "Tokyo", "UTC+9")
	_, err := repo.Add(ctx, tokyo)
	require.NoError(t, err)

	list, err := repo.Add(ctx, tokyo)
	assert.ErrorIs(t, err, zones.ErrDuplicateID)
	assert.Len(t, list, 1)

	home := zones.DefaultHome()
	_, err = repo.Add(ctx, home)
	assert.ErrorIs(t, err, zones.ErrReservedID)

	_, err = repo.Add(ctx, zones.Entry{ID: "x", Label: "UTC+1", Offset: 1})
	assert.Error(t, err)

	_, err = repo.Add(ctx, zones.Entry{ID: "y", Name: "Bad", Label: "UTC+20", Offset: 20})
	assert.Error(t, err)

	assert.Len(t, repo.List(ctx), 1)
}

func TestRepository_FillsWindowsZone(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Set(ctx, zones.KeyTimeZones,
		[]byte(`[{"id":"1700000000000","name":"Sydney","offset":"UTC+10","offsetValue":10}]`)))

	repo := zones.NewRepository(mem)
	list := repo.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "AUS Eastern Standard Time", list[0].WindowsZone)
	assert.Equal(t, offset.Offset(10), list[0].Offset)

	list, err := repo.Add(ctx, zones.Entry{ID: "2", Name: "Dubai", Label: "GMT+4", Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, "Arabian Standard Time", list[1].WindowsZone)
}

func TestRepository_JSONShape(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	repo := zones.NewRepository(mem)

	_, err := repo.Add(ctx, zones.Entry{ID: "42", Name: "Tokyo", Label: "UTC+9", Offset: 9})
	require.NoError(t, err)

	data, err := mem.Get(ctx, zones.KeyTimeZones)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":"42","name":"Tokyo","offset":"UTC+9","offsetValue":9,"windowsTimeZone":"Tokyo Standard Time"}]`,
		string(data))
}

// ---- degradation -----------------------------------------------------------

func TestRepository_DegradesOnReadFailure(t *testing.T) {
	ctx := context.Background()
	repo := zones.NewRepository(&brokenStore{Store: store.NewMemory(), getErr: errors.New("store down")})

	assert.Empty(t, repo.List(ctx))
	assert.Equal(t, zones.DefaultHome(), repo.Home(ctx))
	assert.False(t, repo.DarkMode(ctx))
}

func TestRepository_DegradesOnCorruptData(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Set(ctx, zones.KeyTimeZones, []byte(`{not json`)))
	require.NoError(t, mem.Set(ctx, zones.KeyHome, []byte(`[]`)))
	require.NoError(t, mem.Set(ctx, zones.KeyDarkMode, []byte(`"yes"`)))

	repo := zones.NewRepository(mem)
	assert.Empty(t, repo.List(ctx))
	assert.Equal(t, zones.DefaultHome(), repo.Home(ctx))
	assert.False(t, repo.DarkMode(ctx))
}

func TestRepository_WriteFailureKeepsCollection(t *testing.T) {
	ctx := context.Background()
	broken := &brokenStore{Store: store.NewMemory()}
	repo := zones.NewRepository(broken)

	tokyo := mustEntry(t, "Tokyo", "UTC+9")
	_, err := repo.Add(ctx, tokyo)
	require.NoError(t, err)

	broken.setErr = errors.New("disk full")

	list, err := repo.Add(ctx, mustEntry(t, "Lima", "UTC-5"))
	assert.Error(t, err)
	assert.Equal(t, []zones.Entry{tokyo}, list)

	list, err = repo.Remove(ctx, tokyo.ID)
	assert.Error(t, err)
	assert.Equal(t, []zones.Entry{tokyo}, list)

	assert.Error(t, repo.SetHome(ctx, mustEntry(t, "Lima", "UTC-5")))
}

func TestRepository_ReadFailureNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	broken := &brokenStore{Store: store.NewMemory()}
	repo := zones.NewRepository(broken)

	var saved []zones.Entry
	for _, name := range []string{"Tokyo", "Lima", "Dubai"} {
		var err error
		saved, err = repo.Add(ctx, mustEntry(t, name, "UTC+1"))
		require.NoError(t, err)
	}

	broken.getErr = errors.New("connection reset")

	list, err := repo.Add(ctx, mustEntry(t, "Sydney", "UTC+10"))
	assert.Error(t, err)
	assert.Empty(t, list)

	_, err = repo.Remove(ctx, saved[0].ID)
	assert.Error(t, err)

	broken.getErr = nil
	assert.Equal(t, saved, repo.List(ctx))
}

func TestRepository_SkipsInvalidStoredEntries(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Set(ctx, zones.KeyTimeZones, []byte(`[
		{"id":"1","name":"Tokyo","offset":"UTC+9","offsetValue":9},
		{"id":"2","name":"Nowhere","offset":"UTC+50","offsetValue":50},
		{"id":"3","name":"Mismatch","offset":"UTC+3","offsetValue":7},
		{"id":"4","name":"","offset":"UTC+1","offsetValue":1}
	]`)))
	require.NoError(t, mem.Set(ctx, zones.KeyHome,
		[]byte(`{"id":"home","name":"Mars","offset":"GMT+1","offsetValue":40}`)))

	repo := zones.NewRepository(mem)
	list := repo.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "Tokyo", list[0].Name)
	assert.Equal(t, zones.DefaultHome(), repo.Home(ctx))
}

// ---- home & preferences ----------------------------------------------------

func TestRepository_Home(t *testing.T) {
	ctx := context.Background()
	repo := zones.NewRepository(store.NewMemory())

	home := repo.Home(ctx)
	assert.Equal(t, zones.HomeID, home.ID)
	assert.Equal(t, "GMT+1", home.Label)
	assert.Equal(t, offset.Offset(1), home.Offset)
	assert.Equal(t, "W. Central Africa Standard Time", home.WindowsZone)

	require.NoError(t, repo.SetHome(ctx, mustEntry(t, "Berlin", "UTC+2")))
	home = repo.Home(ctx)
	assert.Equal(t, zones.HomeID, home.ID)
	assert.Equal(t, "Berlin", home.Name)
	assert.Equal(t, "South Africa Standard Time", home.WindowsZone)

	require.NoError(t, repo.SetHome(ctx, mustEntry(t, "Denver", "GMT-7")))
	assert.Equal(t, "Denver", repo.Home(ctx).Name)
	assert.Empty(t, repo.List(ctx))

	assert.Error(t, repo.SetHome(ctx, zones.Entry{Label: "UTC+1"}))
}

func TestRepository_DarkMode(t *testing.T) {
	ctx := context.Background()
	repo := zones.NewRepository(store.NewMemory())

	assert.False(t, repo.DarkMode(ctx))
	require.NoError(t, repo.SetDarkMode(ctx, true))
	assert.True(t, repo.DarkMode(ctx))
	require.NoError(t, repo.SetDarkMode(ctx, false))
	assert.False(t, repo.DarkMode(ctx))
}
