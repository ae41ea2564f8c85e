package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created")
}

func TestSaveAndLoadRun(t *testing.T) {
	store := openTestStore(t)

	run := &Run{
		TrackID:     "classic",
		TrackHash:   0xfedcba9876543210,
		Seed:        -42,
		TickRate:    60,
		Config:      []byte("car:\n  max_velocity: 4\n"),
		Inputs:      []byte{0x82, 0xa1, 0x76, 0x01},
		Ticks:       12345,
		BestLevel:   2,
		Completions: 3,
		Crashes:     4,
		Wins:        1,
	}

	id, err := store.SaveRun(run)
	require.NoError(t, err)
	assert.Len(t, id, 36, "expected a UUID")
	assert.Equal(t, id, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	got, err := store.LoadRun(id)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, run.TrackID, got.TrackID)
	assert.Equal(t, run.TrackHash, got.TrackHash)
	assert.Equal(t, run.Seed, got.Seed)
	assert.Equal(t, run.TickRate, got.TickRate)
	assert.Equal(t, run.Config, got.Config)
	assert.Equal(t, run.Inputs, got.Inputs)
	assert.Equal(t, run.Ticks, got.Ticks)
	assert.Equal(t, 2, got.BestLevel)
	assert.Equal(t, 3, got.Completions)
	assert.Equal(t, 4, got.Crashes)
	assert.Equal(t, 1, got.Wins)
	assert.WithinDuration(t, run.CreatedAt, got.CreatedAt, time.Second)
}

func TestLoadRunByPrefix(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(&Run{ID: "abc-111", TrackID: "classic"})
	require.NoError(t, err)
	_, err = store.SaveRun(&Run{ID: "abd-222", TrackID: "classic"})
	require.NoError(t, err)

	got, err := store.LoadRun("abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc-111", got.ID)

	_, err = store.LoadRun("ab")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	got, err = store.LoadRun("zzz")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.LoadRun("")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveRunDuplicateID(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(&Run{ID: "same", TrackID: "classic"})
	require.NoError(t, err)
	_, err = store.SaveRun(&Run{ID: "same", TrackID: "classic"})
	assert.ErrorContains(t, err, "storage: cannot save run")
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, trackID := range []string{"classic", "hairpin", "classic", "classic"} {
		_, err := store.SaveRun(&Run{
			ID:        strings.Repeat(string(rune('a'+i)), 4),
			TrackID:   trackID,
			Ticks:     uint64(i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	all, err := store.RecentRuns("", 10)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "dddd", all[0].ID, "newest first")
	assert.Equal(t, "aaaa", all[3].ID)

	classic, err := store.RecentRuns("classic", 2)
	require.NoError(t, err)
	require.Len(t, classic, 2)
	assert.Equal(t, "dddd", classic[0].ID)
	assert.Equal(t, "cccc", classic[1].ID)

	none, err := store.RecentRuns("missing", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(&Run{TrackID: "classic"})
	require.NoError(t, err)
	require.NoError(t, store.DeleteRun(id))
	require.NoError(t, store.DeleteRun(id))

	got, err := store.LoadRun(id)
	require.NoError(t, err)
	assert.Nil(t, got)
}
