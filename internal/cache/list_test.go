package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmafb/checkin/internal/api"
)

type fakeLister struct {
	items []api.SurveyListEntry
	err   error
	calls int
}

func (f *fakeLister) Surveys(ctx context.Context) ([]api.SurveyListEntry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type memPersistence struct {
	data map[string][]byte
}

func newMemPersistence() *memPersistence {
	return &memPersistence{data: map[string][]byte{}}
}

func (m *memPersistence) GetCache(key string) ([]byte, bool, error) {
	raw, ok := m.data[key]
	return raw, ok, nil
}

func (m *memPersistence) PutCache(key string, data []byte) error {
	m.data[key] = data
	return nil
}

func TestFresh(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ttl := 10 * time.Second

	assert.False(t, Fresh(Entry{}, now, ttl), "zero entry is never fresh")
	assert.True(t, Fresh(Entry{CapturedAt: now.Add(-5 * time.Second)}, now, ttl))
	assert.False(t, Fresh(Entry{CapturedAt: now.Add(-10 * time.Second)}, now, ttl))
	assert.False(t, Fresh(Entry{CapturedAt: now.Add(-11 * time.Second)}, now, ttl))
}

func TestSurveyList_CachedWithinWindow(t *testing.T) {
	lister := &fakeLister{items: []api.SurveyListEntry{{SurveyID: "s1"}}}
	c := NewSurveyList(lister, newMemPersistence(), 10*time.Second, nil)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	// Populating fetch at t=0.
	items, err := c.Fetch(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, lister.calls)

	// t=5s stays on the snapshot.
	c.now = func() time.Time { return base.Add(5 * time.Second) }
	items, err = c.Fetch(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "s1", items[0].SurveyID)
	assert.Equal(t, 1, lister.calls)

	// t=11s goes live again.
	c.now = func() time.Time { return base.Add(11 * time.Second) }
	_, err = c.Fetch(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, lister.calls)
}

func TestSurveyList_ForceBypassesCache(t *testing.T) {
	lister := &fakeLister{}
	c := NewSurveyList(lister, nil, 10*time.Second, nil)

	_, err := c.Fetch(context.Background(), false)
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, lister.calls)
}

func TestSurveyList_FetchErrorLeavesSnapshot(t *testing.T) {
	lister := &fakeLister{items: []api.SurveyListEntry{{SurveyID: "s1"}}}
	c := NewSurveyList(lister, nil, 10*time.Second, nil)

	base := time.Now()
	c.now = func() time.Time { return base }
	_, err := c.Fetch(context.Background(), false)
	require.NoError(t, err)

	lister.err = errors.New("boom")
	_, err = c.Fetch(context.Background(), true)
	require.Error(t, err)

	// The stale snapshot is still served once the endpoint recovers its TTL.
	lister.err = nil
	items, err := c.Fetch(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "s1", items[0].SurveyID)
}

func TestSurveyList_PersistedSnapshotSurvivesRestart(t *testing.T) {
	store := newMemPersistence()
	lister := &fakeLister{items: []api.SurveyListEntry{{SurveyID: "s1"}}}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c1 := NewSurveyList(lister, store, 10*time.Second, nil)
	c1.now = func() time.Time { return base }
	_, err := c1.Fetch(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 1, lister.calls)

	// A new cache (fresh process) reads the persisted snapshot while fresh.
	c2 := NewSurveyList(lister, store, 10*time.Second, nil)
	c2.now = func() time.Time { return base.Add(5 * time.Second) }
	items, err := c2.Fetch(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "s1", items[0].SurveyID)
	assert.Equal(t, 1, lister.calls)
}

func TestSurveyList_Invalidate(t *testing.T) {
	lister := &fakeLister{}
	c := NewSurveyList(lister, nil, 10*time.Second, nil)

	_, err := c.Fetch(context.Background(), false)
	require.NoError(t, err)

	c.Invalidate()
	_, err = c.Fetch(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, lister.calls)
}
