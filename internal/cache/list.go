package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dmafb/checkin/internal/api"
)

const surveyListKey = "cache_surveys"

// SurveyLister fetches the live survey list. *api.Client satisfies this.
type SurveyLister interface {
	Surveys(ctx context.Context) ([]api.SurveyListEntry, error)
}

// Persistence stores cache snapshots across restarts. *storage.Store
// satisfies this.
type Persistence interface {
	GetCache(key string) ([]byte, bool, error)
	PutCache(key string, data []byte) error
}

// SurveyList is the read-through cache for the survey list endpoint. The
// snapshot is held in memory and mirrored to persistent storage; persistence
// failures degrade the cache, never the fetch.
type SurveyList struct {
	lister SurveyLister
	store  Persistence
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	entry Entry
}

// NewSurveyList builds the list cache. A nil store disables persistence; a
// non-positive ttl falls back to DefaultSurveyListTTL.
func NewSurveyList(lister SurveyLister, store Persistence, ttl time.Duration, logger *zap.Logger) *SurveyList {
	if ttl <= 0 {
		ttl = DefaultSurveyListTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SurveyList{
		lister: lister,
		store:  store,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Fetch returns the survey list. When force is false and a snapshot younger
// than the TTL exists, the snapshot is returned without a network call;
// otherwise a live fetch runs and repopulates the cache on success.
func (c *SurveyList) Fetch(ctx context.Context, force bool) ([]api.SurveyListEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !force {
		if Fresh(c.entry, now, c.ttl) {
			return c.entry.Items, nil
		}
		if entry, ok := c.loadPersisted(); ok && Fresh(entry, now, c.ttl) {
			c.entry = entry
			return entry.Items, nil
		}
	}

	items, err := c.lister.Surveys(ctx)
	if err != nil {
		return nil, err
	}

	c.entry = Entry{CapturedAt: now, Items: items}
	c.persist(c.entry)
	return items, nil
}

// Invalidate drops the in-memory snapshot so the next Fetch goes live unless
// a fresh persisted snapshot exists.
func (c *SurveyList) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = Entry{}
}

func (c *SurveyList) loadPersisted() (Entry, bool) {
	if c.store == nil {
		return Entry{}, false
	}
	raw, found, err := c.store.GetCache(surveyListKey)
	if err != nil || !found {
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.logger.Warn("discarding undecodable survey list snapshot", zap.Error(err))
		return Entry{}, false
	}
	return entry, true
}

func (c *SurveyList) persist(entry Entry) {
	if c.store == nil {
		return
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn("failed to encode survey list snapshot", zap.Error(err))
		return
	}
	if err := c.store.PutCache(surveyListKey, raw); err != nil {
		c.logger.Warn("failed to persist survey list snapshot", zap.Error(err))
	}
}
