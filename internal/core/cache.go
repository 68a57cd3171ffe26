package core

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// rosterCache memoizes parsed rosters by source, path and content hash. Each call
// rereads the file, so an edited export is picked up on the next request,
// while unchanged content is never parsed twice. Concurrent loads of the
// same path share one read.
type rosterCache struct {
	readFile func(string) ([]byte, error)
	now      func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry

	group singleflight.Group
}

type cacheEntry struct {
	sum    [sha256.Size]byte
	roster *Roster
}

func newRosterCache() *rosterCache {
	return &rosterCache{
		readFile: os.ReadFile,
		now:      time.Now,
		entries:  make(map[string]cacheEntry),
	}
}

// load returns the roster for path, parsing it only when its content changed.
// fresh reports whether this call produced a newly parsed roster.
func (c *rosterCache) load(ctx context.Context, path string, def SourceDefinition) (roster *Roster, fresh bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	key := cacheKey(def.Info.Key, path)

	type result struct {
		roster *Roster
		fresh  bool
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		data, err := c.readFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load %s: %w: %s", def.Info.Key, ErrSourceNotFound, path)
			}
			return nil, fmt.Errorf("load %s: %w", def.Info.Key, err)
		}

		sum := sha256.Sum256(data)

		c.mu.RLock()
		entry, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && entry.sum == sum {
			return result{roster: entry.roster}, nil
		}

		parsed, err := ParseRoster(data, def)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", def.Info.Key, err)
		}
		parsed.Version = uuid.New()
		parsed.Path = path
		parsed.LoadedAt = c.now()

		c.mu.Lock()
		c.entries[key] = cacheEntry{sum: sum, roster: parsed}
		c.mu.Unlock()

		return result{roster: parsed, fresh: true}, nil
	})
	if err != nil {
		return nil, false, err
	}

	res := v.(result)
	return res.roster, res.fresh, nil
}

// forget drops the cached roster of one source.
func (c *rosterCache) forget(source, path string) {
	c.mu.Lock()
	delete(c.entries, cacheKey(source, path))
	c.mu.Unlock()
}

// cacheKey identifies a source read from path. Two sources pointed at the
// same file are parsed against their own definitions.
func cacheKey(source, path string) string {
	return source + "\x00" + path
}
