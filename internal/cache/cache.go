package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"weathertui/internal/forecast"
)

// DiskCache stores one JSON file per forecast key under a dedicated
// directory. Entries are written through on fetch and never expire:
// the key deliberately carries no calendar date.
type DiskCache struct {
	dir string
	mu  sync.Mutex
}

// New creates the cache directory if needed and returns a store on it.
func New(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, forecast.StorageErr(fmt.Errorf("creating cache dir %s: %w", dir, err))
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) path(key forecast.Key) string {
	return filepath.Join(c.dir, key.Normalize().Slug()+".json")
}

// Get returns the cached forecast for a key. A well-formed but missing
// key is not an error: ok is false and err is nil.
func (c *DiskCache) Get(key forecast.Key) (forecast.HourForecast, bool, error) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return forecast.HourForecast{}, false, nil
		}
		return forecast.HourForecast{}, false, forecast.StorageErr(err)
	}

	var value forecast.HourForecast
	if err := json.Unmarshal(data, &value); err != nil {
		return forecast.HourForecast{}, false, forecast.StorageErr(
			fmt.Errorf("decoding cache entry %s: %w", key.Slug(), err))
	}
	return value, true, nil
}

// Put writes a forecast through to disk, overwriting silently when the
// key already exists. The write is all-or-nothing: the entry is staged
// to a temp file and renamed into place, so a failure never corrupts a
// previously persisted record.
func (c *DiskCache) Put(key forecast.Key, value forecast.HourForecast) error {
	value.FromCache = false

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return forecast.StorageErr(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.path(key)
	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return forecast.StorageErr(err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return forecast.StorageErr(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return forecast.StorageErr(err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return forecast.StorageErr(err)
	}
	return nil
}

var _ forecast.Cache = (*DiskCache)(nil)
