package quota

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"weathertui/internal/forecast"
)

// DefaultCeiling is the fixed maximum number of counted requests per
// billing period. There is no automatic period rollover: the count only
// ever goes up until an operator resets the persisted record.
const DefaultCeiling = 100

// timeLayout matches the timestamp format of the original counter file.
const timeLayout = "2006-01-02 15:04:05"

// Record is the single persisted quota document.
type Record struct {
	Count        int    `yaml:"count"`
	LastDateTime string `yaml:"last_date_time"`
}

// Ledger owns the persisted request counter. All reads and updates go
// through one mutex, and every update rewrites the record atomically, so
// a concurrent reader never observes a partial write.
type Ledger struct {
	path    string
	ceiling int

	mu  sync.Mutex
	rec Record
}

// Open loads the ledger from path, creating and persisting a zero record
// on first-ever access so subsequent reads are stable.
func Open(path string, ceiling int) (*Ledger, error) {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	l := &Ledger{path: path, ceiling: ceiling}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := l.persist(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, forecast.StorageErr(err)
	default:
		if err := yaml.Unmarshal(data, &l.rec); err != nil {
			return nil, forecast.StorageErr(fmt.Errorf("decoding quota record: %w", err))
		}
		if l.rec.Count < 0 {
			return nil, forecast.StorageErr(fmt.Errorf("quota record has negative count %d", l.rec.Count))
		}
	}

	return l, nil
}

// RecordRequest stamps the last-attempt time and, when counted,
// increments the count by exactly one.
func (l *Ledger) RecordRequest(ts time.Time, counted bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if counted {
		l.rec.Count++
	}
	l.rec.LastDateTime = ts.Format(timeLayout)
	return l.persist()
}

// Remaining reports how many counted requests are still allowed,
// clamped to zero once the ceiling is exceeded.
func (l *Ledger) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := l.ceiling - l.rec.Count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Count reports the counted requests made so far.
func (l *Ledger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rec.Count
}

// Snapshot returns a copy of the persisted record for display.
func (l *Ledger) Snapshot() Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rec
}

// persist rewrites the record atomically. Callers hold the mutex,
// except Open before the ledger is shared.
func (l *Ledger) persist() error {
	data, err := yaml.Marshal(l.rec)
	if err != nil {
		return forecast.StorageErr(err)
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, "quota-*.tmp")
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
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return forecast.StorageErr(err)
	}
	return nil
}

var _ forecast.Ledger = (*Ledger)(nil)
