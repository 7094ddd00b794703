package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/buntdb"

	"github.com/imgrooty/roi-calculator/pkg/calculator"
)

const (
	journalTable = "entry"
	journalIndex = "entries_at"
)

type journalRecord struct {
	ID      string  `json:"id"`
	At      int64   `json:"at"`
	Email   string  `json:"email"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	ROI     float64 `json:"roi"`
}

// Journal appends entries to an embedded buntdb file. The path ":memory:"
// keeps everything in memory.
type Journal struct {
	db  *buntdb.DB
	now func() time.Time

	mu     sync.RWMutex
	closed bool
}

// OpenJournal opens or creates the journal at path.
func OpenJournal(path string) (*Journal, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	if err := db.CreateIndex(journalIndex, journalTable+":*", buntdb.IndexJSON("at")); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal index: %w", err)
	}
	return &Journal{db: db, now: time.Now}, nil
}

// Record stores e under a fresh id.
func (j *Journal) Record(ctx context.Context, e calculator.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return ErrClosed
	}

	rec := journalRecord{
		ID:      uuid.NewString(),
		At:      j.now().UnixNano(),
		Email:   e.Email,
		Revenue: e.Revenue,
		Cost:    e.Cost,
		ROI:     e.ROI,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return j.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(journalTable+":"+rec.ID, string(raw), nil)
		return err
	})
}

// List returns up to limit entries, newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]Stored, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return nil, ErrClosed
	}

	var out []Stored
	var decodeErr error
	err := j.db.View(func(tx *buntdb.Tx) error {
		return tx.Descend(journalIndex, func(key, val string) bool {
			var rec journalRecord
			if decodeErr = json.Unmarshal([]byte(val), &rec); decodeErr != nil {
				return false
			}
			out = append(out, Stored{
				ID:         rec.ID,
				RecordedAt: time.Unix(0, rec.At),
				Entry: calculator.Entry{
					Email:   rec.Email,
					Revenue: rec.Revenue,
					Cost:    rec.Cost,
					ROI:     rec.ROI,
				},
			})
			return limit <= 0 || len(out) < limit
		})
	})
	if err != nil {
		return nil, err
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode journal entry: %w", decodeErr)
	}
	return out, ctx.Err()
}

// Count returns the number of stored entries.
func (j *Journal) Count() (int, error) {
	n := 0
	err := j.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend(journalIndex, func(key, val string) bool {
			n++
			return true
		})
	})
	return n, err
}

// Close compacts and closes the file.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	j.db.Shrink()
	return j.db.Close()
}
