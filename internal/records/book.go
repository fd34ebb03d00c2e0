package records

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/skygrel/panther/internal/clock"
	"github.com/skygrel/panther/internal/logging"
)

// OpenStore picks the storage backend by name inside dataDir.
func OpenStore(backend, dataDir string) (Store, error) {
	switch backend {
	case "", "json":
		return NewJSONStore(filepath.Join(dataDir, JSONFileName)), nil
	case "sqlite":
		return NewSQLiteStore(filepath.Join(dataDir, SQLiteFileName))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Book owns the in-memory Records aggregate and its store. Screens read it
// through Snapshot; a finished session is added exactly once through Add.
type Book struct {
	mu    sync.Mutex
	data  Records
	store Store
	clock clock.Clock
}

// LoadBook loads the aggregate from store. A missing or malformed store
// degrades to an empty aggregate.
func LoadBook(ctx context.Context, store Store, c clock.Clock) *Book {
	data, err := store.Load(ctx)
	if err != nil {
		logging.L().Warn("loading records failed, starting empty", "error", err)
		data = Empty()
	}
	return &Book{data: data, store: store, clock: c}
}

// Add appends a session finished now and rewrites the store. A failed write
// keeps the record in memory and is only logged.
func (b *Book) Add(ctx context.Context, distance, time, speed float64) Record {
	now := b.clock.Now()
	rec := Record{
		Timestamp: float64(now.Unix()) + float64(now.Nanosecond())/1e9,
		Distance:  distance,
		Time:      time,
		Speed:     speed,
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data.Append(rec)

	logging.L().Info("training recorded", "distance", distance, "time", time, "speed", speed)
	if err := b.store.Save(ctx, b.data); err != nil {
		logging.L().Warn("saving records failed", "error", err)
	}
	return rec
}

func (b *Book) Snapshot() Records {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data.Clone()
}

func (b *Book) Close() error {
	return b.store.Close()
}
