package application

import (
	"errors"
	"sync"

	dataset "market-dashboard/internal/dataset/domain"
)

// LoadFunc reads the workbook at path into a RawTable.
type LoadFunc func(path string) (*dataset.RawTable, error)

// CachedLoader memoizes successful loads per distinct path. A table is
// materialized at most once and treated as read-only afterwards;
// the cache is invalidated only by process restart. Failed loads are not
// cached, so a missing file can be supplied without restarting.
type CachedLoader struct {
	load LoadFunc

	mu     sync.Mutex
	tables map[string]*dataset.RawTable
}

// NewCachedLoader constructs a CachedLoader around load.
func NewCachedLoader(load LoadFunc) (*CachedLoader, error) {
	if load == nil {
		return nil, errors.New("dataset: load func required")
	}
	return &CachedLoader{load: load, tables: make(map[string]*dataset.RawTable)}, nil
}

// Load returns the cached table for path, loading it on first use.
func (l *CachedLoader) Load(path string) (*dataset.RawTable, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if table, ok := l.tables[path]; ok {
		return table, nil
	}
	table, err := l.load(path)
	if err != nil {
		return nil, err
	}
	l.tables[path] = table
	return table, nil
}
