package dummykv

import (
	"sort"
	"strings"
	"sync"

	"github.com/trezcool/daftari/core"
)

// DB is an in-memory core.KVStore.
type DB struct {
	sync.RWMutex
	table map[string][]byte
}

var _ core.KVStore = (*DB)(nil) // interface compliance check

func Open() (*DB, error) {
	return &DB{table: make(map[string][]byte)}, nil
}

func (db *DB) Get(key string) ([]byte, error) {
	db.RLock()
	defer db.RUnlock()

	val, ok := db.table[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return append([]byte(nil), val...), nil
}

func (db *DB) Set(key string, value []byte) error {
	db.Lock()
	defer db.Unlock()
	db.table[key] = append([]byte(nil), value...)
	return nil
}

func (db *DB) Delete(key string) error {
	db.Lock()
	defer db.Unlock()
	delete(db.table, key)
	return nil
}

func (db *DB) Keys(prefix string) ([]string, error) {
	db.RLock()
	defer db.RUnlock()

	keys := make([]string, 0, len(db.table))
	for k := range db.table {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (db *DB) Close() error {
	return nil
}
