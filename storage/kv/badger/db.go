package badgerkv

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/daftari/core"
)

// DB is a core.KVStore on top of an embedded badger database.
type DB struct {
	db *badger.DB
}

var _ core.KVStore = (*DB)(nil) // interface compliance check

// Open opens (or creates) the database in dir. An empty dir keeps everything in memory.
func Open(dir string, logger core.Logger) (*DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger})
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening badger at %q", dir)
	}
	return &DB{db: db}, nil
}

func (s *DB) Get(key string) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, core.ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "reading %q", key)
	}
	return val, nil
}

func (s *DB) Set(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	return errors.Wrapf(err, "writing %q", key)
}

func (s *DB) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	return errors.Wrapf(err, "deleting %q", key)
}

// Keys lists the stored keys starting with prefix, in byte order.
func (s *DB) Keys(prefix string) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "listing keys")
	}
	return keys, nil
}

func (s *DB) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger's logs to core.Logger; info and debug lines are dropped.
type badgerLogger struct {
	logger core.Logger
}

var _ badger.Logger = badgerLogger{}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Error(fmt.Sprintf("badger: "+format, args...))
	}
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Warn(fmt.Sprintf("badger: "+format, args...))
	}
}

func (l badgerLogger) Infof(string, ...interface{})  {}
func (l badgerLogger) Debugf(string, ...interface{}) {}
