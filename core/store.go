package core

import "github.com/pkg/errors"

var ErrKeyNotFound = errors.New("key not found")

// KVStore is a flat string-keyed byte store.
// Get returns ErrKeyNotFound when the key is absent.
type KVStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
	Close() error
}
