package kv

import (
	"github.com/pkg/errors"

	"github.com/trezcool/daftari/core"
	badgerkv "github.com/trezcool/daftari/storage/kv/badger"
	dummykv "github.com/trezcool/daftari/storage/kv/dummy"
)

// Open returns the store selected by conf.Storage.Driver.
func Open(conf *core.Config, logger core.Logger) (core.KVStore, error) {
	switch conf.Storage.Driver {
	case "badger":
		db, err := badgerkv.Open(conf.Storage.Path, logger)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "memory":
		db, err := dummykv.Open()
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}
