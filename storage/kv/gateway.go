// Package kv persists the organizer aggregates as JSON documents in a flat key-value store.
package kv

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/daftari/core"
)

// key layout
const (
	keyCourses        = "courses_list"
	keyCoursePrefix   = "course_"
	keyEnvPrefix      = "course_env_"
	keyTimetable      = "weeklyTimetable"
	keyYears          = "@user_courses"
	keyActiveTasks    = "active_tasks_data"
	keyCompletedTasks = "completed_tasks_data"
)

var errMalformed = errors.New("malformed JSON")

// Gateway is a best-effort JSON load/save layer over a core.KVStore.
// Store failures and malformed documents are logged as *core.PersistenceFault and never returned:
// Load yields nil and Save gives up.
type Gateway struct {
	store  core.KVStore
	logger core.Logger
}

func NewGateway(store core.KVStore, logger core.Logger) *Gateway {
	return &Gateway{store: store, logger: logger}
}

// Load returns the JSON stored at key, or nil when the key is absent or unreadable.
func (gw *Gateway) Load(key string) json.RawMessage {
	data, err := gw.store.Get(key)
	if err != nil {
		if errors.Cause(err) != core.ErrKeyNotFound {
			gw.fault(key, "load", err)
		}
		return nil
	}
	if !json.Valid(data) {
		gw.fault(key, "load", errMalformed)
		return nil
	}
	return data
}

func (gw *Gateway) Save(key string, value json.RawMessage) {
	if err := gw.store.Set(key, value); err != nil {
		gw.fault(key, "save", err)
	}
}

func (gw *Gateway) Remove(key string) {
	if err := gw.store.Delete(key); err != nil && errors.Cause(err) != core.ErrKeyNotFound {
		gw.fault(key, "delete", err)
	}
}

// decode unmarshals the document at key into dst; false when there is nothing usable.
func (gw *Gateway) decode(key string, dst interface{}) bool {
	raw := gw.Load(key)
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		gw.fault(key, "load", err)
		return false
	}
	return true
}

func (gw *Gateway) encode(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		gw.fault(key, "save", err)
		return
	}
	gw.Save(key, data)
}

func (gw *Gateway) fault(key, op string, err error) {
	f := &core.PersistenceFault{Key: key, Op: op, Err: err}
	gw.logger.Error("persistence fault: "+f.Error(), f)
}
