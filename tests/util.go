package testutil

import (
	"fmt"
	"sync"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/daftari/core"
	"github.com/trezcool/daftari/core/gpa"
	"github.com/trezcool/daftari/core/schedule"
	"github.com/trezcool/daftari/storage/kv"
	dummykv "github.com/trezcool/daftari/storage/kv/dummy"
)

// Entry is one recorded log line.
type Entry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// Logger records every call; it satisfies core.Logger.
type Logger struct {
	sync.Mutex
	Entries []Entry
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string, args []interface{}) {
	l.Lock()
	defer l.Unlock()
	l.Entries = append(l.Entries, Entry{Level: level, Msg: msg, Args: args})
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.log("fatal", msg, args)
	panic(fmt.Sprintf("fatal: %s", msg))
}

// Level returns the recorded entries of the given level.
func (l *Logger) Level(level string) []Entry {
	l.Lock()
	defer l.Unlock()
	var out []Entry
	for _, e := range l.Entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// NewValidate returns a validator with every custom validation registered,
// along with the translator holding their messages.
func NewValidate() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	gpa.InitValidators(validate, translator)
	schedule.InitValidators(validate, translator)
	return validate, translator
}

// NewGateway returns a gateway over a fresh in-memory store.
func NewGateway(t *testing.T) (*kv.Gateway, *dummykv.DB, *Logger) {
	db, err := dummykv.Open()
	if err != nil {
		t.Fatalf("NewGateway() failed: %v", err)
	}
	logger := &Logger{}
	return kv.NewGateway(db, logger), db, logger
}
