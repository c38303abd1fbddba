package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/trezcool/daftari/core"
)

// NowIndicator keeps the current-time offset of the day grid up to date.
// The offset is recomputed by a cron job until Stop is called.
type NowIndicator struct {
	layout Layout
	loc    *time.Location
	cron   *cron.Cron

	mu      sync.RWMutex
	offset  int
	visible bool
	updated time.Time
}

func NewNowIndicator(layout Layout, loc *time.Location, spec string, logger core.Logger) (*NowIndicator, error) {
	if loc == nil {
		loc = time.Local
	}
	cl := cronLogger{logger}
	ind := &NowIndicator{
		layout: layout,
		loc:    loc,
		cron:   cron.New(cron.WithLocation(loc), cron.WithLogger(cl), cron.WithChain(cron.SkipIfStillRunning(cl))),
	}
	if _, err := ind.cron.AddFunc(spec, ind.Refresh); err != nil {
		return nil, errors.Wrapf(err, "scheduling now indicator %q", spec)
	}
	return ind, nil
}

// Start computes the offset once then starts the refresh job.
func (ind *NowIndicator) Start() {
	ind.Refresh()
	ind.cron.Start()
}

// Stop cancels the refresh job; the returned context is done once a running refresh completes.
func (ind *NowIndicator) Stop() context.Context {
	return ind.cron.Stop()
}

func (ind *NowIndicator) Refresh() {
	now := core.NowFunc().In(ind.loc)
	offset, visible := ind.layout.CurrentTimeOffset(now)

	ind.mu.Lock()
	defer ind.mu.Unlock()
	ind.offset, ind.visible, ind.updated = offset, visible, now
}

// Offset returns the last computed offset; false means the indicator is hidden.
func (ind *NowIndicator) Offset() (int, bool) {
	ind.mu.RLock()
	defer ind.mu.RUnlock()
	return ind.offset, ind.visible
}

func (ind *NowIndicator) Updated() time.Time {
	ind.mu.RLock()
	defer ind.mu.RUnlock()
	return ind.updated
}

// cronLogger adapts core.Logger to cron.Logger.
type cronLogger struct {
	logger core.Logger
}

var _ cron.Logger = cronLogger{}

// Info is dropped: cron emits it on every tick.
func (l cronLogger) Info(string, ...interface{}) {}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Error(formatCronMsg("cron: "+msg, keysAndValues), err)
}

func formatCronMsg(msg string, keysAndValues []interface{}) string {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		msg += fmt.Sprintf(" %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return msg
}
