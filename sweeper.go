package ttlstore

import (
	"context"
	"time"

	"github.com/bool64/ctxd"
	"github.com/robfig/cron/v3"
)

// every is a cron.Schedule with constant delay, sub-second delays are allowed.
type every time.Duration

// Next implements cron.Schedule.
func (e every) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

// sweeper runs background jobs of a store.
type sweeper struct {
	cron *cron.Cron
}

func newSweeper(s *Store, interval time.Duration, reportItems bool) *sweeper {
	logger := cronLogger{log: s.log, name: s.config.Name}

	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	c.Schedule(every(interval), cron.FuncJob(s.sweep))

	if reportItems {
		c.Schedule(every(s.config.ItemsCountReportInterval), cron.FuncJob(s.reportItemsCount))
	}

	return &sweeper{cron: c}
}

// start arms the scheduler in background.
func (sw *sweeper) start() {
	sw.cron.Start()
}

// stop prevents future runs and waits for running jobs to finish.
func (sw *sweeper) stop() {
	<-sw.cron.Stop().Done()
}

// sweep is a background job to remove expired entries and relieve heap pressure.
func (s *Store) sweep() {
	ctx := context.Background()

	s.RemoveExpiredEntries(ctx)
	s.evictHeapInUse(ctx)
}

func (s *Store) reportItemsCount() {
	ctx := context.Background()
	count := s.Len()

	s.log.Debug(ctx, "cache items count",
		"name", s.config.Name,
		"count", count,
	)
	s.stat.Set(ctx, MetricItems, float64(count), "name", s.config.Name)
}

// cronLogger adapts ctxd.Logger to cron.Logger.
type cronLogger struct {
	log  ctxd.Logger
	name string
}

// Info logs scheduler routine with debug level.
func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(context.Background(), "cache sweeper: "+msg, append(keysAndValues, "name", l.name)...)
}

// Error logs job failure.
func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(context.Background(), "cache sweeper: "+msg, append(keysAndValues, "name", l.name, "error", err)...)
}
