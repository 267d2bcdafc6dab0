// Package monitoring runs background maintenance tasks.
package monitoring

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Reaper periodically deletes stale export artifacts from the upload
// directory. Exports are streamed to the client before their artifact can
// become eligible, so removal is always safe.
type Reaper struct {
	uploadDir string
	schedule  cron.Schedule
	retention time.Duration
	nextRun   time.Time
	ticker    *time.Ticker
	done      chan bool
}

// NewReaper creates a reaper. cronExpr uses standard cron syntax (or
// descriptors like "@hourly"); an unparseable expression falls back to
// hourly.
func NewReaper(uploadDir, cronExpr string, retention time.Duration) *Reaper {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		log.Warn().Err(err).Str("schedule", cronExpr).Msg("invalid cleanup schedule, using @hourly")
		schedule, _ = cron.ParseStandard("@hourly")
	}
	return &Reaper{
		uploadDir: uploadDir,
		schedule:  schedule,
		retention: retention,
		done:      make(chan bool),
	}
}

// Run starts the reaper's ticking loop.
func (r *Reaper) Run() {
	log.Info().Msg("Starting export artifact reaper...")
	r.nextRun = r.schedule.Next(time.Now())
	r.ticker = time.NewTicker(1 * time.Minute)
	defer r.ticker.Stop()

	for {
		select {
		case <-r.done:
			log.Info().Msg("Stopping export artifact reaper.")
			return
		case now := <-r.ticker.C:
			if now.After(r.nextRun) {
				r.reap(now)
				r.nextRun = r.schedule.Next(now)
			}
		}
	}
}

// Stop halts the reaper.
func (r *Reaper) Stop() {
	r.done <- true
}

// reap removes export artifacts older than the retention window.
func (r *Reaper) reap(now time.Time) {
	entries, err := os.ReadDir(r.uploadDir)
	if err != nil {
		log.Warn().Err(err).Msg("reaper: failed to read upload dir")
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_export.pptx") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < r.retention {
			continue
		}
		if err := os.Remove(filepath.Join(r.uploadDir, entry.Name())); err != nil {
			log.Warn().Err(err).Str("artifact", entry.Name()).Msg("reaper: failed to remove artifact")
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("reaper: purged stale export artifacts")
	}
}
