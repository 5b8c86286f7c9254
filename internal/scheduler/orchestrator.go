package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/publisher"
	"github.com/fortuna/gridiron/internal/service"
	"github.com/fortuna/gridiron/internal/store"
)

// Orchestrator runs the scheduled recruit synchronization tasks
type Orchestrator struct {
	db        *store.Database
	cache     *cache.RedisCache
	publisher *publisher.RedisPublisher
	config    *Config
	reports   *service.ReportService
	recruits  *service.RecruitService
	cancel    context.CancelFunc
}

// Config holds scheduler configuration
type Config struct {
	SyncHour         int          // Default: 5 (5 AM)
	WeekAnchor       time.Weekday // Report weeks start on this weekday
	EnableWeeklySync bool         // Default: true
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		SyncHour:         5,
		WeekAnchor:       time.Tuesday,
		EnableWeeklySync: true,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(db *store.Database, redisCache *cache.RedisCache, redisPublisher *publisher.RedisPublisher, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		db:        db,
		cache:     redisCache,
		publisher: redisPublisher,
		config:    config,
		reports:   service.NewReportService(db, redisCache),
		recruits:  service.NewRecruitService(db),
	}
}

// Start begins the scheduled sync loop. Blocks until ctx is cancelled.
func (o *Orchestrator) Start(ctx context.Context) {
	log.Printf("Scheduler: weekly sync %v (daily at %02d:00, weeks anchored on %s)",
		o.config.EnableWeeklySync, o.config.SyncHour, o.config.WeekAnchor)

	if !o.config.EnableWeeklySync {
		return
	}

	ctx, o.cancel = context.WithCancel(ctx)

	for {
		wait := untilNextRun(time.Now(), o.config.SyncHour)
		log.Printf("Scheduler: next recruit sync in %v", wait.Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("→ Recruit sync scheduler stopped")
			return
		case <-time.After(wait):
			o.runSyncTask(ctx)
		}
	}
}

// untilNextRun returns the wait until the next daily run hour
func untilNextRun(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// CurrentWeekStart returns the start of the report week containing now: the
// most recent occurrence of the configured anchor weekday.
func (o *Orchestrator) CurrentWeekStart(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	back := (int(now.Weekday()) - int(o.config.WeekAnchor) + 7) % 7
	return midnight.AddDate(0, 0, -back)
}

// runSyncTask performs one synchronize-then-build pass for the current week
func (o *Orchestrator) runSyncTask(ctx context.Context) {
	startTime := time.Now()
	weekStart := o.CurrentWeekStart(startTime)
	log.Printf("═══ Recruit sync starting (week of %s) ═══", weekStart.Format("2006-01-02"))

	syncSummary, err := o.recruits.Synchronize(ctx)
	if err != nil {
		log.Printf("❌ Recruit sync failed: %v", err)
		return
	}

	buildSummary, err := o.reports.BuildWeek(ctx, weekStart)
	if err != nil {
		log.Printf("❌ Report build failed: %v", err)
		return
	}

	if o.publisher != nil {
		payload := map[string]interface{}{
			"week_start": weekStart.Format("2006-01-02"),
			"sync":       syncSummary,
			"build":      buildSummary,
		}
		if err := o.publisher.PublishRecruitSync(ctx, payload); err != nil {
			log.Printf("⚠️  Failed to publish sync event: %v", err)
		}
	}

	log.Printf("✓ Recruit sync complete in %v (%d inserted, %d updated, %d skipped)",
		time.Since(startTime).Round(time.Second),
		buildSummary.Inserted, buildSummary.Updated, buildSummary.Skipped)
}

// Stop gracefully stops the scheduler
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}
