// Package scheduler keeps the default location's dashboard warm by
// rebuilding it on a fixed interval.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/weatherboard/weatherboard/internal/dashboard"
	"github.com/weatherboard/weatherboard/internal/locate"
	"github.com/weatherboard/weatherboard/internal/store"
)

const buildTimeout = 30 * time.Second

// Refresher periodically rebuilds and caches the default location's
// view. Its Status exposes the loading/content/error state of the
// most recent cycle.
type Refresher struct {
	scheduler *gocron.Scheduler
	builder   *dashboard.Builder
	store     *store.MemoryStore
	location  locate.Location
	interval  time.Duration
	status    *dashboard.Status
}

// New creates a Refresher for the given default location.
func New(builder *dashboard.Builder, st *store.MemoryStore, loc locate.Location, interval time.Duration) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		builder:   builder,
		store:     st,
		location:  loc,
		interval:  interval,
		status:    dashboard.NewStatus(),
	}
}

// Status returns the state machine of the refresh cycle.
func (r *Refresher) Status() *dashboard.Status {
	return r.status
}

// Start schedules the periodic refresh, runs one cycle immediately,
// and starts the underlying scheduler.
func (r *Refresher) Start() error {
	minutes := int(r.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := r.scheduler.Every(minutes).Minutes().Do(r.refresh)
	if err != nil {
		return err
	}

	go r.refresh()
	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}

func (r *Refresher) refresh() {
	r.status.Begin()

	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	view, err := r.builder.Build(ctx, r.location.Lat, r.location.Lon)
	if err != nil {
		log.Printf("scheduler: refresh failed for (%v, %v): %v",
			r.location.Lat, r.location.Lon, err)
	} else {
		r.store.Save(view)
	}

	if terr := r.status.Finish(err); terr != nil {
		log.Printf("scheduler: state transition rejected: %v", terr)
	}
}
