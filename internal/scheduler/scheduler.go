package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"weathertui/internal/forecast"
)

// Engine is the acquisition surface the scheduler warms the cache through.
type Engine interface {
	Acquire(ctx context.Context, key forecast.Key, now time.Time) (forecast.HourForecast, error)
	Remaining() int
}

// Scheduler periodically warms the forecast cache for configured
// locations. Warming goes through the engine, so it is quota-gated like
// any other request and stops cold once the ceiling is reached.
type Scheduler struct {
	scheduler *gocron.Scheduler
	engine    Engine
	locations []string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(locations []string, interval time.Duration, engine Engine) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		engine:    engine,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		if s.engine.Remaining() == 0 {
			log.Println("scheduler: request ceiling reached; skipping prefetch")
			return
		}

		now := time.Now()
		for _, loc := range s.locations {
			key := forecast.Key{Location: loc, Day: forecast.DayToday, Hour: now.Hour()}

			ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
			value, err := s.engine.Acquire(ctx, key, now)
			cancel()
			if err != nil {
				log.Printf("scheduler: prefetch failed for %s: %v", loc, err)
				continue
			}
			if !value.FromCache {
				log.Printf("scheduler: warmed cache for %s at hour %d", loc, now.Hour())
			}
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
