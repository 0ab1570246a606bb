package cron

import (
	"time"

	"github.com/go-co-op/gocron"
)

// NewScheduler returns a tagged scheduler in the configured time zone,
// falling back to UTC for unknown zones.
func NewScheduler(timeZone string) *gocron.Scheduler {
	location, err := time.LoadLocation(timeZone)
	if err != nil {
		location = time.UTC
	}

	scheduler := gocron.NewScheduler(location)
	scheduler.TagsUnique()

	return scheduler
}
