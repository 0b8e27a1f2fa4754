// Package scheduler runs the daily review reminder.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/halovoc/internal/srs"
	"github.com/example/halovoc/internal/tagpath"
	"github.com/example/halovoc/internal/words"
)

// Default reminder window in local hours.
const (
	DefaultStartHour = 9
	DefaultEndHour   = 21
)

// Notifier delivers one reminder message.
type Notifier interface {
	SendReminder(dueCount int) error
}

// Scheduler checks hourly for due review cards and sends at most one
// reminder per calendar day inside the configured hour window.
type Scheduler struct {
	scheduler   *gocron.Scheduler
	notifier    Notifier
	words       *words.Store
	startHour   int
	endHour     int
	lastSentDay string
}

// New creates a scheduler. Hours outside [0, 23] fall back to the
// defaults.
func New(notifier Notifier, w *words.Store, startHour, endHour int) *Scheduler {
	if startHour < 0 || startHour > 23 {
		startHour = DefaultStartHour
	}
	if endHour < 0 || endHour > 23 {
		endHour = DefaultEndHour
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		notifier:  notifier,
		words:     w,
		startHour: startHour,
		endHour:   endHour,
	}
}

// Start begins the hourly check in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) checkAndSendReminder() {
	now := time.Now()
	hour := now.Hour()
	if hour < s.startHour || hour > s.endHour {
		return
	}
	today := srs.DayID(now)
	if s.lastSentDay == today {
		return
	}
	count, err := s.countDue(context.Background(), now)
	if err != nil {
		slog.Error("failed to count due words", "error", err)
		return
	}
	if count == 0 {
		return
	}
	if err := s.notifier.SendReminder(count); err != nil {
		slog.Error("failed to send review reminder", "error", err)
		return
	}
	s.lastSentDay = today
	slog.Info("sent review reminder", "due", count)
}

func (s *Scheduler) countDue(ctx context.Context, now time.Time) (int, error) {
	all, err := s.words.Load(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, w := range all {
		if !w.HasTag(tagpath.TagReview) {
			continue
		}
		if state, ok := w.Srs(); ok && srs.IsDue(state, now) {
			count++
		}
	}
	return count, nil
}
