package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/MLSatya/spark-scheduler/internal/models"
)

// ReminderScheduler scans upcoming bookings once an hour and dispatches a
// reminder for each confirmed booking starting 24-48 hours out that has not
// been reminded yet. The flag is set before dispatch, so a crash skips a
// reminder instead of duplicating it.
type ReminderScheduler struct {
	db       *gorm.DB
	redis    *redis.Client
	notifier *Notifier

	CheckInterval time.Duration

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewReminderScheduler(db *gorm.DB, rdb *redis.Client, notifier *Notifier) *ReminderScheduler {
	return &ReminderScheduler{
		db:            db,
		redis:         rdb,
		notifier:      notifier,
		CheckInterval: 1 * time.Hour,
		stop:          make(chan bool),
	}
}

func (s *ReminderScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.ticker.C:
				s.RunOnce(context.Background())
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker == nil {
		return
	}

	s.ticker.Stop()
	close(s.stop)
	s.wg.Wait()
	s.ticker = nil
}

// RunOnce performs a single scan. A redis hour key guards against two
// processes (or an overlapping tick) scanning the same hour twice.
func (s *ReminderScheduler) RunOnce(ctx context.Context) {
	now := time.Now()

	if s.redis != nil {
		key := "reminder:run:" + now.Format("2006010215")
		ok, err := s.redis.SetNX(ctx, key, 1, 2*time.Hour).Result()
		if err != nil {
			log.Println("reminder guard error:", err)
		} else if !ok {
			return
		}
	}

	windowStart := now.Add(24 * time.Hour)
	windowEnd := now.Add(48 * time.Hour)

	var due []models.Booking
	if err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"start_time >= ? AND start_time < ? AND status IN ? AND reminder_sent = false",
			windowStart, windowEnd,
			[]string{"confirmed", "deposit_paid"},
		).
		Find(&due).Error; err != nil {
		log.Println("reminder scan error:", err)
		return
	}

	for _, b := range due {
		if err := s.db.WithContext(ctx).
			Model(&models.Booking{}).
			Where("id = ? AND reminder_sent = false", b.ID).
			Update("reminder_sent", true).Error; err != nil {
			log.Println("reminder flag error:", err)
			continue
		}

		s.notifier.Dispatch(
			TemplateReminder,
			b.Customer.Email,
			b.Customer.Name,
			b.Service.Name,
			b.StartTime.Format("2006-01-02"),
			b.StartTime.Format("15:04"),
		)
	}
}
