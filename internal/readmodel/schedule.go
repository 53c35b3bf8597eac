package readmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/MLSatya/spark-scheduler/internal/models"
)

// The bookings table is the single authoritative store. ScheduleMirror keeps
// a derived, human-browsable day view per staff member in redis. It is
// refreshed after every booking mutation and can always be rebuilt from the
// table, so no write ever assumes both stores updated atomically.
type ScheduleMirror struct {
	db    *gorm.DB
	redis *redis.Client
	ttl   time.Duration
}

func NewScheduleMirror(db *gorm.DB, rdb *redis.Client) *ScheduleMirror {
	return &ScheduleMirror{
		db:    db,
		redis: rdb,
		ttl:   48 * time.Hour,
	}
}

type DayEntry struct {
	BookingID uint   `json:"booking_id"`
	Reference string `json:"reference"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Status    string `json:"status"`
	Customer  string `json:"customer"`
	Service   string `json:"service"`
}

func dayKey(staffID uint, date string) string {
	return fmt.Sprintf("schedule:%d:%s", staffID, date)
}

const dirtyKey = "schedule:dirty"

// MarkDirty records a mutated staff/day pair; Reconcile picks it up.
func (m *ScheduleMirror) MarkDirty(ctx context.Context, staffID uint, date string) {
	if m.redis == nil {
		return
	}
	m.redis.SAdd(ctx, dirtyKey, dayKey(staffID, date))
	m.redis.Del(ctx, dayKey(staffID, date))
}

// Get returns the cached day view, or false when the mirror is cold.
func (m *ScheduleMirror) Get(ctx context.Context, staffID uint, date string) ([]DayEntry, bool) {
	if m.redis == nil {
		return nil, false
	}

	raw, err := m.redis.Get(ctx, dayKey(staffID, date)).Result()
	if err != nil {
		return nil, false
	}

	var entries []DayEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// Rebuild recomputes one staff/day view from the bookings table and stores
// it. The day boundaries are interpreted in loc.
func (m *ScheduleMirror) Rebuild(ctx context.Context, staffID uint, date string, loc *time.Location) ([]DayEntry, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, err
	}

	start := day
	end := day.Add(24 * time.Hour)

	var bookings []models.Booking
	if err := m.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"staff_id = ? AND start_time >= ? AND start_time < ?",
			staffID, start, end,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	entries := make([]DayEntry, 0, len(bookings))
	for _, b := range bookings {
		entries = append(entries, DayEntry{
			BookingID: b.ID,
			Reference: b.Reference,
			Start:     b.StartTime.In(loc).Format("15:04"),
			End:       b.EndTime.In(loc).Format("15:04"),
			Status:    b.Status,
			Customer:  b.Customer.Name,
			Service:   b.Service.Name,
		})
	}

	if m.redis != nil {
		if raw, err := json.Marshal(entries); err == nil {
			m.redis.Set(ctx, dayKey(staffID, date), raw, m.ttl)
			m.redis.SRem(ctx, dirtyKey, dayKey(staffID, date))
		}
	}

	return entries, nil
}

// Reconcile drains the dirty set, rebuilding each marked day. Keys it cannot
// parse are dropped; the next read rebuilds on demand anyway.
func (m *ScheduleMirror) Reconcile(ctx context.Context, loc *time.Location) {
	if m.redis == nil {
		return
	}

	keys, err := m.redis.SMembers(ctx, dirtyKey).Result()
	if err != nil {
		return
	}

	for _, key := range keys {
		var staffID uint
		var date string
		if _, err := fmt.Sscanf(key, "schedule:%d:%s", &staffID, &date); err != nil {
			m.redis.SRem(ctx, dirtyKey, key)
			continue
		}
		if _, err := m.Rebuild(ctx, staffID, date, loc); err != nil {
			continue
		}
	}
}
