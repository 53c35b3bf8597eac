package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/MLSatya/spark-scheduler/internal/config"
	dbpkg "github.com/MLSatya/spark-scheduler/internal/db"
	"github.com/MLSatya/spark-scheduler/internal/notify"
	"github.com/MLSatya/spark-scheduler/internal/readmodel"
	"github.com/MLSatya/spark-scheduler/internal/routes"
	"github.com/MLSatya/spark-scheduler/internal/timezone"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	mirror := readmodel.NewScheduleMirror(db, rdb)
	notifier := notify.NewNotifier(notify.LogSender{})

	routes.RegisterRoutes(r, db, mirror, notifier, cfg)

	reminders := notify.NewReminderScheduler(db, rdb, notifier)
	reminders.Start()
	defer reminders.Stop()

	// sweep the dirty day views back in sync with the bookings table
	go func() {
		loc := timezone.Location(timezone.DefaultTimezone)
		for range time.Tick(5 * time.Minute) {
			mirror.Reconcile(context.Background(), loc)
		}
	}()

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
