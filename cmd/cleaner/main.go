// Command cleaner deletes uploaded files no database row refers to.
//
// Without flags it runs once and exits. With -schedule it keeps running on
// the configured cron spec until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	"wonders-cms/internal/config"
	"wonders-cms/internal/data"
	"wonders-cms/internal/logger"
	"wonders-cms/internal/reconcile"
)

func main() {
	schedule := flag.Bool("schedule", false, "keep running on maintenance.schedule instead of once")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log, nil)

	db, err := data.NewDB(cfg.DB)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	rec := reconcile.New(db, cfg.Uploads.Root, log)

	if !*schedule {
		code := runOnce(rec, log)
		db.Close()
		os.Exit(code)
	}

	scheduler, err := reconcile.NewScheduler(rec, cfg.Maintenance.Schedule, log)
	if err != nil {
		log.Fatal(err, "Failed to schedule upload cleanup")
	}
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	scheduler.Stop(ctx)
}

// runOnce runs the reconciler and returns the process exit code. An abort
// because nothing is referenced is logged but is not a failure.
func runOnce(rec *reconcile.Reconciler, log logger.Logger) int {
	report, err := rec.Run(context.Background())
	switch {
	case errors.Is(err, reconcile.ErrNoReferences):
		log.Warn("Cleanup aborted: the database references no files")
		return 0
	case err != nil:
		log.Error(err, "Cleanup failed")
		return 1
	}
	log.Info(fmt.Sprintf("Referenced files: %d", report.Referenced))
	for _, name := range report.Deleted {
		log.Info("Deleted " + name)
	}
	for _, name := range report.Failed {
		log.Warn("Could not delete " + name)
	}
	log.Info(fmt.Sprintf("Cleanup finished: %d files deleted", len(report.Deleted)))
	return 0
}
