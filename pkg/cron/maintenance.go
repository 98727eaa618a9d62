package cron

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const MaintenanceSchedule = "@hourly"

type MaintenanceStore interface {
	PurgeAuthCodes(ctx context.Context, now time.Time) (int64, error)
	PurgeDanglingSaved(ctx context.Context) (int64, error)
}

// RunMaintenance drops used or expired confirmation codes and bookmarks whose
// room no longer exists. Both steps run even if the first fails.
func RunMaintenance(ctx context.Context, store MaintenanceStore, now time.Time) error {
	var firstErr error

	codes, err := store.PurgeAuthCodes(ctx, now)
	if err != nil {
		firstErr = fmt.Errorf("purge auth codes: %w", err)
	}

	saved, err := store.PurgeDanglingSaved(ctx)
	if err != nil && firstErr == nil {
		firstErr = fmt.Errorf("purge saved rooms: %w", err)
	}

	if codes > 0 || saved > 0 {
		log.Printf("[cron] maintenance removed %d auth codes, %d saved rooms", codes, saved)
	}
	return firstErr
}

// InitMaintenanceCron starts the hourly cleanup. The caller stops the
// returned scheduler on shutdown.
func InitMaintenanceCron(store MaintenanceStore) (*cron.Cron, error) {
	var mu sync.Mutex
	c := cron.New()

	_, err := c.AddFunc(MaintenanceSchedule, func() {
		if !mu.TryLock() {
			log.Printf("[cron] previous maintenance run still active, skipping")
			return
		}
		defer mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := RunMaintenance(ctx, store, time.Now()); err != nil {
			log.Printf("[cron] maintenance failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("could not schedule maintenance: %w", err)
	}

	c.Start()
	log.Printf("[cron] maintenance scheduled %s", MaintenanceSchedule)
	return c, nil
}
