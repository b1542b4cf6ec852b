package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	repo "schedules_backend/internals/features/users/accounts/repository"
)

// StartBlacklistCleanup drops expired blacklist rows on the given cron expression.
func StartBlacklistCleanup(db *gorm.DB, expr string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(expr, func() { CleanupOnce(db) }); err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[CLEANUP] token blacklist cleanup scheduled (%s)", expr)
	return c, nil
}

func CleanupOnce(db *gorm.DB) int64 {
	n, err := repo.CleanupExpiredBlacklist(db)
	if err != nil {
		log.Printf("[CLEANUP ERROR] token blacklist: %v", err)
		return 0
	}
	if n > 0 {
		log.Printf("[CLEANUP] %d expired tokens removed", n)
	}
	return n
}
