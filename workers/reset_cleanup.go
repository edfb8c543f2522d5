package workers

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"vocab-learn-system/models"
)

// StartResetCodeCleanup runs an hourly job that clears expired password
// reset codes so stale codes cannot linger in the users table.
func StartResetCodeCleanup(db *gorm.DB) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			res := db.Model(&models.User{}).
				Where("reset_code IS NOT NULL AND reset_code_expiry < ?", time.Now()).
				Updates(map[string]interface{}{
					"reset_code":        nil,
					"reset_code_expiry": nil,
				})
			if res.Error != nil {
				log.Printf("[ResetCleanup] DB error: %v", res.Error)
				return
			}
			if res.RowsAffected > 0 {
				log.Printf("✅ Cleared %d expired reset codes", res.RowsAffected)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
