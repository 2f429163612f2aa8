package assessment

import (
	"plato/models"
	"plato/services/clock"
	"time"

	"gorm.io/gorm"
)

// RateLimiter admits assessment creations with a fixed, epoch-aligned time
// window counted against persisted assessment timestamps. Denial is a pure
// read, nothing is recorded for a rejected attempt.
type RateLimiter struct {
	db     *gorm.DB
	max    int
	window time.Duration
	clock  clock.Clock
}

func NewRateLimiter(db *gorm.DB, max int, window time.Duration, clk clock.Clock) *RateLimiter {
	return &RateLimiter{db: db, max: max, window: window, clock: clk}
}

// Admit reports whether the user may create another assessment now. When
// denied, the second return value is the remaining wait of the current window.
func (r *RateLimiter) Admit(userID uint) (bool, time.Duration, error) {
	ts := r.clock.Now()
	winSecs := int64(r.window.Seconds())
	windowStartTs := ts.Unix() - ts.Unix()%winSecs
	windowStart := time.Unix(windowStartTs, 0).UTC()

	var count int64
	err := r.db.Model(&models.Assessment{}).
		Where("user_id = ? AND created_at >= ?", userID, windowStart).
		Count(&count).Error
	if err != nil {
		return false, 0, err
	}

	if count >= int64(r.max) {
		wait := time.Unix(windowStartTs+winSecs, 0).Sub(ts)
		if wait < 0 {
			wait = 0
		}
		return false, wait, nil
	}
	return true, 0, nil
}
