package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PinThrottle rate-limits kiosk PIN attempts per employee code using a
// Redis counter with a sliding expiry window. A nil client disables
// throttling (kiosks still work when Redis is down).
type PinThrottle struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewPinThrottle builds the throttle.
func NewPinThrottle(client *redis.Client, limit int, windowMinutes int) *PinThrottle {
	if limit <= 0 {
		limit = 5
	}
	if windowMinutes <= 0 {
		windowMinutes = 15
	}
	return &PinThrottle{
		client: client,
		limit:  int64(limit),
		window: time.Duration(windowMinutes) * time.Minute,
	}
}

func (t *PinThrottle) key(code string) string {
	return fmt.Sprintf("kiosk:attempts:%s", code)
}

// Blocked reports whether the code has exhausted its attempt budget.
func (t *PinThrottle) Blocked(ctx context.Context, code string) bool {
	if t == nil || t.client == nil {
		return false
	}
	count, err := t.client.Get(ctx, t.key(code)).Int64()
	if err != nil {
		return false
	}
	return count >= t.limit
}

// RecordFailure increments the failed-attempt counter and refreshes the
// expiry window.
func (t *PinThrottle) RecordFailure(ctx context.Context, code string) {
	if t == nil || t.client == nil {
		return
	}
	key := t.key(code)
	if err := t.client.Incr(ctx, key).Err(); err != nil {
		return
	}
	t.client.Expire(ctx, key, t.window)
}

// Reset clears the counter after a successful login.
func (t *PinThrottle) Reset(ctx context.Context, code string) {
	if t == nil || t.client == nil {
		return
	}
	t.client.Del(ctx, t.key(code))
}
