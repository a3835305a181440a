package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gokulraj121/learn-it-faster/internal/models"
)

// BillingService enforces the free-plan daily generation quota with a Redis
// counter keyed per user per UTC day. Pro accounts are unmetered. Payment
// itself happens outside this service; plan changes land via UpdatePlan on
// the user record.
type BillingService struct {
	redis      *redis.Client
	dailyQuota int
}

func NewBillingService(redisClient *redis.Client, dailyQuota int) *BillingService {
	return &BillingService{redis: redisClient, dailyQuota: dailyQuota}
}

func usageKey(userID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("usage:%s:%s", userID.String(), day.UTC().Format("2006-01-02"))
}

// AllowGeneration consumes one unit of the user's daily quota. Counting
// errors fail open so a Redis outage does not block generation.
func (s *BillingService) AllowGeneration(ctx context.Context, userID uuid.UUID, plan string) error {
	if plan == "pro" {
		return nil
	}

	key := usageKey(userID, time.Now())
	used, err := s.redis.Incr(ctx, key).Result()
	if err != nil {
		return nil
	}
	if used == 1 {
		s.redis.Expire(ctx, key, 48*time.Hour)
	}

	if used > int64(s.dailyQuota) {
		return &RateLimitError{
			Message: fmt.Sprintf("Daily limit of %d generations reached. Upgrade to Pro for unlimited generations.", s.dailyQuota),
		}
	}
	return nil
}

func (s *BillingService) Status(ctx context.Context, userID uuid.UUID, plan string) (*models.SubscriptionStatus, error) {
	status := &models.SubscriptionStatus{Plan: plan}
	if plan == "pro" {
		return status, nil
	}

	status.DailyQuota = s.dailyQuota

	used, err := s.redis.Get(ctx, usageKey(userID, time.Now())).Int()
	if err == nil {
		if used > s.dailyQuota {
			used = s.dailyQuota
		}
		status.UsedToday = used
	}
	return status, nil
}
