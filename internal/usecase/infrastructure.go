package usecase

import "context"

type EventPublisher interface {
	PublishCheckout(ctx context.Context, event *CheckoutEvent) error
}

type RateLimiter interface {
	Allow(ctx context.Context, clientKey string) (*RateQuota, error)
}
