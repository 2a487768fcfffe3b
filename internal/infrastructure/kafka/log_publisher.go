package kafka

import (
	"context"

	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
)

// LogPublisher используется, когда Kafka не настроена: событие только пишется в лог.
type LogPublisher struct {
	logger logger.Logger
}

func NewLogPublisher(logger logger.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishCheckout(_ context.Context, event *usecase.CheckoutEvent) error {
	p.logger.Infof("checkout completed (order_id: %s, session_id: %s, items: %d, total: %s)",
		event.OrderID, event.SessionID, event.TotalItems, event.Total)
	return nil
}
