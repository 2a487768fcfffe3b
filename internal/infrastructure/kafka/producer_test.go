package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/internal/cfg"
	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	failures int
	calls    int
	messages []kafka.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.calls++
	if w.failures > 0 {
		w.failures--
		return errors.New("broker not available")
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func testKafkaCfg(retries int) *cfg.KafkaCfg {
	return &cfg.KafkaCfg{
		Brokers:        []string{"localhost:9092"},
		Topic:          "checkout",
		MaxRetries:     retries,
		RetryBaseDelay: time.Millisecond,
		RetryMaxDelay:  2 * time.Millisecond,
	}
}

func testEvent() *usecase.CheckoutEvent {
	return &usecase.CheckoutEvent{
		EventID:    "evt-1",
		OrderID:    "order-1",
		SessionID:  "session-1",
		TotalItems: 3,
		TotalCents: 3390,
		Total:      "33.90",
		Lines: []usecase.CheckoutEventLine{
			{ProductID: 1, Name: "Dipirona 500mg", Quantity: 2, UnitPriceCents: 1250, SubtotalCents: 2500},
			{ProductID: 7, Name: "Paracetamol 750mg", Quantity: 1, UnitPriceCents: 890, SubtotalCents: 890},
		},
		CheckedOutAt: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishCheckout_WritesKeyedJSON(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, logger.NewNopLogger(), testKafkaCfg(3))

	require.NoError(t, p.PublishCheckout(context.Background(), testEvent()))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "session-1", string(msg.Key))

	var got usecase.CheckoutEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "order-1", got.OrderID)
	assert.Equal(t, int64(3390), got.TotalCents)
	assert.Equal(t, "33.90", got.Total)
	assert.Len(t, got.Lines, 2)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "checkout.completed", headers["event_type"])
	assert.Equal(t, "evt-1", headers["event_id"])
}

func TestPublishCheckout_RetriesTransientFailures(t *testing.T) {
	w := &fakeWriter{failures: 2}
	p := NewProducerWithWriter(w, logger.NewNopLogger(), testKafkaCfg(3))

	require.NoError(t, p.PublishCheckout(context.Background(), testEvent()))
	assert.Equal(t, 3, w.calls)
	assert.Len(t, w.messages, 1)
}

func TestPublishCheckout_GivesUpAfterMaxRetries(t *testing.T) {
	w := &fakeWriter{failures: 10}
	p := NewProducerWithWriter(w, logger.NewNopLogger(), testKafkaCfg(2))

	err := p.PublishCheckout(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 attempts failed")
	assert.Equal(t, 2, w.calls)
}

func TestPublishCheckout_StopsOnContextCancel(t *testing.T) {
	w := &fakeWriter{failures: 10}
	c := testKafkaCfg(5)
	c.RetryBaseDelay = time.Hour
	c.RetryMaxDelay = time.Hour
	p := NewProducerWithWriter(w, logger.NewNopLogger(), c)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.PublishCheckout(ctx, testEvent())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, w.calls)
}

func TestLogPublisher(t *testing.T) {
	assert.NoError(t, NewLogPublisher(logger.NewNopLogger()).PublishCheckout(context.Background(), testEvent()))
}
