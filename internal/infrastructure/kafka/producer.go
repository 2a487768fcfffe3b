package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/internal/cfg"
	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/jitter"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

// MessageWriter — часть kafka.Writer, нужная продюсеру.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события оформления заказа в Kafka.
type Producer struct {
	writer    MessageWriter
	logger    logger.Logger
	cfg       *cfg.KafkaCfg
	baseDelay time.Duration
	maxDelay  time.Duration
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: cfg.WriteTimeout,
	}

	return NewProducerWithWriter(writer, logger, cfg)
}

// NewProducerWithWriter позволяет подменить writer (используется в тестах).
func NewProducerWithWriter(writer MessageWriter, logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	return &Producer{
		writer:    writer,
		logger:    logger,
		cfg:       cfg,
		baseDelay: cfg.RetryBaseDelay,
		maxDelay:  cfg.RetryMaxDelay,
	}
}

// PublishCheckout сериализует событие в JSON и отправляет его с ключом по сессии,
// повторяя попытки с экспоненциальной задержкой и джиттером.
func (p *Producer) PublishCheckout(ctx context.Context, event *usecase.CheckoutEvent) error {
	const op = "Producer.PublishCheckout"

	msg, err := p.buildMessage(event)
	if err != nil {
		return e.Wrap(op, err)
	}

	attempts := max(1, p.cfg.MaxRetries)
	for attempt := 0; attempt < attempts; attempt++ {
		err = p.writer.WriteMessages(ctx, msg)
		if err == nil {
			p.logger.Debugf("checkout event published (order_id: %s)", event.OrderID)
			return nil
		}

		if attempt == attempts-1 {
			break
		}

		sleepTime := jitter.ExponentialBackoff(p.baseDelay, p.maxDelay, attempt, jitter.DefaultJitter)
		p.logger.Warnf("kafka write failed, retrying in %v (attempt %d): %v", sleepTime, attempt+1, err)

		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return e.Wrap(op, ctx.Err())
		}
	}

	return e.Wrap(op, fmt.Errorf("all %d attempts failed: %w", attempts, err))
}

func (p *Producer) buildMessage(event *usecase.CheckoutEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, e.Wrap(whereami.WhereAmI(), err)
	}

	return kafka.Message{
		Key:   []byte(event.SessionID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("checkout.completed")},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}, nil
}

// EnsureTopic создаёт топик, если его ещё нет.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
