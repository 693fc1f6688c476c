package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"tubenotes/types"
)

// Handler processes one decoded run event
type Handler func(ctx context.Context, ev types.RunEvent) error

// Consumer reads run events from a consumer group
type Consumer struct {
	group   sarama.ConsumerGroup
	handler Handler
	topic   string
	groupID string
	logger  *slog.Logger
}

// ConsumerConfig holds Kafka consumer configuration
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler Handler
	Logger  *slog.Logger
}

func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	if cfg.Handler == nil {
		return nil, errors.New("consumer handler is required")
	}

	saramaConfig := newSaramaConfig()
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		group:   group,
		handler: cfg.Handler,
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
		logger:  logger.With("component", "events"),
	}, nil
}

// Run consumes until ctx is cancelled
func (c *Consumer) Run(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			c.logger.Error("kafka consumer error", slog.Any("err", err))
		}
	}()

	c.logger.Info("kafka consumer started", slog.String("group", c.groupID), slog.String("topic", c.topic))
	handler := &groupHandler{handle: c.handle}
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.logger.Error("kafka consume failed", slog.Any("err", err))
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

// handle decodes value and calls the handler. Undecodable messages are
// acknowledged so they do not block the partition.
func (c *Consumer) handle(ctx context.Context, value []byte) bool {
	ev, err := DecodeRunEvent(value)
	if err != nil {
		c.logger.Warn("dropping malformed run event", slog.Any("err", err))
		return true
	}
	if err := c.handler(ctx, ev); err != nil {
		c.logger.Error("run event handler failed", slog.String("run_id", ev.RunID), slog.Any("err", err))
		return false
	}
	return true
}

// DecodeRunEvent parses a message value produced by KafkaPublisher
func DecodeRunEvent(value []byte) (types.RunEvent, error) {
	var ev types.RunEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return types.RunEvent{}, fmt.Errorf("decode run event: %w", err)
	}
	if ev.RunID == "" {
		return types.RunEvent{}, errors.New("run event without run_id")
	}
	return ev, nil
}

type groupHandler struct {
	handle func(ctx context.Context, value []byte) bool
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}
			if h.handle(session.Context(), message.Value) {
				session.MarkMessage(message, "")
			}
		case <-session.Context().Done():
			return nil
		}
	}
}
