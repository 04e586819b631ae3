package kafka

import (
	"context"
	"encoding/json"
	"log"

	"github.com/IBM/sarama"
)

// MessageHandler processes one consumed message. Returning an error leaves
// the message unmarked so it can be retried; shouldMark=false does the same
// without logging an error.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message []byte) (shouldMark bool, err error)
}

// Consumer wraps a sarama consumer group with a pluggable handler.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler MessageHandler
	topic   string
	groupID string
	ready   chan bool
}

// ConsumerConfig holds Kafka consumer configuration.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler MessageHandler
}

// NewConsumer creates a consumer-group client.
func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		handler: cfg.Handler,
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
		ready:   make(chan bool),
	}, nil
}

// Start begins consuming; it returns once the first session is established
// and keeps consuming in the background until ctx is canceled.
func (c *Consumer) Start(ctx context.Context) error {
	h := &groupHandler{consumer: c, ready: c.ready}

	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
				if err == context.Canceled {
					return
				}
				log.Printf("kafka consume error: %v", err)
			}
			if ctx.Err() != nil {
				return
			}
			h.ready = make(chan bool)
		}
	}()

	<-c.ready
	log.Printf("kafka consumer started (group: %s, topic: %s)", c.groupID, c.topic)

	go func() {
		for err := range c.group.Errors() {
			log.Printf("kafka consumer error: %v", err)
		}
	}()

	return nil
}

// Close shuts the consumer group down.
func (c *Consumer) Close() error {
	log.Println("closing kafka consumer")
	return c.group.Close()
}

type groupHandler struct {
	consumer *Consumer
	ready    chan bool
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			shouldMark, err := h.consumer.handler.HandleMessage(session.Context(), message.Value)
			if err != nil {
				log.Printf("message handling failed (offset %d): %v", message.Offset, err)
			}
			if shouldMark {
				session.MarkMessage(message, "")
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// TypedHandler decodes JSON messages into T before validation/processing.
// Undecodable and invalid messages are marked (retrying cannot fix them);
// processing failures are left unmarked when AlwaysMark is false.
type TypedHandler[T any] struct {
	Validate   func(msg *T) bool
	Process    func(ctx context.Context, msg *T) error
	AlwaysMark bool
}

func (h *TypedHandler[T]) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("dropping undecodable message: %v", err)
		return true, nil
	}
	if h.Validate != nil && !h.Validate(&msg) {
		return true, nil
	}
	if err := h.Process(ctx, &msg); err != nil {
		return h.AlwaysMark, err
	}
	return true, nil
}
