package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"echo-journal/events"
	"echo-journal/logger"
)

// KafkaPublisher publishes lifecycle events through confluent-kafka-go.
type KafkaPublisher struct {
	producer *kafka.Producer
}

func NewKafkaPublisher(brokers string) (*KafkaPublisher, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
		"retries":           5,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	// Drain delivery reports so failed deliveries surface in the logs.
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					logger.Log.Errorf("event delivery failed %v: %v", ev.TopicPartition, ev.TopicPartition.Error)
				}
			case kafka.Error:
				logger.Log.Errorf("kafka error: %v", ev)
			}
		}
	}()

	return &KafkaPublisher{producer: p}, nil
}

// Publish sends one event to the topic and waits for its delivery report.
func (k *KafkaPublisher) Publish(ctx context.Context, topic string, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Never closed: if the context expires first, librdkafka may still
	// send the delivery report later. The buffered channel just gets
	// collected once both sides drop it.
	deliveryChan := make(chan kafka.Event, 1)

	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          data,
		Key:            []byte(event.ID),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	select {
	case ev := <-deliveryChan:
		m := ev.(*kafka.Message)
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("event delivery failed: %w", m.TopicPartition.Error)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}

// Close flushes outstanding messages before shutting the producer down.
func (k *KafkaPublisher) Close() {
	if k.producer != nil {
		if remaining := k.producer.Flush(5000); remaining > 0 {
			logger.Log.Warnf("%d events still unflushed at shutdown", remaining)
		}
		k.producer.Close()
	}
}
