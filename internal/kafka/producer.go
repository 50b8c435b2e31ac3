package kafka

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

type Producer interface {
	SendMessage(ctx context.Context, topic string, key []byte, value []byte) error
	Close() error
}

// WriterProducer sends audit events to the Kafka cluster.
type WriterProducer struct {
	writer *kafka.Writer
}

func NewWriterProducer(brokers []string) Producer {
	return &WriterProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 100 * time.Millisecond,
		},
	}
}

func (p *WriterProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}
	return nil
}

func (p *WriterProducer) Close() error {
	return p.writer.Close()
}

// ConsoleProducer is the local development stand-in when no broker is
// reachable.
type ConsoleProducer struct{}

func NewConsoleProducer() Producer {
	log.Println("Initialized console audit producer")
	return &ConsoleProducer{}
}

func (p *ConsoleProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	select {
	case <-time.After(50 * time.Millisecond):
		fmt.Printf("\n--- AUDIT_PRODUCER (CONSOLE) ---\n")
		fmt.Printf("Topic: %s\n", topic)
		fmt.Printf("Key: %s\n", string(key))
		fmt.Printf("Value: %s\n", string(value))
		fmt.Printf("--- END AUDIT ---\n")
		return nil
	case <-ctx.Done():
		log.Printf("AUDIT_PRODUCER (CANCELLED): Topic=[%s], Key=[%s]", topic, string(key))
		return ctx.Err()
	}
}

func (p *ConsoleProducer) Close() error {
	log.Println("Closing console audit producer")
	return nil
}
