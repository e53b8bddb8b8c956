package notification

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/arjunvnair/campus-event-backend/config"
)

// Producer publishes registration lifecycle messages to Kafka.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(cfg *config.Config) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.LeastBytes{},
			WriteTimeout: 10 * time.Second,
			// The topic is created by ops; auto-creation keeps local
			// development working without a kafka setup step.
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish sends the message asynchronously. Delivery failures are
// logged, never surfaced to the request path.
func (p *Producer) Publish(msg Message) {
	go func() {
		payload, err := json.Marshal(msg)
		if err != nil {
			log.Printf("⚠️ Failed to marshal notification: %v", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err = p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(msg.Type),
			Value: payload,
		})
		if err != nil {
			log.Printf("⚠️ Failed to publish notification (%s): %v", msg.Type, err)
		}
	}()
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// messageReader is the slice of kafka.Reader the consume loop needs.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// StartConsumer runs a background goroutine that drains the topic and
// hands each message to the service. Call once at startup; cancelling
// ctx stops the loop and closes the reader.
func StartConsumer(ctx context.Context, cfg *config.Config, svc Service) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: strings.Split(cfg.KafkaBrokers, ","),
		GroupID: "campus-event-notifications",
		Topic:   cfg.KafkaTopic,
	})

	log.Printf("✅ Kafka consumer started on topic %s", cfg.KafkaTopic)
	go consumeLoop(ctx, reader, svc)
}

func consumeLoop(ctx context.Context, reader messageReader, svc Service) {
	defer reader.Close()

	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Kafka consumer stopped")
				return
			}
			log.Printf("⚠️ Kafka read error: %v", err)
			select {
			case <-ctx.Done():
				log.Println("Kafka consumer stopped")
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		var msg Message
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			log.Printf("⚠️ Dropping malformed notification: %v", err)
			continue
		}

		if err := svc.Handle(ctx, msg); err != nil {
			log.Printf("⚠️ Failed to handle notification (%s): %v", msg.Type, err)
		}
	}
}
