package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "shiftwise/pkg/platform/audit"
)

// KafkaSink delivers audit events to a Kafka topic for the downstream
// reporting and retention pipeline. Records are keyed by user ID so one
// user's trail stays ordered within a partition.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects to the given brokers. The caller owns the sink and
// must Close it to flush buffered records.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProduceRequestTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	return &KafkaSink{client: client, topic: topic}, nil
}

type kafkaEvent struct {
	Category    string    `json:"category"`
	Timestamp   time.Time `json:"timestamp"`
	TenantID    string    `json:"tenant_id,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	Action      string    `json:"action"`
	Subject     string    `json:"subject,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	ClientIP    string    `json:"client_ip,omitempty"`
	ClientAgent string    `json:"client_agent,omitempty"`
}

func (s *KafkaSink) Deliver(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(kafkaEvent{
		Category:    string(event.Category),
		Timestamp:   event.Timestamp,
		TenantID:    event.TenantID.String(),
		UserID:      event.UserID.String(),
		Action:      event.Action,
		Subject:     event.Subject,
		Detail:      event.Detail,
		RequestID:   event.RequestID,
		ClientIP:    event.ClientIP,
		ClientAgent: event.ClientAgent,
	})
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.UserID.String()),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	s.client.Close()
	return nil
}
