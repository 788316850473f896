package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
	"github.com/andreyxaxa/Scan-Checkin/pkg/kafka/producer"
	"github.com/segmentio/kafka-go"
)

// OutcomeProducer publishes every check-in outcome, keyed by ticket id so
// all outcomes for one ticket land on the same partition.
type OutcomeProducer struct {
	*producer.Producer
	topic string
}

func NewOutcomeProducer(producer *producer.Producer, topic string) *OutcomeProducer {
	return &OutcomeProducer{
		producer,
		topic,
	}
}

func (op *OutcomeProducer) Publish(ctx context.Context, outcome entity.Outcome) error {
	msg, err := outcomeMessage(op.topic, outcome)
	if err != nil {
		return fmt.Errorf("OutcomeProducer - Publish - outcomeMessage: %w", err)
	}

	err = op.Writer.WriteMessages(ctx, msg)
	if err != nil {
		return fmt.Errorf("OutcomeProducer - Publish - op.Writer.WriteMessages: %w", err)
	}

	return nil
}

func (op *OutcomeProducer) Close() error {
	err := op.Producer.Close()
	if err != nil {
		return fmt.Errorf("OutcomeProducer - Close: %w", err)
	}

	return nil
}

func outcomeMessage(topic string, outcome entity.Outcome) (kafka.Message, error) {
	payload, err := json.Marshal(outcome)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("json.Marshal: %w", err)
	}

	return kafka.Message{
		Topic: topic,
		Key:   []byte(outcome.TicketID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(outcome.EventID.String())},
			{Key: "status", Value: []byte(outcome.Status)},
		},
	}, nil
}
