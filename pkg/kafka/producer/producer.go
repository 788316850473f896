package producer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	_defaultConnAttempts = 10
	_defaultConnTimeout  = time.Second
	_defaultBatchTimeout = 10 * time.Millisecond
	_defaultWriteTimeout = 5 * time.Second
)

type Producer struct {
	connAttempts    int
	connTimeout     time.Duration
	batchTimeout    time.Duration
	writeTimeout    time.Duration
	autoCreateTopic bool

	brokers []string
	Writer  *kafka.Writer
}

func New(ctx context.Context, brokers []string, opts ...Option) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("Kafka Producer - New: no brokers")
	}

	p := &Producer{
		connAttempts:    _defaultConnAttempts,
		connTimeout:     _defaultConnTimeout,
		batchTimeout:    _defaultBatchTimeout,
		writeTimeout:    _defaultWriteTimeout,
		autoCreateTopic: true,
		brokers:         brokers,
	}

	for _, opt := range opts {
		opt(p)
	}

	// outcomes are rare and small; do not hold them for the default 1s batch
	p.Writer = &kafka.Writer{
		Addr:                   kafka.TCP(p.brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           p.batchTimeout,
		WriteTimeout:           p.writeTimeout,
		AllowAutoTopicCreation: p.autoCreateTopic,
	}

	var err error
	for p.connAttempts > 0 {
		err = p.ping(ctx)
		if err == nil {
			break
		}

		log.Printf("Kafka producer is trying to connect, attempts left: %d", p.connAttempts)

		time.Sleep(p.connTimeout)

		p.connAttempts--
	}

	if err != nil {
		return nil, fmt.Errorf("Kafka Producer - New - connAttempts == 0: %w", err)
	}

	return p, nil
}

// ping succeeds as soon as any broker answers.
func (p *Producer) ping(ctx context.Context) error {
	var errList []error

	for _, broker := range p.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			errList = append(errList, fmt.Errorf("Kafka Producer - kafka.DialContext %s: %w", broker, err))
			continue
		}

		_, err = conn.Brokers()
		conn.Close()
		if err != nil {
			errList = append(errList, fmt.Errorf("Kafka Producer - conn.Brokers %s: %w", broker, err))
			continue
		}

		return nil
	}

	return errors.Join(errList...)
}

func (p *Producer) Close() error {
	if p.Writer != nil {
		return p.Writer.Close()
	}

	return nil
}
