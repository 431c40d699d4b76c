package bookingevents

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const defaultWriteTimeout = 5 * time.Second

// MessageWriter is the part of kafka.Writer the publisher uses
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger is the logging surface the publisher needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config holds the broker settings
type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Publisher writes booking lifecycle events to Kafka, keyed by employee id.
// Without brokers it drops every event.
type Publisher struct {
	writer  MessageWriter
	timeout time.Duration
	log     Logger
}

// NewPublisher creates a publisher backed by a kafka.Writer
func NewPublisher(cfg Config, log Logger) *Publisher {
	if len(cfg.Brokers) == 0 {
		log.Warn("booking events publisher disabled (no kafka brokers configured)")
		return &Publisher{log: log}
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	log.Info("booking events publisher enabled: brokers=%v topic=%s", cfg.Brokers, cfg.Topic)
	return NewPublisherWithWriter(writer, cfg.WriteTimeout, log)
}

// NewPublisherWithWriter creates a publisher over an existing writer
func NewPublisherWithWriter(writer MessageWriter, timeout time.Duration, log Logger) *Publisher {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &Publisher{writer: writer, timeout: timeout, log: log}
}

// Enabled reports whether events reach a broker
func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

// Publish writes one event
func (p *Publisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	if !p.Enabled() {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EmployeeID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(uuid.NewString())},
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "booking_id", Value: []byte(strconv.FormatInt(event.BookingID, 10))},
		},
		Time: event.OccurredAt,
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s booking_id=%d: %v", ErrWrite, event.Type, event.BookingID, err)
	}

	p.log.Info("Published %s for booking_id=%d", event.Type, event.BookingID)
	return nil
}

// Close flushes and closes the underlying writer
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
