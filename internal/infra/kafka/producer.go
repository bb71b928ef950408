package kafka

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/rumonkh0/quizbackend/internal/infra/config"
)

// Producer is a thin lifecycle wrapper around a Sarama async producer.
// Delivery failures are drained and logged; account events are best-effort,
// so nothing downstream blocks on them.
type Producer struct {
	inner       sarama.AsyncProducer
	log         *zap.Logger
	topicPrefix string
	failed      atomic.Int64
	drained     chan struct{}
}

func NewProducer(cfg config.KafkaSettings, log *zap.Logger) (*Producer, error) {
	sc := sarama.NewConfig()
	sc.Version = sarama.V3_5_0_0
	sc.Producer.RequiredAcks = sarama.WaitForLocal
	sc.Producer.Compression = sarama.CompressionSnappy
	sc.Producer.Flush.Frequency = 100 * time.Millisecond
	sc.Producer.Flush.Messages = 100
	sc.Producer.Retry.Max = 3
	sc.Producer.Return.Successes = false
	sc.Producer.Return.Errors = true
	sc.Metadata.Retry.Max = 3
	sc.Metadata.Retry.Backoff = 250 * time.Millisecond

	inner, err := sarama.NewAsyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	p := &Producer{
		inner:       inner,
		log:         log,
		topicPrefix: cfg.TopicPrefix,
		drained:     make(chan struct{}),
	}
	go p.drainErrors()

	log.Info("kafka producer ready",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic_prefix", cfg.TopicPrefix),
	)
	return p, nil
}

// drainErrors runs until the inner producer closes its error channel.
func (p *Producer) drainErrors() {
	defer close(p.drained)
	for err := range p.inner.Errors() {
		p.failed.Add(1)
		p.log.Error("kafka delivery failed",
			zap.String("topic", err.Msg.Topic),
			zap.Error(err.Err),
		)
	}
}

// Input exposes the send channel for event publishers.
func (p *Producer) Input() chan<- *sarama.ProducerMessage {
	return p.inner.Input()
}

// Close flushes pending messages and waits for the error drain to finish.
func (p *Producer) Close() error {
	err := p.inner.Close()
	<-p.drained

	if n := p.failed.Load(); n > 0 {
		p.log.Warn("kafka producer closed with delivery failures", zap.Int64("failed", n))
	} else {
		p.log.Info("kafka producer closed")
	}

	if err != nil {
		return fmt.Errorf("close kafka producer: %w", err)
	}
	return nil
}

// TopicName prepends the configured prefix unless the event type already
// carries it.
func (p *Producer) TopicName(eventType string) string {
	if p.topicPrefix == "" || strings.HasPrefix(eventType, p.topicPrefix+".") {
		return eventType
	}
	return p.topicPrefix + "." + eventType
}
