// Package events publishes and consumes the curation workflow's Kafka
// traffic: selection changes and sync results go out, raw scanner articles
// come in.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

// SelectionEvent is published whenever an article's selection state changes.
type SelectionEvent struct {
	Action         string    `json:"action"` // "selected" or "deselected"
	ArticleID      string    `json:"article_id"`
	NewsletterDate string    `json:"newsletter_date"`
	Actor          string    `json:"actor,omitempty"`
	At             time.Time `json:"at"`
}

// SyncEvent is published at the end of every sync run.
type SyncEvent struct {
	Fetched    int       `json:"fetched"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	FeedErrors int       `json:"feed_errors"`
	FinishedAt time.Time `json:"finished_at"`
}

// Producer publishes curation events. A nil Producer is valid and drops all
// events, so callers need no broker to run.
type Producer struct {
	producer       sarama.SyncProducer
	selectionTopic string
	syncTopic      string
}

// NewProducer connects a synchronous producer to the given brokers.
func NewProducer(brokers []string, selectionTopic, syncTopic string) (*Producer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &Producer{
		producer:       producer,
		selectionTopic: selectionTopic,
		syncTopic:      syncTopic,
	}, nil
}

// PublishSelection emits a selection change keyed by article ID.
func (p *Producer) PublishSelection(event SelectionEvent) error {
	if p == nil {
		return nil
	}
	return p.send(p.selectionTopic, event.ArticleID, event)
}

// PublishSync emits a sync run summary.
func (p *Producer) PublishSync(event SyncEvent) error {
	if p == nil {
		return nil
	}
	return p.send(p.syncTopic, event.FinishedAt.Format(time.RFC3339), event)
}

func (p *Producer) send(topic, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Close shuts down the producer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
