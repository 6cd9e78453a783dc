// Package events publishes ledger mutation events to Kafka so downstream
// consumers (audit, sync jobs) can react without polling the sheet.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"

	"github.com/allyounowbud/onetrack/configs"
)

// MutationEvent is the payload published for every successful mutation.
type MutationEvent struct {
	Table  string `json:"table"`
	Action string `json:"action"`
	Rows   int    `json:"rows"`
	Time   string `json:"time"`
}

// Producer publishes mutation events. It implements service.Notifier.
type Producer struct {
	producer *kafka.Producer
	topic    string
	log      *logrus.Logger
}

// NewProducer creates a Kafka producer from config and starts its delivery
// report loop.
func NewProducer(cfg configs.KafkaConfig, log *logrus.Logger) (*Producer, error) {
	config := kafka.ConfigMap{
		"bootstrap.servers": cfg.Broker,
	}

	producer, err := kafka.NewProducer(&config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	p := &Producer{producer: producer, topic: cfg.Topic, log: log}
	p.startDeliveryReport()
	log.Info("Kafka Producer initialized successfully")
	return p, nil
}

// startDeliveryReport drains the producer's event channel and logs failures.
func (p *Producer) startDeliveryReport() {
	go func() {
		for e := range p.producer.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					p.log.Errorf("Message delivery failed: %v", ev.TopicPartition.Error)
				}
			}
		}
	}()
}

// LedgerMutated publishes one mutation event. Delivery is asynchronous;
// failures surface in the delivery report loop, never to the caller.
func (p *Producer) LedgerMutated(table, action string, rows int) {
	event := MutationEvent{
		Table:  table,
		Action: action,
		Rows:   rows,
		Time:   time.Now().UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Errorf("Failed to marshal mutation event: %v", err)
		return
	}

	err = p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(table),
		Value:          payload,
	}, nil)
	if err != nil {
		p.log.Errorf("Failed to produce mutation event: %v", err)
	}
}

// Close flushes pending messages and shuts the producer down.
func (p *Producer) Close() {
	p.producer.Flush(int((5 * time.Second).Milliseconds()))
	p.producer.Close()
	p.log.Info("Kafka Producer closed")
}
