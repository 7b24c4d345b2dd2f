package queue

import (
	"encoding/json"
	"log"

	"snackshop-admin/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// IngestFunc persists one normalized checkout order.
type IngestFunc func(raw models.RawOrder) error

// StartOrderConsumer consumes raw checkout orders from the intake queue and
// hands each to ingest. Malformed payloads are rejected without requeue;
// ingest failures requeue once so a transient database error is retried.
func (r *RabbitMQ) StartOrderConsumer(ingest IngestFunc) error {
	msgs, err := r.channel.Consume(
		r.queue,
		"snackshop-admin", // consumer tag
		false,             // auto-ack
		false,             // exclusive
		false,             // no-local
		false,             // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			processOrderMessage(msg, ingest)
		}
	}()
	return nil
}

func processOrderMessage(msg amqp.Delivery, ingest IngestFunc) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Recovered from panic in order intake: %v", rec)
		}
	}()

	var raw models.RawOrder
	if err := json.Unmarshal(msg.Body, &raw); err != nil {
		log.Printf("Invalid order payload: %v", err)
		msg.Nack(false, false)
		return
	}

	if err := ingest(raw); err != nil {
		log.Printf("Failed to ingest order %s: %v", raw.OrderNumber, err)
		msg.Nack(false, !msg.Redelivered)
		return
	}

	msg.Ack(false)
}
