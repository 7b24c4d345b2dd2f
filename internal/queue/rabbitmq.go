// Package queue connects the dashboard to the shop's message broker.
// Order intake arrives on a queue fed by the external checkout; status
// changes made in the dashboard are published back out for other services.
// The whole package is optional: when no broker URL is configured, nothing
// here is constructed and the rest of the system runs unchanged.
package queue

import (
	"encoding/json"
	"time"

	"snackshop-admin/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMQ struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	queue    string
	exchange string
}

// StatusEvent is emitted whenever an order changes status in the dashboard.
type StatusEvent struct {
	OrderID     uint               `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	From        models.OrderStatus `json:"from"`
	To          models.OrderStatus `json:"to"`
	Occurred    time.Time          `json:"occurred"`
}

func NewRabbitMQ(url, orderQueue, eventExchange string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{
		conn:     conn,
		channel:  ch,
		queue:    orderQueue,
		exchange: eventExchange,
	}, nil
}

// Setup declares the intake queue and the status event exchange. Safe to
// call on every start; declarations are idempotent.
func (r *RabbitMQ) Setup() error {
	if err := r.channel.ExchangeDeclare(
		r.exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	_, err := r.channel.QueueDeclare(
		r.queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	return err
}

// PublishStatusChanged sends a status event to the event exchange.
func (r *RabbitMQ) PublishStatusChanged(event StatusEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		Body:         body,
	}

	return r.channel.Publish(
		r.exchange,
		"order.status_changed",
		false, // mandatory
		false, // immediate
		msg,
	)
}

func (r *RabbitMQ) Close() {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}
}
