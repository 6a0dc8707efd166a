package event

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// Signal names published by the engine. Collaborators (toast layer,
// collection-list screens) subscribe by routing key on the topic exchange.
const (
	DayRollover          = "engine.day.rollover"
	CollectionRegistered = "engine.collection.registered"
	CollectionCompleted  = "engine.collection.completed"
	CollectionStopped    = "engine.collection.stopped"
	FlowError            = "engine.flow.error"
)

// Publisher is the notification boundary. The engine classifies and forwards;
// rendering a toast or refreshing a screen is the subscriber's problem.
type Publisher interface {
	Publish(signal string, payload any) error
}

// AMQPPublisher publishes signals to a RabbitMQ topic exchange, using the
// signal name as routing key.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

var _ Publisher = (*AMQPPublisher)(nil)

func NewAMQPPublisher(amqpURL, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(signal string, payload any) error {
	envelope := map[string]any{
		"id":         uuid.NewString(),
		"type":       signal,
		"payload":    payload,
		"emitted_at": time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	log.Printf("[SIGNAL] %s: %v", signal, payload)

	return p.channel.Publish(
		p.exchange,
		signal, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *AMQPPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
