package mq_client

import (
	"sync"

	"github.com/streadway/amqp"

	"github.com/zsmartex/tradedesk/config"
)

// Publisher sends private events to a topic exchange with routing keys of
// the form kind.id.event.
type Publisher struct {
	mu         sync.Mutex
	connection *amqp.Connection
	channel    *amqp.Channel
	exchange   string
}

func Connect(cfg config.AMQPConfig) (*Publisher, error) {
	connection, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}

	channel, err := connection.Channel()
	if err != nil {
		connection.Close()
		return nil, err
	}

	if err := channel.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		connection.Close()
		return nil, err
	}

	return &Publisher{
		connection: connection,
		channel:    channel,
		exchange:   cfg.Exchange,
	}, nil
}

func RoutingKey(kind string, id string, event string) string {
	return kind + "." + id + "." + event
}

func (p *Publisher) EnqueueEvent(kind string, id string, event string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.channel.Publish(
		p.exchange,
		RoutingKey(kind, id, event),
		false,
		false,
		amqp.Publishing{
			Headers:      amqp.Table{},
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	)
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.Close(); err != nil {
		p.connection.Close()
		return err
	}

	return p.connection.Close()
}
