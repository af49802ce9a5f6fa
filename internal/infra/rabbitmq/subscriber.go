package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"order-board/internal/domain"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// Subscriber consumes row-change notifications for the orders relation and
// turns them into typed feed events. Each dashboard gets its own exclusive
// queue bound to the change exchange, so every connected board sees the full
// feed independently.
type Subscriber struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	events  chan domain.FeedEvent
	done    chan struct{}
	closed  sync.Once
}

func NewSubscriber(amqpURL, exchange string) (*Subscriber, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %v", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %v", err)
	}

	queueName := "order-board." + uuid.NewString()
	q, err := channel.QueueDeclare(
		queueName,
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %v", err)
	}

	if err := channel.QueueBind(q.Name, "orders.#", exchange, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %v", err)
	}

	deliveries, err := channel.Consume(
		q.Name,
		"",
		true, // auto-ack: the board tolerates loss, the store stays authoritative
		true, // exclusive
		false,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to start consumer: %v", err)
	}

	log.Printf("feed: consuming order changes on queue %s", q.Name)

	s := &Subscriber{
		conn:    conn,
		channel: channel,
		queue:   q.Name,
		events:  make(chan domain.FeedEvent),
		done:    make(chan struct{}),
	}
	go s.pump(deliveries)
	return s, nil
}

// pump decodes deliveries in arrival order. A payload that fails to decode
// is logged and skipped; it never stops the feed.
func (s *Subscriber) pump(deliveries <-chan amqp.Delivery) {
	defer close(s.events)
	for d := range deliveries {
		var evt domain.FeedEvent
		if err := json.Unmarshal(d.Body, &evt); err != nil {
			log.Printf("feed: dropping undecodable message: %v", err)
			continue
		}
		if evt.Table != "orders" {
			continue
		}
		select {
		case s.events <- evt:
		case <-s.done:
			return
		}
	}
}

// Events yields feed events in delivery order. The channel closes when the
// subscription ends.
func (s *Subscriber) Events() <-chan domain.FeedEvent {
	return s.events
}

func (s *Subscriber) Close() {
	s.closed.Do(func() {
		close(s.done)
		if s.channel != nil {
			s.channel.Close()
		}
		if s.conn != nil {
			s.conn.Close()
		}
	})
}
