package rabbitmq

import "order-board/internal/domain"

type SubscriberInterface interface {
	Events() <-chan domain.FeedEvent
	Close()
}

var _ SubscriberInterface = (*Subscriber)(nil)
