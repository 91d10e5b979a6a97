package messaging

import (
	"transfer-service/src/internal/model"
	"transfer-service/src/pkg/kafka"
	"transfer-service/src/pkg/log"
)

// BookingProducer publishes the webhook-facing booking facts. Delivery to
// external subscribers is owned by the webhook collaborator consuming these
// topics.
type BookingProducer struct {
	BookingCreatedProducer  Producer[*model.BookingEvent]
	BookingModifiedProducer Producer[*model.BookingEvent]
}

func NewBookingProducer(producer kafka.Producer, log log.Log) *BookingProducer {
	return &BookingProducer{
		BookingCreatedProducer: Producer[*model.BookingEvent]{
			Producer: producer,
			Topic:    "booking-created",
			Log:      log,
		},
		BookingModifiedProducer: Producer[*model.BookingEvent]{
			Producer: producer,
			Topic:    "booking-modified",
			Log:      log,
		},
	}
}

func (b *BookingProducer) SendBookingCreated(event *model.BookingEvent) error {
	return b.BookingCreatedProducer.Send(event)
}

func (b *BookingProducer) SendBookingModified(event *model.BookingEvent) error {
	return b.BookingModifiedProducer.Send(event)
}
