package messaging

import (
	"transfer-service/src/internal/model"
	"transfer-service/src/pkg/kafka"
	"transfer-service/src/pkg/log"
)

// NotificationProducer feeds the notification collaborator, actual email or
// push delivery happens downstream with its own retry policy.
type NotificationProducer struct {
	CustomerConfirmationProducer Producer[*model.NotificationEvent]
	SupplierNotificationProducer Producer[*model.NotificationEvent]
}

func NewNotificationProducer(producer kafka.Producer, log log.Log) *NotificationProducer {
	return &NotificationProducer{
		CustomerConfirmationProducer: Producer[*model.NotificationEvent]{
			Producer: producer,
			Topic:    "customer-confirmation",
			Log:      log,
		},
		SupplierNotificationProducer: Producer[*model.NotificationEvent]{
			Producer: producer,
			Topic:    "supplier-notification",
			Log:      log,
		},
	}
}

func (n *NotificationProducer) SendCustomerConfirmation(event *model.NotificationEvent) error {
	return n.CustomerConfirmationProducer.Send(event)
}

func (n *NotificationProducer) SendSupplierNotification(event *model.NotificationEvent) error {
	return n.SupplierNotificationProducer.Send(event)
}
