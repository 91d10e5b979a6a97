package model

// Event is what the messaging gateway can publish, the id becomes the
// partition key.
type Event interface {
	GetId() string
}
