package consumer

import (
	"github.com/garaevmir/NanoServices/internal/domain"
)

// MessageParser defines the interface for turning a bus message into an event
type MessageParser interface {
	Parse(topic string, body []byte) (*domain.Event, error)
}
