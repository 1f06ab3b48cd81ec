// Package publisher pushes guidance events to NATS so development tools
// and companion services can observe a navigation session live.
package publisher

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/nats-io/nats.go"
)

// Metrics is the nil-safe hook the publisher reports through.
type Metrics interface {
	EventPublished()
	PublishFailed()
}

// GuidanceMessage is the JSON payload for one guidance event.
type GuidanceMessage struct {
	Kind            string    `json:"kind"`
	Direction       string    `json:"direction,omitempty"`
	Progress        float64   `json:"progress"`
	RemainingMeters float64   `json:"remainingMeters"`
	Timestamp       time.Time `json:"timestamp"`
}

// NATSPublisher publishes guidance messages on <prefix>.<kind> subjects.
type NATSPublisher struct {
	nc      *nats.Conn
	prefix  string
	logger  log.Logger
	metrics Metrics
}

// NewNATSPublisher connects to url. Connection state changes are logged;
// the client reconnects on its own.
func NewNATSPublisher(url, subjectPrefix string, logger log.Logger, m Metrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("trailnav"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			_ = logger.Log("nats", "disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			_ = logger.Log("nats", "reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			_ = logger.Log("nats", "closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{nc: nc, prefix: subjectPrefix, logger: logger, metrics: m}, nil
}

// Close drains in-flight messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
		p.nc.Close()
	}
}

// PublishEvent sends one guidance message.
func (p *NATSPublisher) PublishEvent(msg GuidanceMessage) error {
	subject := p.prefix + "." + subjectToken(msg.Kind)
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	err = p.nc.Publish(subject, b)
	if p.metrics != nil {
		if err != nil {
			p.metrics.PublishFailed()
		} else {
			p.metrics.EventPublished()
		}
	}
	return err
}

// subjectToken sanitizes a string for use as a NATS subject token.
func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
