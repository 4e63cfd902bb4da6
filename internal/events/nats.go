package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
	"git.home.luguber.info/inful/factpress/internal/logfields"
	"git.home.luguber.info/inful/factpress/internal/version"
)

const (
	DefaultSubject = "factpress.posts"
	connectTimeout = 5 * time.Second
	flushTimeout   = 5 * time.Second
)

// NATSPublisher publishes events as JSON on a core NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to url.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	conn, err := nats.Connect(url,
		nats.Name(version.UserAgent()),
		nats.Timeout(connectTimeout),
		nats.MaxReconnects(0),
	)
	if err != nil {
		return nil, errors.EventsError("failed to connect to NATS").WithCause(err).
			WithContext("url", url).Build()
	}

	slog.Debug("NATS publisher connected", logfields.URL(url), slog.String("subject", subject))
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// Publish sends ev and waits for the server to acknowledge the flush.
func (p *NATSPublisher) Publish(ctx context.Context, ev PostPublished) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.EventsError("failed to marshal event").WithCause(err).Build()
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return errors.EventsError("failed to publish event").WithCause(err).
			WithContext("subject", p.subject).WithContext("slug", ev.Slug).Build()
	}

	flushCtx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()
	if err := p.conn.FlushWithContext(flushCtx); err != nil {
		return errors.EventsError("failed to flush events").WithCause(err).
			WithContext("subject", p.subject).Build()
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
	return nil
}

// Connect returns a NATSPublisher when url is set and a NoopPublisher otherwise.
func Connect(url, subject string) (Publisher, error) {
	if url == "" {
		return NoopPublisher{}, nil
	}
	return NewNATSPublisher(url, subject)
}
