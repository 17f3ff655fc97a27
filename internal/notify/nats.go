package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Publisher is the subset of *nats.Conn used for fan-out.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type NATSPublisher struct {
	conn   Publisher
	prefix string
}

func NewNATSPublisher(conn Publisher, prefix string) *NATSPublisher {
	return &NATSPublisher{
		conn:   conn,
		prefix: prefix,
	}
}

// Subject maps an event name such as "game:created" to "<prefix>.game.created".
func (p *NATSPublisher) Subject(name string) string {
	return p.prefix + "." + strings.ReplaceAll(name, ":", ".")
}

func (p *NATSPublisher) Emit(_ context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		zap.L().Warn("notify: failed to encode event", zap.String("event", event.Name), zap.Error(err))
		return
	}

	if err = p.conn.Publish(p.Subject(event.Name), data); err != nil {
		zap.L().Warn("notify: nats publish failed", zap.String("event", event.Name), zap.Error(err))
	}
}

// ConnectNATS dials url, retrying while the server comes up.
func ConnectNATS(url string, attempts int, backoff time.Duration) (*nats.Conn, error) {
	var (
		conn *nats.Conn
		err  error
	)

	for i := 1; i <= attempts; i++ {
		conn, err = nats.Connect(url, nats.Name("stadium-api"))
		if err == nil {
			return conn, nil
		}

		zap.L().Warn("waiting for nats", zap.Int("attempt", i), zap.Error(err))
		time.Sleep(backoff)
	}

	return nil, fmt.Errorf("nats.Connect -> %w", err)
}
