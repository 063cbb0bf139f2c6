// Package relay пересылает сообщения комнат в NATS, чтобы другие экземпляры
// сервиса и внешние потребители могли на них подписаться.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/shenikar/emergency_dispatch_system/internal/notifier"
)

const DefaultSubjectPrefix = "dispatch.rooms"

// ErrNotConnected - соединение с NATS закрыто
var ErrNotConnected = errors.New("relay: nats not connected")

// Conn - часть *nats.Conn, нужная приемнику
type Conn interface {
	Publish(subject string, data []byte) error
	IsClosed() bool
	Drain() error
}

// NATSSink публикует каждое сообщение в subject <prefix>.<room>
type NATSSink struct {
	conn   Conn
	prefix string
}

func NewNATSSink(conn Conn, prefix string) *NATSSink {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSSink{conn: conn, prefix: strings.TrimSuffix(prefix, ".")}
}

var _ Conn = (*nats.Conn)(nil)

func (s *NATSSink) Name() string { return "nats" }

// Subject - имя subject для комнаты. Точки и пробелы в имени комнаты
// заменяются, чтобы не порождать лишние уровни иерархии.
func (s *NATSSink) Subject(room string) string {
	r := strings.NewReplacer(".", "_", " ", "_", "*", "_", ">", "_").Replace(room)
	return s.prefix + "." + r
}

// Deliver публикует сообщение. Publish в nats.go буферизуется клиентом и не ждет сервер.
func (s *NATSSink) Deliver(_ context.Context, env notifier.Envelope) error {
	if s.conn == nil || s.conn.IsClosed() {
		return ErrNotConnected
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("relay: marshal envelope: %w", err)
	}
	if err := s.conn.Publish(s.Subject(env.Room), data); err != nil {
		return fmt.Errorf("relay: publish to %s: %w", s.Subject(env.Room), err)
	}
	return nil
}

// Close дожидается отправки буфера и закрывает соединение
func (s *NATSSink) Close() error {
	if s.conn == nil || s.conn.IsClosed() {
		return nil
	}
	return s.conn.Drain()
}
