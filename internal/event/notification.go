package event

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventpass/internal/queue"
	"eventpass/internal/store"
)

const notificationsKey = "notifications"

// ErrEmptyNotification rejects notifications without a title or message.
var ErrEmptyNotification = errors.New("notification title and message required")

// Notification is one announcement pushed by an admin.
type Notification struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// NotificationManager owns the append-only announcement log. Besides the
// snapshot write, every send is published to the delivery queue so the worker
// can fan it out to connected clients; a nil queue disables delivery.
type NotificationManager struct {
	mu    sync.Mutex
	list  []Notification
	snaps store.Snapshots
	q     queue.Queue
	now   func() time.Time
}

// NewNotificationManager loads stored notifications, starting empty when
// absent.
func NewNotificationManager(ctx context.Context, snaps store.Snapshots, q queue.Queue) *NotificationManager {
	m := &NotificationManager{snaps: snaps, q: q, now: time.Now}
	loadSnapshot(ctx, snaps, notificationsKey, &m.list)
	return m
}

// Send appends an announcement and hands it to the delivery queue.
func (m *NotificationManager) Send(ctx context.Context, title, message string) (Notification, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" {
		return Notification{}, ErrEmptyNotification
	}
	n := Notification{
		ID:      uuid.NewString(),
		Title:   title,
		Message: message,
		SentAt:  m.now().UTC(),
	}

	m.mu.Lock()
	m.list = append(m.list, n)
	saveSnapshot(ctx, m.snaps, notificationsKey, m.list)
	m.mu.Unlock()

	if m.q != nil {
		body, _ := json.Marshal(n)
		if err := m.q.Publish(ctx, queue.Message{Type: queue.TypeNotification, Body: body}); err != nil {
			log.Printf("notification %s queue publish failed: %v", n.ID, err)
		}
	}
	return n, nil
}

// List returns announcements most-recent-first, the order toasts consume
// them in.
func (m *NotificationManager) List() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.list))
	for i, n := range m.list {
		out[len(m.list)-1-i] = n
	}
	return out
}

// Latest returns the most recently sent announcement.
func (m *NotificationManager) Latest() (Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.list) == 0 {
		return Notification{}, false
	}
	return m.list[len(m.list)-1], true
}
