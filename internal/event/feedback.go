package event

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventpass/internal/store"
)

const feedbackKey = "feedback"

// ErrInvalidRating rejects ratings outside the 1-5 star scale.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Feedback is one submitted rating, optionally with a comment.
type Feedback struct {
	ID          string    `json:"id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// FeedbackManager owns the append-only feedback collection.
type FeedbackManager struct {
	mu    sync.Mutex
	list  []Feedback
	snaps store.Snapshots
	now   func() time.Time
}

// NewFeedbackManager loads stored feedback, starting empty when absent.
func NewFeedbackManager(ctx context.Context, snaps store.Snapshots) *FeedbackManager {
	m := &FeedbackManager{snaps: snaps, now: time.Now}
	loadSnapshot(ctx, snaps, feedbackKey, &m.list)
	return m
}

// Add appends a feedback entry.
func (m *FeedbackManager) Add(ctx context.Context, rating int, comment string) (Feedback, error) {
	if rating < 1 || rating > 5 {
		return Feedback{}, ErrInvalidRating
	}
	entry := Feedback{
		ID:          uuid.NewString(),
		Rating:      rating,
		Comment:     strings.TrimSpace(comment),
		SubmittedAt: m.now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = append(m.list, entry)
	saveSnapshot(ctx, m.snaps, feedbackKey, m.list)
	return entry, nil
}

// List returns a copy in submission order.
func (m *FeedbackManager) List() []Feedback {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Feedback, len(m.list))
	copy(out, m.list)
	return out
}

// Average returns the mean rating, zero when no feedback exists.
func (m *FeedbackManager) Average() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.list) == 0 {
		return 0
	}
	sum := 0
	for _, f := range m.list {
		sum += f.Rating
	}
	return float64(sum) / float64(len(m.list))
}

// Count returns the number of submissions.
func (m *FeedbackManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.list)
}
