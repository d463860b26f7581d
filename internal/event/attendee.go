// Package event owns the single-event collections: the attendee roster, the
// program schedule, feedback, notifications, downloadable resources, app
// settings and resource analytics. Each collection has exactly one manager;
// callers go through the manager's operations and never touch the slices
// directly. Every mutation is followed by a whole-value JSON snapshot write.
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

const attendeesKey = "attendees"

// ErrAttendeeNotFound is returned for operations on an unknown attendee id.
var ErrAttendeeNotFound = errors.New("attendee not found")

// ErrEmptyName rejects registration with a blank display name.
var ErrEmptyName = errors.New("name required")

// Attendee is one registered participant.
type Attendee struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	RegisteredAt time.Time  `json:"registered_at"`
	AccessCode   string     `json:"access_code"`
	CheckedIn    bool       `json:"checked_in"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
}

// RegisterResult reports the outcome of a registration attempt. Created false
// means the name already had a record; Attendee then holds the existing one
// and no code was issued.
type RegisterResult struct {
	Created  bool
	Attendee Attendee
}

// AttendeeManager owns the roster. Names are unique under trimmed,
// case-insensitive comparison; CheckedInAt is set iff CheckedIn.
type AttendeeManager struct {
	mu    sync.Mutex
	list  []Attendee
	snaps store.Snapshots
	now   func() time.Time
}

// NewAttendeeManager loads the roster snapshot, falling back to an empty
// roster when it is absent or unreadable.
func NewAttendeeManager(ctx context.Context, snaps store.Snapshots) *AttendeeManager {
	m := &AttendeeManager{snaps: snaps, now: time.Now}
	loadSnapshot(ctx, snaps, attendeesKey, &m.list)
	// Records written by older snapshots may predate the check-in fields.
	for i := range m.list {
		if !m.list[i].CheckedIn {
			m.list[i].CheckedInAt = nil
		}
	}
	return m
}

// Register creates an attendee for name, or returns the existing record when
// the trimmed, case-folded name is already on the roster. A duplicate is an
// expected outcome, not an error. For a new attendee the returned record
// carries the freshly issued access code; this response is the only place the
// code is ever disclosed.
func (m *AttendeeManager) Register(ctx context.Context, name string) (RegisterResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return RegisterResult{}, ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	folded := strings.ToLower(name)
	for _, a := range m.list {
		if strings.ToLower(strings.TrimSpace(a.Name)) == folded {
			return RegisterResult{Created: false, Attendee: a}, nil
		}
	}

	attendee := Attendee{
		ID:           uuid.NewString(),
		Name:         name,
		RegisteredAt: m.now().UTC(),
		AccessCode:   m.newCodeLocked(),
	}
	m.list = append(m.list, attendee)
	m.persistLocked(ctx)
	return RegisterResult{Created: true, Attendee: attendee}, nil
}

// VerifyCode returns the attendee holding code. Exact match, no lockout, no
// expiry; callers upper-case the input first. When two attendees ever end up
// with the same code the first match wins.
func (m *AttendeeManager) VerifyCode(code string) (Attendee, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.list {
		if a.AccessCode == code {
			return a, true
		}
	}
	return Attendee{}, false
}

// CheckIn marks the attendee present. Checking in an already-present attendee
// is a no-op that preserves the original timestamp; changed reports whether
// this call actually flipped the state.
func (m *AttendeeManager) CheckIn(ctx context.Context, id string) (a Attendee, changed bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		return Attendee{}, false, ErrAttendeeNotFound
	}
	if !m.list[i].CheckedIn {
		when := m.now().UTC()
		m.list[i].CheckedIn = true
		m.list[i].CheckedInAt = &when
		m.persistLocked(ctx)
		changed = true
	}
	return m.list[i], changed, nil
}

// UndoCheckIn clears the check-in flag and timestamp. Idempotent.
func (m *AttendeeManager) UndoCheckIn(ctx context.Context, id string) (Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		return Attendee{}, ErrAttendeeNotFound
	}
	if m.list[i].CheckedIn {
		m.list[i].CheckedIn = false
		m.list[i].CheckedInAt = nil
		m.persistLocked(ctx)
	}
	return m.list[i], nil
}

// BulkCheckIn checks in every listed attendee that is not already present.
// Unknown ids and already-checked-in attendees are skipped without error. It
// returns the number of attendees actually checked in.
func (m *AttendeeManager) BulkCheckIn(ctx context.Context, ids []string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	checked := 0
	for _, id := range ids {
		i := m.indexLocked(id)
		if i < 0 || m.list[i].CheckedIn {
			continue
		}
		when := m.now().UTC()
		m.list[i].CheckedIn = true
		m.list[i].CheckedInAt = &when
		checked++
	}
	if checked > 0 {
		m.persistLocked(ctx)
	}
	return checked
}

// RegenerateCode replaces the attendee's access code and returns the new one.
// The old code stops verifying immediately.
func (m *AttendeeManager) RegenerateCode(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		return "", ErrAttendeeNotFound
	}
	m.list[i].AccessCode = m.newCodeLocked()
	m.persistLocked(ctx)
	return m.list[i].AccessCode, nil
}

// Remove deletes the attendee record. There is no soft delete.
func (m *AttendeeManager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		return ErrAttendeeNotFound
	}
	m.list = append(m.list[:i], m.list[i+1:]...)
	m.persistLocked(ctx)
	return nil
}

// Get returns the attendee with id.
func (m *AttendeeManager) Get(id string) (Attendee, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexLocked(id); i >= 0 {
		return m.list[i], true
	}
	return Attendee{}, false
}

// GetByName returns the attendee whose name matches under the roster's
// trimmed, case-insensitive comparison.
func (m *AttendeeManager) GetByName(name string) (Attendee, bool) {
	folded := strings.ToLower(strings.TrimSpace(name))
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.list {
		if strings.ToLower(strings.TrimSpace(a.Name)) == folded {
			return a, true
		}
	}
	return Attendee{}, false
}

// List returns a copy of the roster in registration order.
func (m *AttendeeManager) List() []Attendee {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Attendee, len(m.list))
	copy(out, m.list)
	return out
}

// Counts returns total and checked-in attendee counts.
func (m *AttendeeManager) Counts() (total, checkedIn int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.list {
		if a.CheckedIn {
			checkedIn++
		}
	}
	return len(m.list), checkedIn
}

func (m *AttendeeManager) indexLocked(id string) int {
	for i, a := range m.list {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// newCodeLocked issues an access code, retrying a few times when the draw
// collides with a code already on the roster. After the retries run out the
// collision is accepted and verification falls back to first-match-wins.
func (m *AttendeeManager) newCodeLocked() string {
	for attempt := 0; attempt < 5; attempt++ {
		code := GenerateAccessCode()
		if m.codeInUseLocked(code) {
			continue
		}
		return code
	}
	return GenerateAccessCode()
}

func (m *AttendeeManager) codeInUseLocked(code string) bool {
	for _, a := range m.list {
		if a.AccessCode == code {
			return true
		}
	}
	return false
}

func (m *AttendeeManager) persistLocked(ctx context.Context) {
	saveSnapshot(ctx, m.snaps, attendeesKey, m.list)
}
