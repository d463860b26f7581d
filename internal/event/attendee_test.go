package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventpass/internal/store"
)

func newTestRoster(t *testing.T) (*AttendeeManager, *store.Memory) {
	t.Helper()
	snaps := store.NewMemory()
	return NewAttendeeManager(context.Background(), snaps), snaps
}

func TestRegister_NewAttendee(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestRoster(t)

	res, err := m.Register(ctx, "Alice")
	require.NoError(t, err)
	require.True(t, res.Created)

	a := res.Attendee
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Alice", a.Name)
	assert.Len(t, a.AccessCode, 6)
	assert.False(t, a.CheckedIn)
	assert.Nil(t, a.CheckedInAt)
	assert.False(t, a.RegisteredAt.IsZero())
}

func TestRegister_DuplicateReturnsExistingRecord(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestRoster(t)

	first, err := m.Register(ctx, "Alice")
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := m.Register(ctx, "Alice")
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Attendee, second.Attendee)
	assert.Len(t, m.List(), 1)
}

func TestRegister_DuplicateDetectionIgnoresCaseAndWhitespace(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestRoster(t)

	first, err := m.Register(ctx, "Bob")
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := m.Register(ctx, "  bob  ")
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Attendee.ID, second.Attendee.ID)
	assert.Len(t, m.List(), 1)
}

func TestRegister_EmptyName(t *testing.T) {
	m, _ := newTestRoster(t)
	_, err := m.Register(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestVerifyCode_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestRoster(t)

	res, err := m.Register(ctx, "Alice")
	require.NoError(t, err)

	found, ok := m.VerifyCode(res.Attendee.AccessCode)
	require.True(t, ok)
	assert.Equal(t, "Alice", found.Name)

	_, ok = m.VerifyCode("NOPE99")
	assert.False(t, ok)
}

func TestCheckIn_SecondCallKeepsTimestamp(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestRoster(t)

	res, err := m.Register(ctx, "Alice")
	require.NoError(t, err)
	id := res.Attendee.ID

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }

	first, changed, err := m.CheckIn(ctx, id)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, first.CheckedInAt)
	assert.True(t, first.CheckedInAt.Equal(base))

	m.now = func() time.Time { return base.Add(time.Hour) }
	second, changed, err := m.CheckIn(ctx, id)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, second.CheckedIn)
	require.NotNil(t, second.CheckedInAt)
	assert.True(t, second.CheckedInAt.Equal(base), "timestamp must not be overwritten")
}

func TestUndoCheckIn_ClearsTimestamp(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestRoster(t)

	res, err := m.Register(ctx, "Alice")
	require.NoError(t, err)
	id := res.Attendee.ID

	_, _, err = m.CheckIn(ctx, id)
	require.NoError(t, err)

	undone, err := m.UndoCheckIn(ctx, id)
	require.NoError(t, err)
	assert.False(t, undone.CheckedIn)
	assert.Nil(t, undone.CheckedInAt)

	// Undo is idempotent.
	undone, err = m.UndoCheckIn(ctx, id)
	require.NoError(t, err)
	assert.False(t, undone.CheckedIn)
}

func TestCheckIn_UnknownID(t *testing.T) {
	m, _ := newTestRoster(t)
	_, _, err := m.CheckIn(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAttendeeNotFound)
}

func TestBulkCheckIn_SkipsAlreadyCheckedIn(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestRoster(t)

	resA, err := m.Register(ctx, "A")
	require.NoError(t, err)
	resB, err := m.Register(ctx, "B")
	require.NoError(t, err)

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	_, _, err = m.CheckIn(ctx, resB.Attendee.ID)
	require.NoError(t, err)

	m.now = func() time.Time { return base.Add(2 * time.Hour) }
	checked := m.BulkCheckIn(ctx, []string{resA.Attendee.ID, resB.Attendee.ID, "missing"})
	assert.Equal(t, 1, checked)

	a, _ := m.Get(resA.Attendee.ID)
	require.NotNil(t, a.CheckedInAt)
	assert.True(t, a.CheckedInAt.Equal(base.Add(2*time.Hour)), "A gets a fresh timestamp")

	b, _ := m.Get(resB.Attendee.ID)
	require.NotNil(t, b.CheckedInAt)
	assert.True(t, b.CheckedInAt.Equal(base), "B keeps its original timestamp")
}

func TestRegenerateCode_InvalidatesOldCode(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestRoster(t)

	res, err := m.Register(ctx, "Alice")
	require.NoError(t, err)
	oldCode := res.Attendee.AccessCode

	newCode, err := m.RegenerateCode(ctx, res.Attendee.ID)
	require.NoError(t, err)
	require.Len(t, newCode, 6)
	require.NotEqual(t, oldCode, newCode)

	_, ok := m.VerifyCode(oldCode)
	assert.False(t, ok, "old code must stop verifying")

	found, ok := m.VerifyCode(newCode)
	require.True(t, ok)
	assert.Equal(t, res.Attendee.ID, found.ID)
}

func TestRemove_IsTerminal(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestRoster(t)

	res, err := m.Register(ctx, "Alice")
	require.NoError(t, err)

	require.NoError(t, m.Remove(ctx, res.Attendee.ID))
	assert.Empty(t, m.List())

	_, ok := m.VerifyCode(res.Attendee.AccessCode)
	assert.False(t, ok)

	assert.ErrorIs(t, m.Remove(ctx, res.Attendee.ID), ErrAttendeeNotFound)
}

func TestRoster_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, snaps := newTestRoster(t)

	resA, err := m.Register(ctx, "Alice")
	require.NoError(t, err)
	resB, err := m.Register(ctx, "Bob")
	require.NoError(t, err)
	_, _, err = m.CheckIn(ctx, resB.Attendee.ID)
	require.NoError(t, err)

	// A second manager over the same store sees the identical roster.
	reloaded := NewAttendeeManager(ctx, snaps)
	list := reloaded.List()
	require.Len(t, list, 2)

	alice, ok := reloaded.Get(resA.Attendee.ID)
	require.True(t, ok)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, resA.Attendee.AccessCode, alice.AccessCode)
	assert.True(t, alice.RegisteredAt.Equal(resA.Attendee.RegisteredAt), "registered_at survives the JSON round trip")
	assert.False(t, alice.CheckedIn)
	assert.Nil(t, alice.CheckedInAt)

	bob, ok := reloaded.Get(resB.Attendee.ID)
	require.True(t, ok)
	require.True(t, bob.CheckedIn)
	require.NotNil(t, bob.CheckedInAt)

	original, _ := m.Get(resB.Attendee.ID)
	assert.True(t, bob.CheckedInAt.Equal(*original.CheckedInAt), "checked_in_at survives without drift")
}

func TestRoster_LoadsOlderSchemaWithoutCheckinFields(t *testing.T) {
	ctx := context.Background()
	snaps := store.NewMemory()
	require.NoError(t, snaps.Save(ctx, "attendees", []byte(
		`[{"id":"1","name":"Old Timer","registered_at":"2025-01-02T15:04:05Z","access_code":"ABC123"}]`,
	)))

	m := NewAttendeeManager(ctx, snaps)
	a, ok := m.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Old Timer", a.Name)
	assert.False(t, a.CheckedIn)
	assert.Nil(t, a.CheckedInAt)

	found, ok := m.VerifyCode("ABC123")
	require.True(t, ok)
	assert.Equal(t, "1", found.ID)
}

func TestRoster_CorruptSnapshotFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	snaps := store.NewMemory()
	require.NoError(t, snaps.Save(ctx, "attendees", []byte("{not json")))

	m := NewAttendeeManager(ctx, snaps)
	assert.Empty(t, m.List())
}

func TestCounts(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestRoster(t)

	resA, _ := m.Register(ctx, "A")
	_, _ = m.Register(ctx, "B")
	_, _, err := m.CheckIn(ctx, resA.Attendee.ID)
	require.NoError(t, err)

	total, checkedIn := m.Counts()
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, checkedIn)
}

func TestGetByName(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestRoster(t)

	res, err := m.Register(ctx, "Alice")
	require.NoError(t, err)

	found, ok := m.GetByName("  ALICE ")
	require.True(t, ok)
	assert.Equal(t, res.Attendee.ID, found.ID)

	_, ok = m.GetByName("nobody")
	assert.False(t, ok)
}
