package event

import (
	"context"
	"sync"

	"eventpass/internal/store"
)

const scheduleKey = "schedule"

// ScheduleItem is one slot in the event program.
type ScheduleItem struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Speaker     string `json:"speaker,omitempty"`
}

// DefaultSchedule seeds a fresh deployment with the workshop agenda.
func DefaultSchedule() []ScheduleItem {
	return []ScheduleItem{
		{Time: "9:00 AM", Title: "Introduction & Welcome", Description: "Overview of the workshop and introductions"},
		{Time: "10:30 AM", Title: "Threat Landscape", Description: "Current cyber threats and attack vectors"},
		{Time: "12:00 PM", Title: "Lunch Break", Description: "Networking with peers and speakers"},
		{Time: "1:30 PM", Title: "Hands-on Lab", Description: "Practical cybersecurity exercises"},
		{Time: "3:30 PM", Title: "Panel Discussion", Description: "Q&A with industry experts"},
		{Time: "4:30 PM", Title: "Closing Remarks", Description: "Workshop summary and next steps"},
	}
}

// ScheduleManager owns the program outline. Admin edits replace the whole
// list; there is no per-item versioning.
type ScheduleManager struct {
	mu    sync.Mutex
	items []ScheduleItem
	snaps store.Snapshots
}

// NewScheduleManager loads the stored program or seeds the default agenda.
func NewScheduleManager(ctx context.Context, snaps store.Snapshots) *ScheduleManager {
	m := &ScheduleManager{snaps: snaps}
	if !loadSnapshot(ctx, snaps, scheduleKey, &m.items) {
		m.items = DefaultSchedule()
	}
	return m
}

// List returns a copy of the program in order.
func (m *ScheduleManager) List() []ScheduleItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ScheduleItem, len(m.items))
	copy(out, m.items)
	return out
}

// Replace swaps in a new program wholesale.
func (m *ScheduleManager) Replace(ctx context.Context, items []ScheduleItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make([]ScheduleItem, len(items))
	copy(m.items, items)
	saveSnapshot(ctx, m.snaps, scheduleKey, m.items)
}
