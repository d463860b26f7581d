package event

import (
	"context"
	"sync"

	"eventpass/internal/store"
)

const analyticsKey = "analytics"

// Analytics tracks per-file download and view counters for the resource
// library.
type Analytics struct {
	Downloads map[string]int `json:"downloads"`
	Views     map[string]int `json:"views"`
}

// AnalyticsManager owns the resource usage counters.
type AnalyticsManager struct {
	mu    sync.Mutex
	data  Analytics
	snaps store.Snapshots
}

// NewAnalyticsManager loads stored counters, starting empty when absent.
func NewAnalyticsManager(ctx context.Context, snaps store.Snapshots) *AnalyticsManager {
	m := &AnalyticsManager{snaps: snaps}
	loadSnapshot(ctx, snaps, analyticsKey, &m.data)
	if m.data.Downloads == nil {
		m.data.Downloads = make(map[string]int)
	}
	if m.data.Views == nil {
		m.data.Views = make(map[string]int)
	}
	return m
}

// TrackDownload bumps the download counter for filename.
func (m *AnalyticsManager) TrackDownload(ctx context.Context, filename string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Downloads[filename]++
	saveSnapshot(ctx, m.snaps, analyticsKey, m.data)
}

// TrackView bumps the view counter for filename.
func (m *AnalyticsManager) TrackView(ctx context.Context, filename string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Views[filename]++
	saveSnapshot(ctx, m.snaps, analyticsKey, m.data)
}

// Snapshot returns a copy of the counters.
func (m *AnalyticsManager) Snapshot() Analytics {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := Analytics{
		Downloads: make(map[string]int, len(m.data.Downloads)),
		Views:     make(map[string]int, len(m.data.Views)),
	}
	for k, v := range m.data.Downloads {
		out.Downloads[k] = v
	}
	for k, v := range m.data.Views {
		out.Views[k] = v
	}
	return out
}
