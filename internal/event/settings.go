package event

import (
	"context"
	"sync"

	"eventpass/internal/store"
)

const settingsKey = "app_settings"

// Settings holds the app-wide toggles. EventActive gates the public flow;
// when false, visitors land on the post-event page instead of the QR screen.
type Settings struct {
	EventActive bool `json:"event_active"`
}

// SettingsManager owns the settings snapshot.
type SettingsManager struct {
	mu       sync.Mutex
	settings Settings
	snaps    store.Snapshots
}

// NewSettingsManager loads stored settings. A fresh deployment starts with
// the event inactive so the landing page shows until an admin flips it on.
func NewSettingsManager(ctx context.Context, snaps store.Snapshots) *SettingsManager {
	m := &SettingsManager{snaps: snaps}
	loadSnapshot(ctx, snaps, settingsKey, &m.settings)
	return m
}

// Current returns the settings.
func (m *SettingsManager) Current() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// SetEventActive flips the event gate.
func (m *SettingsManager) SetEventActive(ctx context.Context, active bool) Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.EventActive = active
	saveSnapshot(ctx, m.snaps, settingsKey, m.settings)
	return m.settings
}
