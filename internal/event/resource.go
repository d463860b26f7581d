package event

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"eventpass/internal/store"
)

const resourcesKey = "resources"

// ErrUnknownBucket is returned for a resource kind outside the three fixed
// buckets.
var ErrUnknownBucket = errors.New("unknown resource bucket")

// ResourceKind names one of the fixed resource buckets.
type ResourceKind string

const (
	KindCheatsheets ResourceKind = "cheatsheets"
	KindToolkits    ResourceKind = "toolkits"
	KindSlides      ResourceKind = "slides"
)

// Resource describes one downloadable document.
type Resource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Filename    string `json:"filename"`
	Size        string `json:"size"`
	Category    string `json:"category"`
}

// Resources groups the admin-editable lists per bucket.
type Resources struct {
	Cheatsheets []Resource `json:"cheatsheets"`
	Toolkits    []Resource `json:"toolkits"`
	Slides      []Resource `json:"slides"`
}

// DefaultResources seeds a fresh deployment with the workshop handouts.
func DefaultResources() Resources {
	return Resources{
		Cheatsheets: []Resource{
			{Title: "Password Security Best Practices", Description: "Comprehensive guide to creating and managing secure passwords", Filename: "password-security-guide.pdf", Size: "2.1 MB", Category: "Security Fundamentals"},
			{Title: "Phishing Detection & Prevention", Description: "Identify and avoid sophisticated phishing attempts", Filename: "phishing-prevention-guide.pdf", Size: "1.8 MB", Category: "Threat Awareness"},
			{Title: "Social Engineering Defense", Description: "Recognize and counter social engineering tactics", Filename: "social-engineering-defense.pdf", Size: "2.4 MB", Category: "Human Security"},
			{Title: "Network Security Essentials", Description: "Core principles for securing network infrastructure", Filename: "network-security-essentials.pdf", Size: "1.5 MB", Category: "Infrastructure"},
		},
		Toolkits: []Resource{
			{Title: "Kali Linux Complete Setup Guide", Description: "Step-by-step installation and configuration of Kali Linux", Filename: "kali-linux-setup-guide.pdf", Size: "4.2 MB", Category: "Penetration Testing"},
			{Title: "Wireshark Network Analysis", Description: "Master network traffic analysis with Wireshark", Filename: "wireshark-analysis-tutorial.pdf", Size: "3.7 MB", Category: "Network Analysis"},
			{Title: "Ethical Hacking Framework", Description: "Structured approach to penetration testing", Filename: "ethical-hacking-framework.pdf", Size: "5.1 MB", Category: "Methodology"},
		},
		Slides: []Resource{
			{Title: "Cybersecurity Fundamentals", Description: "Introduction to core cybersecurity concepts and principles", Filename: "cybersecurity-fundamentals.pdf", Size: "8.6 MB", Category: "Session 1"},
			{Title: "Advanced Threat Modeling", Description: "Comprehensive threat analysis and risk assessment", Filename: "threat-modeling-advanced.pdf", Size: "7.2 MB", Category: "Session 2"},
		},
	}
}

// ResourceManager owns the three resource buckets. Entries are addressed by
// bucket and position, matching the admin table the lists are edited from.
type ResourceManager struct {
	mu    sync.Mutex
	res   Resources
	snaps store.Snapshots
}

// NewResourceManager loads stored resources or seeds the defaults.
func NewResourceManager(ctx context.Context, snaps store.Snapshots) *ResourceManager {
	m := &ResourceManager{snaps: snaps}
	if !loadSnapshot(ctx, snaps, resourcesKey, &m.res) {
		m.res = DefaultResources()
	}
	return m
}

// All returns a copy of every bucket.
func (m *ResourceManager) All() Resources {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Resources{
		Cheatsheets: append([]Resource(nil), m.res.Cheatsheets...),
		Toolkits:    append([]Resource(nil), m.res.Toolkits...),
		Slides:      append([]Resource(nil), m.res.Slides...),
	}
}

// Add appends a resource to the bucket.
func (m *ResourceManager) Add(ctx context.Context, kind ResourceKind, r Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket, err := m.bucketLocked(kind)
	if err != nil {
		return err
	}
	*bucket = append(*bucket, r)
	saveSnapshot(ctx, m.snaps, resourcesKey, m.res)
	return nil
}

// Update replaces the resource at index in the bucket.
func (m *ResourceManager) Update(ctx context.Context, kind ResourceKind, index int, r Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket, err := m.bucketLocked(kind)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*bucket) {
		return fmt.Errorf("resource index %d out of range for %s", index, kind)
	}
	(*bucket)[index] = r
	saveSnapshot(ctx, m.snaps, resourcesKey, m.res)
	return nil
}

// Delete removes the resource at index in the bucket.
func (m *ResourceManager) Delete(ctx context.Context, kind ResourceKind, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket, err := m.bucketLocked(kind)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*bucket) {
		return fmt.Errorf("resource index %d out of range for %s", index, kind)
	}
	*bucket = append((*bucket)[:index], (*bucket)[index+1:]...)
	saveSnapshot(ctx, m.snaps, resourcesKey, m.res)
	return nil
}

func (m *ResourceManager) bucketLocked(kind ResourceKind) (*[]Resource, error) {
	switch kind {
	case KindCheatsheets:
		return &m.res.Cheatsheets, nil
	case KindToolkits:
		return &m.res.Toolkits, nil
	case KindSlides:
		return &m.res.Slides, nil
	default:
		return nil, ErrUnknownBucket
	}
}
