// Package metrics exposes the service counters scraped from /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registrations counts newly created attendees.
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventpass_registrations_total",
		Help: "Successful attendee registrations.",
	})

	// DuplicateRegistrations counts registration attempts that matched an
	// existing name and were routed to code verification instead.
	DuplicateRegistrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventpass_duplicate_registrations_total",
		Help: "Registration attempts with an already-registered name.",
	})

	// CodeVerifications counts access-code lookups by result (ok, fail).
	CodeVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventpass_code_verifications_total",
		Help: "Access code verification attempts.",
	}, []string{"result"})

	// CheckIns counts attendee check-ins, including bulk ones.
	CheckIns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventpass_checkins_total",
		Help: "Attendee check-ins.",
	})

	// NotificationsSent counts admin announcements.
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventpass_notifications_sent_total",
		Help: "Notifications sent by admins.",
	})

	// FeedbackSubmitted counts feedback submissions.
	FeedbackSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventpass_feedback_submitted_total",
		Help: "Feedback submissions.",
	})
)
