package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"eventpass/internal/event"
	"eventpass/internal/metrics"
	"eventpass/internal/qr"
	"eventpass/internal/screen"
)

// attendeeView shapes an attendee for a response. The access code is included
// only where its disclosure is intended: the one-time registration response
// and the admin surface.
func attendeeView(a event.Attendee, includeCode bool) gin.H {
	view := gin.H{
		"id":            a.ID,
		"name":          a.Name,
		"registered_at": a.RegisteredAt,
		"checked_in":    a.CheckedIn,
	}
	if a.CheckedInAt != nil {
		view["checked_in_at"] = a.CheckedInAt
	}
	if includeCode {
		view["access_code"] = a.AccessCode
	}
	return view
}

func (s *Server) handleEventInfo(c *gin.Context) {
	settings := s.m.Settings.Current()
	joinIntent := c.Query("join") == "true"
	c.JSON(http.StatusOK, gin.H{
		"name":           s.cfg.EventName,
		"active":         settings.EventActive,
		"join_url":       qr.JoinURL(s.cfg.PublicURL),
		"initial_screen": screen.Initial(joinIntent, settings.EventActive),
	})
}

func (s *Server) handleJoinQR(c *gin.Context) {
	size := 256
	if v := c.Query("size"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			size = parsed
		}
	}
	png, err := qr.JoinPNG(s.cfg.PublicURL, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "qr render failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) handleRegister(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.m.Attendees.Register(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !res.Created {
		// Known name: route the visitor to code verification. The existing
		// record's code is not repeated here.
		metrics.DuplicateRegistrations.Inc()
		next, _ := screen.Next(screen.Registration, screen.ExistingUser)
		c.JSON(http.StatusOK, gin.H{
			"existing":    true,
			"attendee":    attendeeView(res.Attendee, false),
			"next_screen": next,
		})
		return
	}

	// The one guaranteed disclosure of the freshly issued access code.
	metrics.Registrations.Inc()
	next, _ := screen.Next(screen.Registration, screen.Registered)
	c.JSON(http.StatusCreated, gin.H{
		"attendee":    attendeeView(res.Attendee, true),
		"next_screen": next,
	})
}

func (s *Server) handleVerifyCode(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if len(code) != 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "access code must be 6 characters"})
		return
	}

	attendee, ok := s.m.Attendees.VerifyCode(code)
	if !ok {
		metrics.CodeVerifications.WithLabelValues("fail").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid access code"})
		return
	}

	metrics.CodeVerifications.WithLabelValues("ok").Inc()
	next, _ := screen.Next(screen.CodeVerification, screen.CodeVerified)
	c.JSON(http.StatusOK, gin.H{
		"attendee":    attendeeView(attendee, false),
		"next_screen": next,
	})
}

func (s *Server) handleGetSchedule(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"schedule": s.m.Schedule.List()})
}

func (s *Server) handleGetResources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"resources": s.m.Resources.All()})
}

func (s *Server) handleTrackResource(c *gin.Context) {
	var req struct {
		Filename string `json:"filename" binding:"required"`
		Kind     string `json:"kind" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Kind {
	case "download":
		s.m.Analytics.TrackDownload(c.Request.Context(), req.Filename)
	case "view":
		s.m.Analytics.TrackView(c.Request.Context(), req.Filename)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be download or view"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": s.m.Notifications.List()})
}

func (s *Server) handleSubmitFeedback(c *gin.Context) {
	var req struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := s.m.Feedback.Add(c.Request.Context(), req.Rating, req.Comment)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics.FeedbackSubmitted.Inc()
	next, _ := screen.Next(screen.Feedback, screen.FeedbackSubmitted)
	c.JSON(http.StatusCreated, gin.H{"feedback": entry, "next_screen": next})
}
