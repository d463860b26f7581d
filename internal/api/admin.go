package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eventpass/internal/auth"
	"eventpass/internal/event"
	"eventpass/internal/metrics"
	"eventpass/internal/screen"
)

func (s *Server) handleAdminLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !auth.VerifyCredentials(req.Username, req.Password, s.cfg.AdminUsername, s.cfg.AdminPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	tokens, err := auth.Issue("Administrator", auth.RoleAdmin, s.cfg.JWTIssuer, s.cfg.JWTSigningKey, s.cfg.AccessTTL, s.cfg.RefreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}

	next, _ := screen.Next(screen.AdminLogin, screen.AdminAuthenticated)
	c.JSON(http.StatusOK, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExp.Unix(),
		"next_screen":   next,
	})
}

func (s *Server) handleListAttendees(c *gin.Context) {
	list := s.m.Attendees.List()
	views := make([]gin.H, len(list))
	for i, a := range list {
		views[i] = attendeeView(a, true)
	}
	total, checkedIn := s.m.Attendees.Counts()
	c.JSON(http.StatusOK, gin.H{
		"attendees":  views,
		"total":      total,
		"checked_in": checkedIn,
	})
}

func (s *Server) handleAddAttendee(c *gin.Context) {
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
		c.JSON(http.StatusConflict, gin.H{
			"error":    "attendee already registered",
			"attendee": attendeeView(res.Attendee, true),
		})
		return
	}

	metrics.Registrations.Inc()
	c.JSON(http.StatusCreated, gin.H{"attendee": attendeeView(res.Attendee, true)})
}

func (s *Server) handleRemoveAttendee(c *gin.Context) {
	if err := s.m.Attendees.Remove(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCheckIn(c *gin.Context) {
	attendee, changed, err := s.m.Attendees.CheckIn(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if changed {
		metrics.CheckIns.Inc()
	}
	c.JSON(http.StatusOK, gin.H{"attendee": attendeeView(attendee, true)})
}

func (s *Server) handleUndoCheckIn(c *gin.Context) {
	attendee, err := s.m.Attendees.UndoCheckIn(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendee": attendeeView(attendee, true)})
}

func (s *Server) handleBulkCheckIn(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checked := s.m.Attendees.BulkCheckIn(c.Request.Context(), req.IDs)
	metrics.CheckIns.Add(float64(checked))
	c.JSON(http.StatusOK, gin.H{"checked_in": checked})
}

func (s *Server) handleRegenerateCode(c *gin.Context) {
	code, err := s.m.Attendees.RegenerateCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_code": code})
}

func (s *Server) handleReplaceSchedule(c *gin.Context) {
	var req struct {
		Items []event.ScheduleItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.m.Schedule.Replace(c.Request.Context(), req.Items)
	c.JSON(http.StatusOK, gin.H{"schedule": s.m.Schedule.List()})
}

func (s *Server) handleAddResource(c *gin.Context) {
	var req event.Resource
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := event.ResourceKind(c.Param("kind"))
	if err := s.m.Resources.Add(c.Request.Context(), kind, req); err != nil {
		c.JSON(resourceErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"resources": s.m.Resources.All()})
}

func (s *Server) handleUpdateResource(c *gin.Context) {
	var req event.Resource
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	kind := event.ResourceKind(c.Param("kind"))
	if err := s.m.Resources.Update(c.Request.Context(), kind, index, req); err != nil {
		c.JSON(resourceErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": s.m.Resources.All()})
}

func (s *Server) handleDeleteResource(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	kind := event.ResourceKind(c.Param("kind"))
	if err := s.m.Resources.Delete(c.Request.Context(), kind, index); err != nil {
		c.JSON(resourceErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func resourceErrStatus(err error) int {
	if errors.Is(err, event.ErrUnknownBucket) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func (s *Server) handleSendNotification(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := s.m.Notifications.Send(c.Request.Context(), req.Title, req.Message)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics.NotificationsSent.Inc()
	c.JSON(http.StatusCreated, gin.H{"notification": n})
}

func (s *Server) handleListFeedback(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"feedback": s.m.Feedback.List(),
		"average":  s.m.Feedback.Average(),
		"count":    s.m.Feedback.Count(),
	})
}

func (s *Server) handleAnalytics(c *gin.Context) {
	total, checkedIn := s.m.Attendees.Counts()
	c.JSON(http.StatusOK, gin.H{
		"resources":        s.m.Analytics.Snapshot(),
		"attendees":        total,
		"checked_in":       checkedIn,
		"feedback_count":   s.m.Feedback.Count(),
		"feedback_average": s.m.Feedback.Average(),
	})
}

func (s *Server) handleUpdateSettings(c *gin.Context) {
	var req struct {
		EventActive *bool `json:"event_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := s.m.Settings.SetEventActive(c.Request.Context(), *req.EventActive)
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
