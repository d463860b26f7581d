// Package api exposes the event service over HTTP. Route handlers are thin:
// they bind JSON, call one manager operation, and answer with the resulting
// record plus the screen the client should show next.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eventpass/internal/auth"
	"eventpass/internal/config"
	"eventpass/internal/event"
	"eventpass/internal/httpmiddleware"
)

// Managers bundles the collection managers the server dispatches to.
type Managers struct {
	Attendees     *event.AttendeeManager
	Schedule      *event.ScheduleManager
	Feedback      *event.FeedbackManager
	Notifications *event.NotificationManager
	Resources     *event.ResourceManager
	Settings      *event.SettingsManager
	Analytics     *event.AnalyticsManager
}

// Server wires config, managers and middleware into a gin router.
type Server struct {
	cfg     config.App
	m       Managers
	healthy func(context.Context) bool
}

// NewServer creates the HTTP server. healthy reports backend connectivity
// for /healthz; nil means always healthy (memory and file backends).
func NewServer(cfg config.App, m Managers, healthy func(context.Context) bool) *Server {
	return &Server{cfg: cfg, m: m, healthy: healthy}
}

// Router builds the gin engine with the full middleware chain and routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewRateLimiter(s.cfg.RateLimitPerMin).Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", s.handleHealthz)

	v1 := r.Group("/v1")
	v1.GET("/event", s.handleEventInfo)
	v1.GET("/event/qr.png", s.handleJoinQR)
	v1.POST("/register", s.handleRegister)
	v1.POST("/verify", s.handleVerifyCode)
	v1.GET("/schedule", s.handleGetSchedule)
	v1.GET("/resources", s.handleGetResources)
	v1.POST("/resources/track", s.handleTrackResource)
	v1.GET("/notifications", s.handleListNotifications)
	v1.POST("/feedback", s.handleSubmitFeedback)
	v1.POST("/admin/login", s.handleAdminLogin)

	admin := v1.Group("/admin", auth.AdminAuth(s.cfg.JWTSigningKey, s.cfg.JWTIssuer))
	admin.GET("/attendees", s.handleListAttendees)
	admin.POST("/attendees", s.handleAddAttendee)
	admin.DELETE("/attendees/:id", s.handleRemoveAttendee)
	admin.POST("/attendees/:id/checkin", s.handleCheckIn)
	admin.POST("/attendees/:id/undo-checkin", s.handleUndoCheckIn)
	admin.POST("/checkins/bulk", s.handleBulkCheckIn)
	admin.POST("/attendees/:id/regenerate-code", s.handleRegenerateCode)
	admin.PUT("/schedule", s.handleReplaceSchedule)
	admin.POST("/resources/:kind", s.handleAddResource)
	admin.PUT("/resources/:kind/:index", s.handleUpdateResource)
	admin.DELETE("/resources/:kind/:index", s.handleDeleteResource)
	admin.POST("/notifications", s.handleSendNotification)
	admin.GET("/feedback", s.handleListFeedback)
	admin.GET("/analytics", s.handleAnalytics)
	admin.PUT("/settings", s.handleUpdateSettings)

	return r
}

func (s *Server) handleHealthz(c *gin.Context) {
	backendHealthy := true
	if s.healthy != nil {
		backendHealthy = s.healthy(c.Request.Context())
	}
	status := http.StatusOK
	if !backendHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "snapshots": backendHealthy})
}

// CORS middleware for browser requests.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
