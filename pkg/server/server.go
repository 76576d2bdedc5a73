package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/handlers"
	"visawatch/pkg/logger"
	"visawatch/pkg/middleware"
	"visawatch/pkg/tasks"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	_ "visawatch/docs" // swagger docs
)

// Server constants
const (
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 120 * time.Second
	DefaultVersion      = "1.0.0"
	ServiceName         = "visawatch"
)

// Config holds HTTP server configuration
type Config struct {
	Address string
	Port    int
	Config  *config.Config
}

// HTTPServer represents the HTTP server component
type HTTPServer struct {
	server     *http.Server
	engine     *gin.Engine
	config     *Config
	ctx        context.Context
	handlerSvc *handlers.HandlerService
}

// NewHTTPServer creates a new HTTP server instance. The task manager
// carries the checker, booker and notifier wiring; the remaining
// handler dependencies are attached through HandlerService().
func NewHTTPServer(ctx context.Context, config *Config, taskMgr tasks.TaskManager) (*HTTPServer, error) {
	logger.Info("Initializing HTTP server",
		zap.String("address", config.Address),
		zap.Int("port", config.Port))

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	handlerSvc := handlers.NewHandlerService(ctx, config.Config, taskMgr)

	server := &HTTPServer{
		engine:     engine,
		config:     config,
		ctx:        ctx,
		handlerSvc: handlerSvc,
	}

	// Setup routes
	server.setupRoutes()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", config.Address, config.Port)
	server.server = &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}

	logger.Info("HTTP server initialized", zap.String("listen_addr", addr))
	return server, nil
}

// HandlerService exposes the handler service for dependency wiring.
func (s *HTTPServer) HandlerService() *handlers.HandlerService {
	return s.handlerSvc
}

// Engine exposes the router, mainly for tests.
func (s *HTTPServer) Engine() *gin.Engine {
	return s.engine
}

// SetScheduler sets the scheduler reference in the handler service
func (s *HTTPServer) SetScheduler(scheduler interface{}) {
	s.handlerSvc.SetScheduler(scheduler)
}

// setupRoutes configures all HTTP routes
func (s *HTTPServer) setupRoutes() {
	// Add middleware
	s.addMiddleware()

	// Health and liveness endpoints
	s.engine.GET("/health", s.handlerSvc.HealthCheck)
	s.engine.GET("/ping", s.handlePing)

	// Swagger documentation
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup API routes
	s.setupAPIRoutes()

	logger.Info("HTTP routes configured")
}

// addMiddleware adds all middleware to the engine
func (s *HTTPServer) addMiddleware() {
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.GinZapLogger())
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	s.engine.Use(cors.New(corsConfig))
}

// Start starts the HTTP server
func (s *HTTPServer) Start() error {
	logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	return nil
}

// handlePing answers liveness probes
// @Summary Liveness probe
// @Description Returns pong without touching any component
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router /ping [get]
func (s *HTTPServer) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "pong",
		"service":   ServiceName,
		"version":   DefaultVersion,
		"timestamp": time.Now().UTC(),
	})
}

// setupAPIRoutes configures API v1 routes
func (s *HTTPServer) setupAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// Setup route groups
	s.setupSystemRoutes(api)
	s.setupSlotRoutes(api)
	s.setupMonitorRoutes(api)
	s.setupTaskRoutes(api)
	s.setupHistoryRoutes(api)
	s.setupBookingRoutes(api)
	s.setupSchedulerRoutes(api)
	s.setupNotificationRoutes(api)
}

// setupSystemRoutes configures system endpoints
func (s *HTTPServer) setupSystemRoutes(api *gin.RouterGroup) {
	api.GET("/system/status", s.handlerSvc.GetStatus)
	api.GET("/system/config", s.handlerSvc.GetAppConfig)
	api.PUT("/system/config", s.handlerSvc.UpdateConfig)
}

// setupSlotRoutes configures slot feed endpoints
func (s *HTTPServer) setupSlotRoutes(api *gin.RouterGroup) {
	api.GET("/slots/latest", s.handlerSvc.GetLatestSlots)
	api.POST("/slots/check", s.handlerSvc.TriggerCheck)
	api.GET("/slots/consulates", s.handlerSvc.GetConsulates)
}

// setupMonitorRoutes configures poll loop control endpoints
func (s *HTTPServer) setupMonitorRoutes(api *gin.RouterGroup) {
	api.GET("/monitor/status", s.handlerSvc.GetMonitorStatus)
	api.POST("/monitor/start", s.handlerSvc.StartMonitor)
	api.POST("/monitor/stop", s.handlerSvc.StopMonitor)
}

// setupTaskRoutes configures task management endpoints
func (s *HTTPServer) setupTaskRoutes(api *gin.RouterGroup) {
	api.GET("/tasks", s.handlerSvc.GetTasks)
	api.POST("/tasks", s.handlerSvc.CreateTask)
	api.GET("/tasks/history", s.handlerSvc.GetTaskHistory)
	api.GET("/tasks/:id", s.handlerSvc.GetTask)
	api.DELETE("/tasks/:id", s.handlerSvc.DeleteTask)
}

// setupHistoryRoutes configures check-history endpoints
func (s *HTTPServer) setupHistoryRoutes(api *gin.RouterGroup) {
	api.GET("/history/checks", s.handlerSvc.GetCheckHistory)
	api.GET("/history/summary", s.handlerSvc.GetDailySummary)
	api.GET("/history/stats", s.handlerSvc.GetHistoryStats)
}

// setupBookingRoutes configures booking attempt endpoints
func (s *HTTPServer) setupBookingRoutes(api *gin.RouterGroup) {
	api.POST("/booking/attempts", s.handlerSvc.CreateBookingAttempt)
	api.GET("/booking/attempts", s.handlerSvc.GetBookingAttempts)
	api.GET("/booking/attempts/:id", s.handlerSvc.GetBookingAttempt)
}

// setupSchedulerRoutes configures scheduler endpoints
func (s *HTTPServer) setupSchedulerRoutes(api *gin.RouterGroup) {
	api.GET("/scheduler/status", s.handlerSvc.GetSchedulerStatus)
	api.GET("/scheduler/jobs", s.handlerSvc.GetScheduledJobs)
	api.POST("/scheduler/jobs", s.handlerSvc.CreateScheduledJob)
	api.GET("/scheduler/jobs/:id", s.handlerSvc.GetScheduledJob)
	api.DELETE("/scheduler/jobs/:id", s.handlerSvc.DeleteScheduledJob)
}

// setupNotificationRoutes configures notification channel endpoints
func (s *HTTPServer) setupNotificationRoutes(api *gin.RouterGroup) {
	api.POST("/notifications/test", s.handlerSvc.SendTestNotification)
	api.GET("/notifications/recent", s.handlerSvc.GetRecentNotifications)
	api.GET("/notifications/status", s.handlerSvc.GetNotificationStatus)
}
