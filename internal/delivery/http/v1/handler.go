package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/ganttsheet/internal/app"
)

type Handler interface {
	HandleHealth(c *gin.Context)
	HandleInspectSheet(c *gin.Context)
	HandleBuildTasks(c *gin.Context)
	HandleChart(c *gin.Context)
	HandleExport(c *gin.Context)
}

type handlerImpl struct {
	logger    zerolog.Logger
	inspect   app.InspectUseCase
	build     app.BuildTasksUseCase
	charts    app.ChartUseCase
	exports   app.ExportUseCase
	today     func() time.Time
	maxUpload int64
}

// New builds the v1 handler. maxUploadBytes bounds multipart uploads.
func New(logger zerolog.Logger, pipeline *app.Pipeline, maxUploadBytes int64) Handler {
	return &handlerImpl{
		logger:    logger,
		inspect:   pipeline,
		build:     pipeline,
		charts:    pipeline,
		exports:   pipeline,
		today:     pipeline.Today,
		maxUpload: maxUploadBytes,
	}
}

// RegisterRoutes mounts the v1 API under /api/v1 plus a health check.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/healthz", h.HandleHealth)

	api := router.Group("/api/v1")
	api.POST("/sheets/inspect", h.HandleInspectSheet)
	api.POST("/tasks", h.HandleBuildTasks)
	api.POST("/charts/:style", h.HandleChart)
	api.POST("/export", h.HandleExport)
}

// NewRouter returns a gin engine with recovery, request logging through
// zerolog and the v1 routes.
func NewRouter(logger zerolog.Logger, h Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	RegisterRoutes(router, h)
	return router
}
