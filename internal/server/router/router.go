package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"inventario-backend/internal/server/handlers"
	"inventario-backend/internal/server/middleware"
)

// New wires the Gin engine with required routes and middlewares.
func New(wizardH *handlers.WizardHandler, recordsH *handlers.RecordsHandler, transferH *handlers.TransferHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(middleware.Metrics())

	api := r.Group("/api/v1")
	{
		wizard := api.Group("/wizard")
		{
			wizard.POST("/sessions", wizardH.CreateSession)
			wizard.GET("/state", wizardH.State)
			wizard.POST("/submit", wizardH.Submit)
			wizard.POST("/back", wizardH.Back)
			wizard.POST("/quick-add", wizardH.QuickAdd)
		}

		api.GET("/records", recordsH.List)
		api.DELETE("/records/:index", recordsH.Delete)
		api.DELETE("/records", recordsH.Clear)

		export := api.Group("/export")
		{
			export.GET("/csv", transferH.ExportCSV)
			export.GET("/backup", transferH.ExportBackup)
			export.POST("/spreadsheet", transferH.ExportSpreadsheet)
		}

		imports := api.Group("/import")
		{
			imports.POST("/csv", transferH.ImportCSV)
			imports.POST("/json", transferH.ImportJSON)
			imports.POST("/restore", transferH.Restore)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
