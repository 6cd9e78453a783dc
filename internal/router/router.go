package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allyounowbud/onetrack/internal/handler"
	"github.com/allyounowbud/onetrack/internal/notify"
)

type Config struct {
	OrderBookHandler *handler.OrderBookHandler
	ReportHandler    *handler.ReportHandler
	DatabaseHandler  *handler.DatabaseHandler

	// Hub is optional; without it the events route is not registered.
	Hub *notify.Hub
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors())

	api := router.Group("/v1/")
	registerOrderBookRoutes(api, cfg.OrderBookHandler)
	registerReportRoutes(api, cfg.ReportHandler)
	registerDatabaseRoutes(api, cfg.DatabaseHandler)

	if cfg.Hub != nil {
		api.GET("/events", cfg.Hub.Handle)
	}

	return router
}

// cors allows any origin; the tracker UI is served from a different host.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
