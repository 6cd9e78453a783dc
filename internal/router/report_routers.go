package router

import (
	"github.com/gin-gonic/gin"

	"github.com/allyounowbud/onetrack/internal/handler"
)

func registerReportRoutes(router *gin.RouterGroup, reportHandler *handler.ReportHandler) {
	reports := router.Group("/reports")
	{
		reports.GET("/inventory", reportHandler.GetInventory)
		reports.GET("/stats", reportHandler.GetStats)
		reports.GET("/longest-hold", reportHandler.GetLongestHold)
	}
}
