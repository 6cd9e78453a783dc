package router

import (
	"github.com/gin-gonic/gin"

	"github.com/allyounowbud/onetrack/internal/handler"
)

func registerDatabaseRoutes(router *gin.RouterGroup, databaseHandler *handler.DatabaseHandler) {
	database := router.Group("/database")
	{
		database.GET("/init", databaseHandler.GetInit)
		database.GET("/full", databaseHandler.GetFull)

		database.PUT("/items", databaseHandler.PutItems)
		database.POST("/items", databaseHandler.PostItem)
		database.DELETE("/items", databaseHandler.DeleteItems)

		database.PUT("/retailers", databaseHandler.PutRetailers)
		database.POST("/retailers", databaseHandler.PostRetailer)
		database.DELETE("/retailers", databaseHandler.DeleteRetailers)

		database.PUT("/marketplaces", databaseHandler.PutMarketplaces)
		database.POST("/marketplaces", databaseHandler.PostMarketplace)
		database.DELETE("/marketplaces", databaseHandler.DeleteMarketplaces)
	}
}
