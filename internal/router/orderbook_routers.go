package router

import (
	"github.com/gin-gonic/gin"

	"github.com/allyounowbud/onetrack/internal/handler"
)

func registerOrderBookRoutes(router *gin.RouterGroup, orderBookHandler *handler.OrderBookHandler) {
	orderbook := router.Group("/orderbook")
	{
		orderbook.GET("/open", orderBookHandler.GetOpen)
		orderbook.GET("/rows", orderBookHandler.GetEditable)
		orderbook.POST("/rows", orderBookHandler.PostQuickAdd)
		orderbook.PUT("/rows", orderBookHandler.PutRows)
		orderbook.DELETE("/rows", orderBookHandler.DeleteRows)
		orderbook.POST("/mark-sold", orderBookHandler.PostMarkSold)
	}
}
