package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allyounowbud/onetrack/internal/service"
)

type ReportHandler struct {
	inventoryService *service.InventoryService
	statsService     *service.StatsService
	holdingService   *service.HoldingService
}

func NewReportHandler(inv *service.InventoryService, stats *service.StatsService, holding *service.HoldingService) *ReportHandler {
	return &ReportHandler{
		inventoryService: inv,
		statsService:     stats,
		holdingService:   holding,
	}
}

func (h *ReportHandler) GetInventory(c *gin.Context) {
	report, err := h.inventoryService.Valuate(c.Request.Context())
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusOK, report)
}

// GetStats runs the statistics report. Range, item filter and date
// overrides all come from query parameters; anything unusable is treated
// as absent rather than rejected.
func (h *ReportHandler) GetStats(c *gin.Context) {
	query := service.StatsQuery{
		Range: c.DefaultQuery("range", service.RangeNone),
		Item:  c.Query("item"),
		From:  c.Query("from"),
		To:    c.Query("to"),
	}
	res, err := h.statsService.Stats(c.Request.Context(), query)
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusOK, res)
}

func (h *ReportHandler) GetLongestHold(c *gin.Context) {
	hold, err := h.holdingService.LongestHold(c.Request.Context(), c.Query("item"))
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusOK, hold)
}
