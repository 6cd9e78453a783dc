package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allyounowbud/onetrack/internal/models"
	"github.com/allyounowbud/onetrack/internal/service"
)

type DatabaseHandler struct {
	databaseService *service.DatabaseService
}

func NewDatabaseHandler(s *service.DatabaseService) *DatabaseHandler {
	return &DatabaseHandler{
		databaseService: s,
	}
}

func (h *DatabaseHandler) GetInit(c *gin.Context) {
	m, err := h.databaseService.InitModel(c.Request.Context())
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusOK, m)
}

func (h *DatabaseHandler) GetFull(c *gin.Context) {
	full, err := h.databaseService.Full(c.Request.Context())
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusOK, full)
}

func (h *DatabaseHandler) PutItems(c *gin.Context) {
	var rows []models.Item
	if err := c.ShouldBindJSON(&rows); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	updated, err := h.databaseService.UpdateItems(c.Request.Context(), rows)
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "updated": updated})
}

func (h *DatabaseHandler) PutRetailers(c *gin.Context) {
	var rows []models.Retailer
	if err := c.ShouldBindJSON(&rows); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	updated, err := h.databaseService.UpdateRetailers(c.Request.Context(), rows)
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "updated": updated})
}

func (h *DatabaseHandler) PutMarketplaces(c *gin.Context) {
	var rows []models.Marketplace
	if err := c.ShouldBindJSON(&rows); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	updated, err := h.databaseService.UpdateMarketplaces(c.Request.Context(), rows)
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "updated": updated})
}

func (h *DatabaseHandler) PostItem(c *gin.Context) {
	var it models.Item
	if err := c.ShouldBindJSON(&it); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	if err := h.databaseService.AddItem(c.Request.Context(), it); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"ok": true})
}

func (h *DatabaseHandler) PostRetailer(c *gin.Context) {
	var rt models.Retailer
	if err := c.ShouldBindJSON(&rt); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	if err := h.databaseService.AddRetailer(c.Request.Context(), rt); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"ok": true})
}

func (h *DatabaseHandler) PostMarketplace(c *gin.Context) {
	var mk models.Marketplace
	if err := c.ShouldBindJSON(&mk); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	if err := h.databaseService.AddMarketplace(c.Request.Context(), mk); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"ok": true})
}

func (h *DatabaseHandler) DeleteItems(c *gin.Context) {
	h.remove(c, h.databaseService.RemoveItems)
}

func (h *DatabaseHandler) DeleteRetailers(c *gin.Context) {
	h.remove(c, h.databaseService.RemoveRetailers)
}

func (h *DatabaseHandler) DeleteMarketplaces(c *gin.Context) {
	h.remove(c, h.databaseService.RemoveMarketplaces)
}

func (h *DatabaseHandler) remove(c *gin.Context, del func(ctx context.Context, positions []int) (int, error)) {
	var req deleteRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	deleted, err := del(c.Request.Context(), req.Rows)
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "deleted": deleted})
}
