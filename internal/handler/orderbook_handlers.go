package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allyounowbud/onetrack/internal/models"
	"github.com/allyounowbud/onetrack/internal/service"
)

type OrderBookHandler struct {
	orderBookService *service.OrderBookService
}

func NewOrderBookHandler(s *service.OrderBookService) *OrderBookHandler {
	return &OrderBookHandler{
		orderBookService: s,
	}
}

// GetOpen lists unsold purchases for the mark-as-sold picker.
func (h *OrderBookHandler) GetOpen(c *gin.Context) {
	open, err := h.orderBookService.OpenPurchases(c.Request.Context())
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusOK, open)
}

// GetEditable returns the full ledger for the editing grid.
func (h *OrderBookHandler) GetEditable(c *gin.Context) {
	entries, err := h.orderBookService.Editable(c.Request.Context())
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusOK, entries)
}

func (h *OrderBookHandler) PostQuickAdd(c *gin.Context) {
	var entry models.LedgerEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	if err := h.orderBookService.QuickAdd(c.Request.Context(), entry); err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"ok": true})
}

type markSoldRequest struct {
	Row  int                `json:"row"`
	Sale models.SaleDetails `json:"sale"`
}

func (h *OrderBookHandler) PostMarkSold(c *gin.Context) {
	var req markSoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	if err := h.orderBookService.MarkSold(c.Request.Context(), req.Row, req.Sale); err != nil {
		// Position and already-sold failures are caller mistakes, the
		// rest are backend trouble.
		status := http.StatusBadGateway
		if strings.Contains(err.Error(), "no order book row") || strings.Contains(err.Error(), "already marked sold") {
			status = http.StatusConflict
		}
		fail(c, status, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true})
}

func (h *OrderBookHandler) PutRows(c *gin.Context) {
	var rows []models.LedgerEntry
	if err := c.ShouldBindJSON(&rows); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	updated, err := h.orderBookService.UpdateRows(c.Request.Context(), rows)
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "updated": updated})
}

type deleteRowsRequest struct {
	Rows []int `json:"rows"`
}

func (h *OrderBookHandler) DeleteRows(c *gin.Context) {
	var req deleteRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	deleted, err := h.orderBookService.DeleteRows(c.Request.Context(), req.Rows)
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "deleted": deleted})
}
