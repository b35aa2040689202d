package handlers

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/sheikh-saqib/tea-order-assistant/internal/apperr"
	"github.com/sheikh-saqib/tea-order-assistant/internal/http/response"
	"github.com/sheikh-saqib/tea-order-assistant/internal/intake"
	"github.com/sheikh-saqib/tea-order-assistant/internal/models"
	"github.com/sheikh-saqib/tea-order-assistant/internal/pkg/logger"
)

type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, req intake.OrderRequest) (models.OrderRecord, error)
}

type OrderHandler struct {
	orders OrderSubmitter
	log    *logger.Logger
}

func NewOrderHandler(orders OrderSubmitter, log *logger.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

type orderReq struct {
	Buyer    string          `json:"buyer"`
	Name     string          `json:"name"` // older clients send the buyer as name
	Product  string          `json:"product"`
	Quantity json.RawMessage `json:"quantity"`
}

// POST /order
func (h *OrderHandler) Submit(c *gin.Context) {
	var req orderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperr.Validation("order.submit", "invalid request body"))
		return
	}
	buyer := req.Buyer
	if buyer == "" {
		buyer = req.Name
	}

	_, err := h.orders.SubmitOrder(c.Request.Context(), intake.OrderRequest{
		Buyer:    buyer,
		Product:  req.Product,
		Quantity: rawQuantity(req.Quantity),
		Source:   intake.SourceAPI,
	})
	if err != nil {
		if !apperr.IsValidation(err) {
			h.log.Error("order submission failed", "error", err)
		}
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, "Order saved")
}

// rawQuantity accepts both 20 and "20". Anything else is passed through so
// validation can reject it with a readable message.
func rawQuantity(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return string(raw)
}
