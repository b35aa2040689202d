package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/sheikh-saqib/tea-order-assistant/internal/apperr"
	"github.com/sheikh-saqib/tea-order-assistant/internal/http/response"
	"github.com/sheikh-saqib/tea-order-assistant/internal/models"
	"github.com/sheikh-saqib/tea-order-assistant/internal/pkg/logger"
)

type SnapshotGetter interface {
	GetSnapshot(ctx context.Context) (models.Snapshot, error)
}

type DashboardHandler struct {
	dashboard SnapshotGetter
	log       *logger.Logger
}

func NewDashboardHandler(dashboard SnapshotGetter, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, log: log}
}

// GET /api/dashboard
func (h *DashboardHandler) Data(c *gin.Context) {
	snap, err := h.dashboard.GetSnapshot(c.Request.Context())
	if err != nil {
		h.log.Error("dashboard snapshot failed", "error", err)
		response.RespondError(c, apperr.Storage("dashboard.snapshot", err))
		return
	}
	response.RespondOK(c, snap)
}
