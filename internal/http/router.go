package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/sheikh-saqib/tea-order-assistant/internal/http/handlers"
	httpMW "github.com/sheikh-saqib/tea-order-assistant/internal/http/middleware"
	"github.com/sheikh-saqib/tea-order-assistant/internal/pkg/logger"
)

type RouterConfig struct {
	Logger         *logger.Logger
	AllowedOrigins []string

	HealthHandler    *httpH.HealthHandler
	ChatHandler      *httpH.ChatHandler
	OrderHandler     *httpH.OrderHandler
	DashboardHandler *httpH.DashboardHandler
	PageHandler      *httpH.PageHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestID())
	if cfg.Logger != nil {
		r.Use(httpMW.AccessLog(cfg.Logger))
	}
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	// Pages
	if cfg.PageHandler != nil {
		r.SetHTMLTemplate(httpH.Templates())
		r.GET("/", cfg.PageHandler.Chat)
		r.GET("/dashboard", cfg.PageHandler.Dashboard)
	}

	// Message intake
	if cfg.ChatHandler != nil {
		r.POST("/chat", cfg.ChatHandler.Chat)
		r.POST("/whatsapp", cfg.ChatHandler.WhatsApp)
	}

	// Explicit orders
	if cfg.OrderHandler != nil {
		r.POST("/order", cfg.OrderHandler.Submit)
	}

	api := r.Group("/api")
	{
		if cfg.DashboardHandler != nil {
			api.GET("/dashboard", cfg.DashboardHandler.Data)
		}
	}

	return r
}
