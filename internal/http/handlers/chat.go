package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheikh-saqib/tea-order-assistant/internal/http/response"
	"github.com/sheikh-saqib/tea-order-assistant/internal/intake"
)

type MessageHandler interface {
	HandleMessage(ctx context.Context, msg intake.Message) intake.Reply
}

type ChatHandler struct {
	intake MessageHandler
}

func NewChatHandler(intake MessageHandler) *ChatHandler {
	return &ChatHandler{intake: intake}
}

type chatReq struct {
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

type chatResp struct {
	Reply string `json:"reply"`
}

// POST /chat
// A body that does not decode is treated as an empty message.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		req = chatReq{}
	}
	reply := h.intake.HandleMessage(c.Request.Context(), intake.Message{
		Text:   req.Message,
		Sender: req.Sender,
		Source: intake.SourceChat,
	})
	response.RespondOK(c, chatResp{Reply: reply.Text})
}

// POST /whatsapp
// Form-encoded webhook (Body, From). The response body is the reply text,
// which the messaging provider relays to the sender.
func (h *ChatHandler) WhatsApp(c *gin.Context) {
	reply := h.intake.HandleMessage(c.Request.Context(), intake.Message{
		Text:   c.PostForm("Body"),
		Sender: c.PostForm("From"),
		Source: intake.SourceWhatsApp,
	})
	c.String(http.StatusOK, reply.Text)
}
