package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/tea-order-assistant/internal/apperr"
	"github.com/sheikh-saqib/tea-order-assistant/internal/intake"
	"github.com/sheikh-saqib/tea-order-assistant/internal/models"
	"github.com/sheikh-saqib/tea-order-assistant/internal/pkg/logger"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeIntake struct {
	got []intake.Message
}

func (f *fakeIntake) HandleMessage(_ context.Context, msg intake.Message) intake.Reply {
	f.got = append(f.got, msg)
	return intake.Reply{Text: "reply to: " + msg.Text}
}

type fakeOrders struct {
	got []intake.OrderRequest
	err error
}

func (f *fakeOrders) SubmitOrder(_ context.Context, req intake.OrderRequest) (models.OrderRecord, error) {
	f.got = append(f.got, req)
	return models.OrderRecord{}, f.err
}

type fakeDashboard struct {
	snap models.Snapshot
	err  error
}

func (f fakeDashboard) GetSnapshot(context.Context) (models.Snapshot, error) { return f.snap, f.err }

func serve(r *gin.Engine, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChat(t *testing.T) {
	in := &fakeIntake{}
	h := NewChatHandler(in)
	r := gin.New()
	r.POST("/chat", h.Chat)
	r.POST("/whatsapp", h.WhatsApp)

	w := serve(r, http.MethodPost, "/chat", "application/json", `{"message":"hi","sender":"web-1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reply":"reply to: hi"}`, w.Body.String())

	w = serve(r, http.MethodPost, "/chat", "application/json", `not json`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reply":"reply to: "}`, w.Body.String())

	form := url.Values{"Body": {"5kg green tea"}, "From": {"whatsapp:+250700"}}
	w = serve(r, http.MethodPost, "/whatsapp", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "reply to: 5kg green tea", w.Body.String())

	require.Len(t, in.got, 3)
	assert.Equal(t, intake.Message{Text: "hi", Sender: "web-1", Source: intake.SourceChat}, in.got[0])
	assert.Equal(t, intake.Message{Text: "5kg green tea", Sender: "whatsapp:+250700", Source: intake.SourceWhatsApp}, in.got[2])
}

func TestOrderSubmit(t *testing.T) {
	orders := &fakeOrders{}
	r := gin.New()
	r.POST("/order", NewOrderHandler(orders, logger.NewNop()).Submit)

	w := serve(r, http.MethodPost, "/order", "application/json", `{"buyer":"Alice","product":"Green Tea","quantity":20}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","message":"Order saved"}`, w.Body.String())

	serve(r, http.MethodPost, "/order", "application/json", `{"name":"Bob","product":"Black Tea","quantity":"7"}`)
	serve(r, http.MethodPost, "/order", "application/json", `{"buyer":"Carol","product":"Black Tea"}`)

	require.Len(t, orders.got, 3)
	assert.Equal(t, intake.OrderRequest{Buyer: "Alice", Product: "Green Tea", Quantity: "20", Source: intake.SourceAPI}, orders.got[0])
	assert.Equal(t, "Bob", orders.got[1].Buyer)
	assert.Equal(t, "7", orders.got[1].Quantity)
	assert.Equal(t, "", orders.got[2].Quantity)
}

func TestOrderSubmit_Errors(t *testing.T) {
	orders := &fakeOrders{err: apperr.Validation("order.submit", "quantity %q is not a whole number", "ten")}
	r := gin.New()
	r.POST("/order", NewOrderHandler(orders, logger.NewNop()).Submit)

	w := serve(r, http.MethodPost, "/order", "application/json", `{"buyer":"Alice","product":"Green Tea","quantity":"ten"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["message"], "ten")

	w = serve(r, http.MethodPost, "/order", "application/json", `{broken`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	orders.err = apperr.Storage("ledger.append", errors.New("disk full"))
	w = serve(r, http.MethodPost, "/order", "application/json", `{"buyer":"Alice","product":"Green Tea","quantity":1}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk full")
	assert.Contains(t, w.Body.String(), `"status":"error"`)
}

func TestDashboardData(t *testing.T) {
	r := gin.New()
	r.GET("/api/dashboard", NewDashboardHandler(fakeDashboard{snap: models.NewSnapshot(0)}, logger.NewNop()).Data)
	w := serve(r, http.MethodGet, "/api/dashboard", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"labels":[],"buyers":[],"products":[],"quantities":[]}`, w.Body.String())

	r = gin.New()
	r.GET("/api/dashboard", NewDashboardHandler(fakeDashboard{err: errors.New("io")}, logger.NewNop()).Data)
	w = serve(r, http.MethodGet, "/api/dashboard", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPages(t *testing.T) {
	r := gin.New()
	r.SetHTMLTemplate(Templates())
	h := NewPageHandler(3)
	r.GET("/", h.Chat)
	r.GET("/dashboard", h.Dashboard)

	w := serve(r, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Order Assistant")

	w = serve(r, http.MethodGet, "/dashboard", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Regexp(t, `const pollMillis =\s*3000\s*;`, w.Body.String())
}

func TestRawQuantity(t *testing.T) {
	assert.Equal(t, "20", rawQuantity(json.RawMessage(`20`)))
	assert.Equal(t, "20", rawQuantity(json.RawMessage(`"20"`)))
	assert.Equal(t, "2.5", rawQuantity(json.RawMessage(`2.5`)))
	assert.Equal(t, "", rawQuantity(json.RawMessage(`null`)))
	assert.Equal(t, "", rawQuantity(nil))
	assert.Equal(t, "true", rawQuantity(json.RawMessage(`true`)))
}
