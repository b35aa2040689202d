package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheikh-saqib/tea-order-assistant/internal/apperr"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Status is the envelope used by the order endpoints.
type Status struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Status{Status: StatusSuccess, Message: message})
}

// RespondError maps validation failures to 400 and everything else to 500.
// Storage details stay in the logs; clients get a generic message.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	var appErr *apperr.Error
	switch {
	case errors.As(err, &appErr) && appErr.Kind == apperr.KindValidation:
		status = http.StatusBadRequest
		msg = appErr.Err.Error()
	case apperr.IsStorage(err):
		msg = "order storage is unavailable, please retry"
	}
	c.JSON(status, Status{Status: StatusError, Message: msg})
}
