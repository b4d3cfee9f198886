package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	billreqdomain "github.com/smallbiznis/tavolo/internal/billrequest/domain"
	coorddomain "github.com/smallbiznis/tavolo/internal/coordinator/domain"
	floordomain "github.com/smallbiznis/tavolo/internal/floor/domain"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	trxdomain "github.com/smallbiznis/tavolo/internal/transaction/domain"
	"gorm.io/gorm"
)

var ErrInvalidRequest = errors.New("invalid_request")

type errorPayload struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware maps domain sentinel errors onto transport status
// codes after the handler chain runs.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Code:    err.Error(),
			Message: "not found",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Code:    err.Error(),
			Message: "conflict",
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Code:    err.Error(),
			Message: "validation error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Code:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, trxdomain.ErrNotFound),
		errors.Is(err, staffdomain.ErrNotFound),
		errors.Is(err, floordomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, billreqdomain.ErrPaymentRequestPending),
		errors.Is(err, billreqdomain.ErrPrintRequestPending),
		errors.Is(err, coorddomain.ErrTableOccupied),
		errors.Is(err, staffdomain.ErrInactive):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, coorddomain.ErrAtLeastTwoTransactions),
		errors.Is(err, coorddomain.ErrItemIndexOutOfRange),
		errors.Is(err, coorddomain.ErrReasonRequired),
		errors.Is(err, coorddomain.ErrNotesRequired),
		errors.Is(err, billreqdomain.ErrInvalidKind),
		errors.Is(err, billreqdomain.ErrNoOpenTransactions):
		return true
	default:
		return false
	}
}
