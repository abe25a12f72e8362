package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/billdesk-api/pkg/apperror"
	"github.com/sangkips/billdesk-api/pkg/pagination"
)

// APIResponse is the envelope every endpoint answers with, except file
// downloads.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta carries the request id that the request logger used, so a client
// can quote it when reporting a failed call.
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func requestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return uuid.New().String()
}

func send(c *gin.Context, status int, ok bool, message string, data, errs interface{}) {
	c.JSON(status, APIResponse{
		Success: ok,
		Message: message,
		Data:    data,
		Errors:  errs,
		Meta: &Meta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			RequestID: requestID(c),
		},
	})
}

func OK(c *gin.Context, message string, data interface{}) {
	send(c, http.StatusOK, true, message, data, nil)
}

func Created(c *gin.Context, message string, data interface{}) {
	send(c, http.StatusCreated, true, message, data, nil)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SuccessWithPagination writes a numbered page: items plus page, per_page
// and total counts.
func SuccessWithPagination[T any](c *gin.Context, statusCode int, message string, result *pagination.PaginatedResult[T]) {
	send(c, statusCode, true, message, result, nil)
}

// SuccessWithCursor writes a keyset page. The client passes next_cursor or
// prev_cursor back as ?cursor= with the matching direction; there is no
// total count.
func SuccessWithCursor[T any](c *gin.Context, statusCode int, message string, result *pagination.CursorPaginatedResult[T]) {
	send(c, statusCode, true, message, result, nil)
}

// Error maps err to its AppError status. Field errors end up under "errors";
// anything that is not an AppError is logged and reported as a bare 500.
func Error(c *gin.Context, err error) {
	if !apperror.IsAppError(err) {
		log.Error().Err(err).
			Str("request_id", requestID(c)).
			Str("path", c.FullPath()).
			Msg("Unhandled error")
	}
	appErr := apperror.GetAppError(err)
	send(c, appErr.Code, false, appErr.Message, nil, appErr.Errors)
}

func ErrorWithCode(c *gin.Context, statusCode int, message string) {
	send(c, statusCode, false, message, nil, nil)
}

func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusForbidden, message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusInternalServerError, message)
}
