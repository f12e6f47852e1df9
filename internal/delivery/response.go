package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_client/internal/domain"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

// FailWith maps a typed error from the lower layers onto an HTTP status. The
// server-provided message, when any, rides through unchanged.
func FailWith(c *gin.Context, err error) {
	ErrorResponse(c, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	var (
		authErr       *domain.AuthError
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		cartErr       *domain.CartError
		transportErr  *domain.TransportError
		decodeErr     *domain.DecodeError
	)
	// errors.As walks the wrapped chain, so a CartError around an AuthError
	// still reports as 401; a CartError with no deeper classification
	// (missing cart, operation in flight) is a conflict.
	switch {
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &transportErr), errors.As(err, &decodeErr):
		return http.StatusBadGateway
	case errors.As(err, &cartErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
