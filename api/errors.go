package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

const codeInternal = "INTERNAL_ERROR"

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {error, code}. Errors without a code become
// 500 INTERNAL_ERROR carrying the underlying message.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		c.AbortWithStatusJSON(statusFor(domainErr.Kind), errorResponse{Error: domainErr.Message, Code: domainErr.Code})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
		Error: "Internal server error: " + err.Error(),
		Code:  codeInternal,
	})
}

func invalidID() error {
	return domain.NewValidationError("INVALID_ID", "Valid ID is required")
}
