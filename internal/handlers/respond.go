package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solana-casino-backend/internal/errs"
)

// Every endpoint answers with the same envelope; failures carry the
// machine-readable kind and whether a retry of the same request can
// succeed.
type response struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Kind      errs.Kind `json:"kind,omitempty"`
	Retryable bool      `json:"retryable,omitempty"`
	Data      any       `json:"data,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, response{Success: true, Data: data})
}

func respondErr(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	c.JSON(statusFor(kind), response{
		Success:   false,
		Message:   errs.Message(err),
		Kind:      kind,
		Retryable: errs.Retryable(err),
	})
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindAuthenticationFailed:
		return http.StatusUnauthorized
	case errs.KindValidationFailed, errs.KindInsufficientBalance:
		return http.StatusBadRequest
	case errs.KindBetAlreadyActive, errs.KindInvalidSeedState, errs.KindStorageConflict:
		return http.StatusConflict
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindOracleUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
