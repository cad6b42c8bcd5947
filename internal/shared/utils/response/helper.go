package response

import (
	"errors"
	"net/http"

	"conferly/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// Success writes a success envelope
func Success(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, "success", code, message, data, nil)
}

// Error maps a service error onto the HTTP taxonomy: validation and
// signature problems are 400, missing resources 404, repeated
// confirmations 409, remote gateway failures 502, everything else a
// generic 500 with the detail kept server-side.
func Error(c *gin.Context, err error) {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		RespondJSON(c, "error", http.StatusBadRequest, ve.Message, nil, gin.H{"field": ve.Field})
	case errors.Is(err, apperrors.ErrNotFound):
		RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, apperrors.ErrSignatureMismatch):
		RespondJSON(c, "error", http.StatusBadRequest, "Invalid signature", nil, nil)
	case errors.Is(err, apperrors.ErrPaymentIncomplete):
		RespondJSON(c, "error", http.StatusBadRequest, "Payment not completed", nil, nil)
	case errors.Is(err, apperrors.ErrAlreadyConfirmed):
		RespondJSON(c, "error", http.StatusConflict, "Booking already confirmed", nil, nil)
	case errors.Is(err, apperrors.ErrDuplicate):
		RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case apperrors.IsGateway(err):
		RespondJSON(c, "error", http.StatusBadGateway, "Payment gateway error", nil, nil)
	default:
		RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
	}
}
