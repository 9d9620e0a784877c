package controllers

import (
	"errors"
	"net/http"

	"pethotel-backend/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses with the
// structured {"error": {"code", "message"}} shape the frontend expects.
func respondServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.validation",
				"field":   ve.Field,
				"message": ve.Error(),
			},
		})

	case errors.Is(err, services.ErrRoomNotAvailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": gin.H{
				"code":    "error.roomNotAvailable",
				"message": "room not available for the selected dates",
			},
		})

	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{
			"error": gin.H{
				"code":    "error.invalidState",
				"message": "reservation status does not allow this operation",
			},
		})

	case errors.Is(err, services.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"code": "error.roomNotFound", "message": "room not found"},
		})

	case errors.Is(err, services.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"code": "error.reservationNotFound", "message": "reservation not found"},
		})

	case errors.Is(err, services.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"code": "error.customerNotFound", "message": "customer not found"},
		})

	case errors.Is(err, services.ErrPetNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"code": "error.petNotFound", "message": "pet not found"},
		})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "error.internal",
				"message": "internal server error",
				"details": err.Error(),
			},
		})
	}
}
