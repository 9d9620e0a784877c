// controllers/reservation_controller.go
package controllers

import (
	"log"
	"net/http"
	"strconv"

	"pethotel-backend/models"
	"pethotel-backend/services"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateReservationRequest struct {
	RoomID     uint   `json:"room_id"`
	OwnerName  string `json:"ownerName"`
	OwnerPhone string `json:"ownerPhone"`
	PetName    string `json:"petName"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	PetID      *uint  `json:"pet_id,omitempty"`
	AccountID  *uint  `json:"account_id,omitempty"`
	Pickup     bool   `json:"pickup"`
	Dropoff    bool   `json:"dropoff"`
	Notes      string `json:"notes,omitempty"`
}

type CheckoutRequest struct {
	ExtraServices []models.ExtraService `json:"extraServices"`
	PaymentMethod string                `json:"paymentMethod"`
}

// ---------------------------
// Controller
// ---------------------------

type ReservationController struct {
	ReservationSvc *services.ReservationService
	CheckoutSvc    *services.CheckoutService
}

func NewReservationController(resvSvc *services.ReservationService, checkoutSvc *services.CheckoutService) *ReservationController {
	return &ReservationController{ReservationSvc: resvSvc, CheckoutSvc: checkoutSvc}
}

// ---------------------------
// Helper: parse :id param
// ---------------------------
func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidId", "message": "id must be a positive integer"},
		})
		return 0, false
	}
	return uint(id), true
}

// ---------------------------
// 1) Create Reservation (POST /api/reservations)
// ---------------------------

func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var payload CreateReservationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.invalidPayload",
				"message": "invalid request payload",
				"details": err.Error(),
			},
		})
		return
	}

	reservation, err := ctrl.ReservationSvc.Book(services.BookRequest{
		RoomID:     payload.RoomID,
		OwnerName:  payload.OwnerName,
		OwnerPhone: payload.OwnerPhone,
		PetName:    payload.PetName,
		CheckIn:    payload.CheckIn,
		CheckOut:   payload.CheckOut,
		PetID:      payload.PetID,
		AccountID:  payload.AccountID,
		Pickup:     payload.Pickup,
		Dropoff:    payload.Dropoff,
		Notes:      payload.Notes,
	})
	if err != nil {
		log.Printf("CreateReservation error (room %d): %v", payload.RoomID, err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": reservation})
}

// ---------------------------
// 2) List Reservations (GET /api/reservations?status=)
// ---------------------------

func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	list, err := ctrl.ReservationSvc.GetAll(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ---------------------------
// 3) Reservation Details (GET /api/reservations/:id)
// ---------------------------

func (ctrl *ReservationController) GetReservationDetails(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	reservation, err := ctrl.ReservationSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// ---------------------------
// 4) Edit Reservation (PUT /api/reservations/:id)
// ---------------------------

func (ctrl *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var fields services.UpdateFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.invalidPayload",
				"message": "invalid request payload",
				"details": err.Error(),
			},
		})
		return
	}

	reservation, err := ctrl.ReservationSvc.Update(id, fields)
	if err != nil {
		log.Printf("UpdateReservation error (id %d): %v", id, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": reservation})
}

// ---------------------------
// 5) Cancel Reservation (POST /api/reservations/:id/cancel)
// ---------------------------

func (ctrl *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	reservation, err := ctrl.ReservationSvc.Cancel(id)
	if err != nil {
		log.Printf("CancelReservation error (id %d): %v", id, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": reservation})
}

// ---------------------------
// 6) Checkout (POST /api/reservations/:id/checkout)
// ---------------------------

func (ctrl *ReservationController) CheckoutReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.invalidPayload",
				"message": "invalid request payload",
				"details": err.Error(),
			},
		})
		return
	}

	breakdown, err := ctrl.CheckoutSvc.Checkout(id, payload.ExtraServices, payload.PaymentMethod)
	if err != nil {
		log.Printf("CheckoutReservation error (id %d): %v", id, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": breakdown})
}
