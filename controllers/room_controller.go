package controllers

import (
	"log"
	"net/http"
	"strings"

	"pethotel-backend/models"
	"pethotel-backend/services"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

// ----------------------------------------------------
// 1. Get Rooms (GET /api/rooms?category=)
// ----------------------------------------------------

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	category := strings.ToUpper(strings.TrimSpace(c.Query("category")))
	if category != "" && !models.IsValidRoomCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.invalidCategory",
				"message": "category must be DOG, CAT or BIRD",
			},
		})
		return
	}

	rooms, err := ctrl.RoomSvc.List(category)
	if err != nil {
		log.Printf("❌ GetRooms error: %v", err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// ----------------------------------------------------
// 2. Initialize Rooms (POST /api/rooms/initialize) — idempotent
// ----------------------------------------------------

func (ctrl *RoomController) InitializeRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.Initialize()
	if err != nil {
		log.Printf("❌ InitializeRooms error: %v", err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": rooms})
}
