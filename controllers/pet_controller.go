package controllers

import (
	"log"
	"net/http"
	"strconv"

	"pethotel-backend/config"
	"pethotel-backend/models"
	"pethotel-backend/utils"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// Get Pets (GET /api/pets?customer_id=) — read-only lookup
// ----------------------------------------------------

func GetPets(c *gin.Context) {
	var pets []models.Pet

	q := config.DB.Order("id ASC")
	if raw := c.Query("customer_id"); raw != "" {
		customerID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "customer_id must be a positive integer")
			return
		}
		q = q.Where("customer_id = ?", uint(customerID))
	}

	if err := q.Find(&pets).Error; err != nil {
		log.Printf("❌ GetPets error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to retrieve pets")
		return
	}

	c.JSON(http.StatusOK, pets)
}
