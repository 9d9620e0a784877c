package controllers

import (
	"fmt"
	"log"
	"net/http"

	"pethotel-backend/models"
	"pethotel-backend/services"
	"pethotel-backend/utils"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	CustomerSvc *services.CustomerService
}

func NewCustomerController(svc *services.CustomerService) *CustomerController {
	return &CustomerController{CustomerSvc: svc}
}

// CreateCustomer (POST /api/customers)
func (ctrl *CustomerController) CreateCustomer(c *gin.Context) {
	// 💡 Note: ต้องใช้ 'var' เพื่อให้ GORM อัปเดตค่า ID เข้าไปใน Struct
	var customer models.Customer

	if err := c.ShouldBindJSON(&customer); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid customer payload: "+err.Error())
		return
	}

	if err := ctrl.CustomerSvc.Create(&customer); err != nil {
		log.Printf("❌ DB ERROR during customer creation: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to create customer: %s", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers (GET /api/customers)
func (ctrl *CustomerController) GetCustomers(c *gin.Context) {
	customers, err := ctrl.CustomerSvc.GetAll()
	if err != nil {
		log.Printf("❌ GetCustomers error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}
