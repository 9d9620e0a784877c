package services

import (
	"gorm.io/gorm"

	"pethotel-backend/models"
)

type CustomerService struct {
	DB *gorm.DB
}

// NewCustomerService Constructor สำหรับ Dependency Injection
func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db}
}

// Create Customer Record
// รับ Pointer เพื่อให้ GORM อัปเดต Customer.ID กลับมา
func (s *CustomerService) Create(customer *models.Customer) error {
	return s.DB.Create(customer).Error
}

func (s *CustomerService) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	err := s.DB.Order("id DESC").Find(&customers).Error
	return customers, err
}
