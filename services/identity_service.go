// services/identity_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"pethotel-backend/models"
	"pethotel-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IdentityService maps booking-time owner info to a durable customer record without
// duplicating customers. The scheduler is its only caller.
type IdentityService struct {
	DB *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{DB: db}
}

// Resolve order: explicit account id → exact phone match → provision a walk-in.
// tx may be nil when the caller is not inside a transaction.
func (s *IdentityService) Resolve(tx *gorm.DB, accountID *uint, name, phone string) (*models.Customer, error) {
	db := tx
	if db == nil {
		db = s.DB
	}

	if accountID != nil && *accountID != 0 {
		var cust models.Customer
		if err := db.First(&cust, *accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, fmt.Errorf("db error checking customer %d: %w", *accountID, err)
		}
		return &cust, nil
	}

	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, newValidationError("ownerPhone", "is required")
	}

	var cust models.Customer
	err := db.Where("phone = ?", phone).First(&cust).Error
	if err == nil {
		return &cust, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("db error looking up phone: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("ownerName", "is required for a new owner")
	}
	return s.provisionWalkIn(db, name, phone)
}

// provisionWalkIn creates a minimal customer with a generated non-loginable credential.
// If the insert loses a race on the phone unique index, the winner's record is reused.
func (s *IdentityService) provisionWalkIn(db *gorm.DB, name, phone string) (*models.Customer, error) {
	code, err := utils.GenerateRandomCode(6)
	if err != nil {
		return nil, fmt.Errorf("failed to generate walk-in username: %w", err)
	}
	rawPassword, err := utils.GenerateSecureToken(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate walk-in password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash walk-in password: %w", err)
	}

	cust := models.Customer{
		FullName: name,
		Phone:    phone,
		Username: "walkin-" + strings.ToLower(code),
		Password: string(hash), // random and never shown: the account cannot be logged into
		WalkIn:   true,
	}

	if err := db.Create(&cust).Error; err != nil {
		if isDuplicateKeyError(err) {
			var existing models.Customer
			if err2 := db.Where("phone = ?", phone).First(&existing).Error; err2 == nil {
				return &existing, nil
			}
		}
		return nil, fmt.Errorf("failed to create walk-in customer: %w", err)
	}
	return &cust, nil
}

func isDuplicateKeyError(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}
