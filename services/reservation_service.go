// services/reservation_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pethotel-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationService owns the booking transaction and the reservation lifecycle.
type ReservationService struct {
	DB       *gorm.DB
	Identity *IdentityService
}

func NewReservationService(db *gorm.DB, identity *IdentityService) *ReservationService {
	return &ReservationService{DB: db, Identity: identity}
}

// Statuses that hold a room's dates. checked_out and cancelled reservations never conflict.
var activeStatuses = []string{
	models.ReservationStatusBooked,
	models.ReservationStatusCheckedIn,
}

// BookRequest carries the desk-entered booking fields.
type BookRequest struct {
	RoomID     uint
	OwnerName  string
	OwnerPhone string
	PetName    string
	CheckIn    string
	CheckOut   string
	PetID      *uint
	AccountID  *uint
	Pickup     bool
	Dropoff    bool
	Notes      string
}

// UpdateFields are the operator-editable reservation fields. Nil means "leave unchanged".
type UpdateFields struct {
	OwnerName  *string `json:"ownerName"`
	OwnerPhone *string `json:"ownerPhone"`
	PetName    *string `json:"petName"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Pickup     *bool   `json:"pickup"`
	Dropoff    *bool   `json:"dropoff"`
	Notes      *string `json:"notes"`
	Status     *string `json:"status"`
}

// parseStayDate accepts "2006-01-02" or RFC3339 and truncates to midnight UTC.
func parseStayDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, newValidationError(field, "is required")
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, newValidationError(field, "must be a date (YYYY-MM-DD)")
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func newReferenceCode() string {
	return "PH-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Book runs the whole booking as one unit: validate → lock the room → overlap check →
// resolve owner → create reservation → mark the room occupied. The room-status write is the
// last statement inside the transaction, so a failed booking never leaves a room flagged.
func (s *ReservationService) Book(req BookRequest) (*models.Reservation, error) {
	if req.RoomID == 0 {
		return nil, newValidationError("roomId", "is required")
	}
	if strings.TrimSpace(req.OwnerName) == "" {
		return nil, newValidationError("ownerName", "is required")
	}
	if strings.TrimSpace(req.OwnerPhone) == "" {
		return nil, newValidationError("ownerPhone", "is required")
	}
	if strings.TrimSpace(req.PetName) == "" {
		return nil, newValidationError("petName", "is required")
	}

	checkIn, err := parseStayDate("checkIn", req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseStayDate("checkOut", req.CheckOut)
	if err != nil {
		return nil, err
	}
	if !checkOut.After(checkIn) {
		return nil, newValidationError("checkOut", "must be after checkIn")
	}

	// optional pet reference — read-only lookup
	if req.PetID != nil && *req.PetID != 0 {
		var pet models.Pet
		if err := s.DB.First(&pet, *req.PetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPetNotFound
			}
			return nil, fmt.Errorf("db error checking pet %d: %w", *req.PetID, err)
		}
	}

	mu := bookingLocks.Lock(req.RoomID)
	defer mu.Unlock()

	var reservationID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, req.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("db error checking room %d: %w", req.RoomID, err)
		}

		// Half-open interval conflict: existing.check_in < requested.check_out AND
		// existing.check_out > requested.check_in. Same-day checkout/check-in never conflicts.
		var overlapping int64
		if err := tx.Model(&models.Reservation{}).
			Where("room_id = ? AND status IN ?", req.RoomID, activeStatuses).
			Where("check_in < ? AND check_out > ?", checkOut, checkIn).
			Count(&overlapping).Error; err != nil {
			return fmt.Errorf("failed to check room availability: %w", err)
		}
		if overlapping > 0 {
			return ErrRoomNotAvailable
		}

		cust, err := s.Identity.Resolve(tx, req.AccountID, req.OwnerName, req.OwnerPhone)
		if err != nil {
			return err
		}

		reservation := models.Reservation{
			ReferenceCode: newReferenceCode(),
			RoomID:        req.RoomID,
			CustomerID:    &cust.ID,
			OwnerName:     strings.TrimSpace(req.OwnerName),
			OwnerPhone:    strings.TrimSpace(req.OwnerPhone),
			PetID:         req.PetID,
			PetName:       strings.TrimSpace(req.PetName),
			CheckIn:       &checkIn,
			CheckOut:      &checkOut,
			Status:        models.ReservationStatusBooked,
			Pickup:        req.Pickup,
			Dropoff:       req.Dropoff,
			Notes:         strings.TrimSpace(req.Notes),
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		reservationID = reservation.ID

		// room status last — see failure-window note above
		if err := tx.Model(&models.Room{}).
			Where("id = ?", req.RoomID).
			Update("status", models.RoomStatusOccupied).Error; err != nil {
			return fmt.Errorf("failed to update room %d status: %w", req.RoomID, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// reload with relations (สำคัญมาก)
	return s.GetByID(reservationID)
}

// GetByID loads one reservation with room, customer and pet attached.
func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.
		Preload("Room").
		Preload("Customer").
		Preload("Pet").
		First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}
	return &reservation, nil
}

// GetAll lists reservations newest-first, optionally filtered by status.
func (s *ReservationService) GetAll(status string) ([]models.Reservation, error) {
	status = strings.TrimSpace(status)
	if status != "" && !models.IsValidReservationStatus(status) {
		return nil, newValidationError("status", "must be booked, checked_in, checked_out or cancelled")
	}

	q := s.DB.
		Preload("Room").
		Preload("Customer").
		Preload("Pet").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var list []models.Reservation
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	return list, nil
}

// Update applies operator edits while the reservation is still booked or checked_in.
// Date edits do not re-run the availability check.
func (s *ReservationService) Update(id uint, fields UpdateFields) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}

	if reservation.Status != models.ReservationStatusBooked &&
		reservation.Status != models.ReservationStatusCheckedIn {
		return nil, ErrInvalidState
	}

	updates := map[string]interface{}{}

	if fields.OwnerName != nil {
		if strings.TrimSpace(*fields.OwnerName) == "" {
			return nil, newValidationError("ownerName", "must not be empty")
		}
		updates["owner_name"] = strings.TrimSpace(*fields.OwnerName)
	}
	if fields.OwnerPhone != nil {
		if strings.TrimSpace(*fields.OwnerPhone) == "" {
			return nil, newValidationError("ownerPhone", "must not be empty")
		}
		updates["owner_phone"] = strings.TrimSpace(*fields.OwnerPhone)
	}
	if fields.PetName != nil {
		if strings.TrimSpace(*fields.PetName) == "" {
			return nil, newValidationError("petName", "must not be empty")
		}
		updates["pet_name"] = strings.TrimSpace(*fields.PetName)
	}

	checkIn := reservation.CheckIn
	checkOut := reservation.CheckOut
	if fields.CheckIn != nil {
		t, err := parseStayDate("checkIn", *fields.CheckIn)
		if err != nil {
			return nil, err
		}
		checkIn = &t
		updates["check_in"] = t
	}
	if fields.CheckOut != nil {
		t, err := parseStayDate("checkOut", *fields.CheckOut)
		if err != nil {
			return nil, err
		}
		checkOut = &t
		updates["check_out"] = t
	}
	if (fields.CheckIn != nil || fields.CheckOut != nil) &&
		checkIn != nil && checkOut != nil && !checkOut.After(*checkIn) {
		return nil, newValidationError("checkOut", "must be after checkIn")
	}

	if fields.Pickup != nil {
		updates["pickup"] = *fields.Pickup
	}
	if fields.Dropoff != nil {
		updates["dropoff"] = *fields.Dropoff
	}
	if fields.Notes != nil {
		updates["notes"] = strings.TrimSpace(*fields.Notes)
	}
	if fields.Status != nil {
		status := strings.TrimSpace(*fields.Status)
		if !models.IsValidReservationStatus(status) {
			return nil, newValidationError("status", "must be booked, checked_in, checked_out or cancelled")
		}
		updates["status"] = status
	}

	if len(updates) == 0 {
		return s.GetByID(id)
	}

	if err := s.DB.Model(&reservation).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	return s.GetByID(id)
}

// Cancel marks a booked or checked_in reservation cancelled. The room's stored status is
// left alone: operators release it manually or the next checkout on the room frees it.
func (s *ReservationService) Cancel(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}

	if reservation.Status != models.ReservationStatusBooked &&
		reservation.Status != models.ReservationStatusCheckedIn {
		return nil, ErrInvalidState
	}

	if err := s.DB.Model(&reservation).
		Update("status", models.ReservationStatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}
	return s.GetByID(id)
}
