// services/checkout_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"pethotel-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckoutService computes the final bill for a stay, stamps it on the reservation and
// releases the room. Checkout is the only path into the checked_out status.
type CheckoutService struct {
	DB      *gorm.DB
	Pricing PricingPolicy
}

func NewCheckoutService(db *gorm.DB, pricing PricingPolicy) *CheckoutService {
	return &CheckoutService{DB: db, Pricing: pricing}
}

// BillingBreakdown mirrors the snapshot persisted on the reservation.
type BillingBreakdown struct {
	ReservationID uint                  `json:"reservationId"`
	ReferenceCode string                `json:"reference_code,omitempty"`
	TotalNights   int                   `json:"totalNights"`
	RoomRate      float64               `json:"roomRate"`
	Subtotal      float64               `json:"subtotal"`
	PickupFee     float64               `json:"pickupFee"`
	DropoffFee    float64               `json:"dropoffFee"`
	ExtraServices []models.ExtraService `json:"extraServices"`
	ExtraTotal    float64               `json:"extraTotal"`
	Total         float64               `json:"total"`
	PaymentMethod string                `json:"paymentMethod"`
	CheckedOutAt  time.Time             `json:"checkedOutAt"`
}

// Checkout finalizes billing for a stay. A reservation already checked_out is rejected,
// never recomputed: the billing snapshot is immutable once written.
func (s *CheckoutService) Checkout(reservationID uint, extras []models.ExtraService, paymentMethod string) (*BillingBreakdown, error) {
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		return nil, newValidationError("paymentMethod", "is required")
	}

	// room id first, so the advisory lock covers the whole transaction
	var head models.Reservation
	if err := s.DB.Select("id", "room_id").First(&head, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}

	mu := bookingLocks.Lock(head.RoomID)
	defer mu.Unlock()

	var breakdown BillingBreakdown
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("failed to retrieve reservation: %w", err)
		}

		if reservation.Status == models.ReservationStatusCheckedOut ||
			reservation.Status == models.ReservationStatusCancelled {
			return ErrInvalidState
		}
		if reservation.CheckIn == nil || reservation.CheckOut == nil {
			return newValidationError("checkIn", "reservation has no stay dates")
		}

		nights := stayNights(*reservation.CheckIn, *reservation.CheckOut)
		kept := filterExtraServices(extras)

		extraTotal := 0.0
		for _, e := range kept {
			extraTotal += e.Amount
		}

		pickupFee := 0.0
		if reservation.Pickup {
			pickupFee = s.Pricing.PickupFee
		}
		dropoffFee := 0.0
		if reservation.Dropoff {
			dropoffFee = s.Pricing.DropoffFee
		}

		subtotal := float64(nights) * s.Pricing.NightlyRate
		total := subtotal + pickupFee + dropoffFee + extraTotal

		extrasJSON, err := json.Marshal(kept)
		if err != nil {
			return fmt.Errorf("failed to encode extra services: %w", err)
		}

		now := time.Now().UTC()
		if err := tx.Model(&reservation).Updates(map[string]interface{}{
			"status":         models.ReservationStatusCheckedOut,
			"total_nights":   nights,
			"room_rate":      s.Pricing.NightlyRate,
			"subtotal":       subtotal,
			"pickup_fee":     pickupFee,
			"dropoff_fee":    dropoffFee,
			"extra_services": datatypes.JSON(extrasJSON),
			"total":          total,
			"payment_method": paymentMethod,
			"checked_out_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to persist billing snapshot: %w", err)
		}

		if err := tx.Model(&models.Room{}).
			Where("id = ?", reservation.RoomID).
			Update("status", models.RoomStatusAvailable).Error; err != nil {
			return fmt.Errorf("failed to release room %d: %w", reservation.RoomID, err)
		}

		breakdown = BillingBreakdown{
			ReservationID: reservation.ID,
			ReferenceCode: reservation.ReferenceCode,
			TotalNights:   nights,
			RoomRate:      s.Pricing.NightlyRate,
			Subtotal:      subtotal,
			PickupFee:     pickupFee,
			DropoffFee:    dropoffFee,
			ExtraServices: kept,
			ExtraTotal:    extraTotal,
			Total:         total,
			PaymentMethod: paymentMethod,
			CheckedOutAt:  now,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &breakdown, nil
}

// stayNights: ceil of the day span, floored to 1 so a same-day stay still bills one night.
func stayNights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn).Hours() / 24
	nights := int(math.Ceil(diff))
	if nights < 1 {
		nights = 1
	}
	return nights
}

// filterExtraServices drops entries with an empty reason or a non-positive amount,
// preserving the order the operator entered them in.
func filterExtraServices(extras []models.ExtraService) []models.ExtraService {
	kept := make([]models.ExtraService, 0, len(extras))
	for _, e := range extras {
		reason := strings.TrimSpace(e.Reason)
		if reason == "" || e.Amount <= 0 {
			continue
		}
		kept = append(kept, models.ExtraService{Reason: reason, Amount: e.Amount})
	}
	return kept
}
