package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reservation lifecycle: booked → checked_in → checked_out (terminal),
// booked/checked_in → cancelled (terminal).
const (
	ReservationStatusBooked     = "booked"
	ReservationStatusCheckedIn  = "checked_in"
	ReservationStatusCheckedOut = "checked_out"
	ReservationStatusCancelled  = "cancelled"
)

// ExtraService is one ad-hoc charge added at checkout, e.g. {"Bath", 7}.
type ExtraService struct {
	Reason string  `json:"reason"`
	Amount float64 `json:"amount"`
}

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64" json:"reference_code,omitempty"`
	RoomID        uint   `gorm:"index;column:room_id" json:"roomId"`

	// Owner identity: resolved customer account when available, raw name/phone always kept
	// as entered at the desk.
	CustomerID *uint  `gorm:"index;column:customer_id" json:"customer_id,omitempty"`
	OwnerName  string `gorm:"column:owner_name;size:255" json:"ownerName"`
	OwnerPhone string `gorm:"column:owner_phone;size:32" json:"ownerPhone"`

	PetID   *uint  `gorm:"index;column:pet_id" json:"petId,omitempty"`
	PetName string `gorm:"column:pet_name;size:255" json:"petName"`

	CheckIn  *time.Time `gorm:"column:check_in" json:"check_in,omitempty"`
	CheckOut *time.Time `gorm:"column:check_out" json:"check_out,omitempty"`

	Status  string `gorm:"column:status;size:32;default:booked" json:"status"`
	Pickup  bool   `gorm:"column:pickup;default:false" json:"pickup"`
	Dropoff bool   `gorm:"column:dropoff;default:false" json:"dropoff"`
	Notes   string `gorm:"column:notes;type:text" json:"notes,omitempty"`

	// Billing snapshot — written once at checkout, immutable afterwards.
	TotalNights   int            `gorm:"column:total_nights" json:"totalNights,omitempty"`
	RoomRate      float64        `gorm:"column:room_rate" json:"roomRate,omitempty"`
	Subtotal      float64        `gorm:"column:subtotal" json:"subtotal,omitempty"`
	PickupFee     float64        `gorm:"column:pickup_fee" json:"pickupFee,omitempty"`
	DropoffFee    float64        `gorm:"column:dropoff_fee" json:"dropoffFee,omitempty"`
	ExtraServices datatypes.JSON `gorm:"column:extra_services" json:"extraServices,omitempty"`
	Total         float64        `gorm:"column:total" json:"total,omitempty"`
	PaymentMethod string         `gorm:"column:payment_method;size:64" json:"paymentMethod,omitempty"`
	CheckedOutAt  *time.Time     `gorm:"column:checked_out_at" json:"checkedOutAt,omitempty"`

	Room     Room     `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Customer Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	Pet      Pet      `gorm:"foreignKey:PetID;references:ID" json:"pet,omitempty"`
}

func IsValidReservationStatus(status string) bool {
	switch status {
	case ReservationStatusBooked, ReservationStatusCheckedIn,
		ReservationStatusCheckedOut, ReservationStatusCancelled:
		return true
	}
	return false
}
