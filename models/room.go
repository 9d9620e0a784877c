package models

import (
	"gorm.io/gorm"
)

// Room categories partition the fixed lodging inventory.
const (
	RoomCategoryDog  = "DOG"
	RoomCategoryCat  = "CAT"
	RoomCategoryBird = "BIRD"
)

const (
	RoomStatusAvailable   = "AVAILABLE"
	RoomStatusOccupied    = "OCCUPIED"
	RoomStatusMaintenance = "MAINTENANCE"
)

type Room struct {
	gorm.Model

	Category string `json:"category" gorm:"column:category;size:16;uniqueIndex:idx_rooms_category_number"`
	Number   int    `json:"number" gorm:"column:number;uniqueIndex:idx_rooms_category_number"`
	Status   string `json:"status" gorm:"column:status;size:32;default:AVAILABLE"`

	// 🔹 ใช้ส่งค่าไป frontend (ไม่บันทึก DB) — derived from reservations active today
	OccupiedToday bool `gorm:"-" json:"occupiedToday"`
}

func IsValidRoomCategory(category string) bool {
	switch category {
	case RoomCategoryDog, RoomCategoryCat, RoomCategoryBird:
		return true
	}
	return false
}

func IsValidRoomStatus(status string) bool {
	switch status {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}
