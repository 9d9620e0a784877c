package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pethotel-backend/models"

	"gorm.io/gorm"
)

// RoomService holds the fixed lodging catalog and its coarse occupancy flag.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// Fixed inventory per category. The catalog is provisioned once and never grows.
var roomCounts = []struct {
	Category string
	Count    int
}{
	{models.RoomCategoryDog, 5},
	{models.RoomCategoryCat, 10},
	{models.RoomCategoryBird, 5},
}

// Initialize provisions the room catalog. Idempotent: a category that already has rooms
// is left untouched, so calling it twice never duplicates (category, number) pairs.
func (s *RoomService) Initialize() ([]models.Room, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, rc := range roomCounts {
			var count int64
			if err := tx.Model(&models.Room{}).
				Where("category = ?", rc.Category).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to count %s rooms: %w", rc.Category, err)
			}
			if count > 0 {
				continue
			}

			rooms := make([]models.Room, 0, rc.Count)
			for n := 1; n <= rc.Count; n++ {
				rooms = append(rooms, models.Room{
					Category: rc.Category,
					Number:   n,
					Status:   models.RoomStatusAvailable,
				})
			}
			if err := tx.Create(&rooms).Error; err != nil {
				return fmt.Errorf("failed to provision %s rooms: %w", rc.Category, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.List("")
}

// List returns all rooms, optionally filtered by category, each annotated with the derived
// OccupiedToday flag (today overlapping an active reservation). The stored Status column is
// returned as-is and doubles as the manual/maintenance block.
func (s *RoomService) List(category string) ([]models.Room, error) {
	var rooms []models.Room

	q := s.DB.Order("category ASC, number ASC")
	if strings.TrimSpace(category) != "" {
		q = q.Where("category = ?", strings.ToUpper(strings.TrimSpace(category)))
	}
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}

	occupied, err := s.occupiedRoomIDs(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		rooms[i].OccupiedToday = occupied[rooms[i].ID]
	}
	return rooms, nil
}

// occupiedRoomIDs: room ids with an active reservation whose [check_in, check_out)
// interval overlaps the day containing now.
func (s *RoomService) occupiedRoomIDs(now time.Time) (map[uint]bool, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	var active []models.Reservation
	if err := s.DB.
		Select("id", "room_id").
		Where("status IN ?", activeStatuses).
		Where("check_in < ? AND check_out > ?", tomorrow, today).
		Find(&active).Error; err != nil {
		return nil, fmt.Errorf("failed to derive room occupancy: %w", err)
	}

	occupied := make(map[uint]bool, len(active))
	for _, r := range active {
		occupied[r.RoomID] = true
	}
	return occupied, nil
}

// GetByID returns a single room or ErrRoomNotFound.
func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("db error checking room %d: %w", id, err)
	}
	return &room, nil
}

// SetStatus toggles the stored occupancy flag. Not exposed as a general mutation: only the
// scheduler (on booking), the checkout path, and maintenance blocking go through it.
func (s *RoomService) SetStatus(roomID uint, status string) error {
	if !models.IsValidRoomStatus(status) {
		return newValidationError("status", "must be AVAILABLE, OCCUPIED or MAINTENANCE")
	}
	res := s.DB.Model(&models.Room{}).Where("id = ?", roomID).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update room %d status: %w", roomID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}
