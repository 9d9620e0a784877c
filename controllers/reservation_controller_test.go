package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"pethotel-backend/config"
	"pethotel-backend/controllers"
	"pethotel-backend/models"
	"pethotel-backend/routes"
	"pethotel-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ctrlDBSeq int64

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:pethotel_ctrl_test_%d?mode=memory&cache=shared", atomic.AddInt64(&ctrlDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.Customer{},
		&models.Pet{},
		&models.Room{},
		&models.Reservation{},
	))
	config.DB = db

	roomService := services.NewRoomService(db)
	identityService := services.NewIdentityService(db)
	reservationService := services.NewReservationService(db, identityService)
	checkoutService := services.NewCheckoutService(db, services.DefaultPricing())
	customerService := services.NewCustomerService(db)

	return routes.SetupRouter(
		controllers.NewRoomController(roomService),
		controllers.NewReservationController(reservationService, checkoutService),
		controllers.NewCustomerController(customerService),
	)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestInitializeRoomsEndpointIsIdempotent(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 2; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/rooms/initialize", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := doJSON(t, router, http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rooms []models.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	assert.Len(t, rooms, 20)

	w = doJSON(t, router, http.MethodGet, "/api/rooms?category=CAT", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	assert.Len(t, rooms, 10)

	w = doJSON(t, router, http.MethodGet, "/api/rooms?category=FISH", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingAndCheckoutFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/rooms/initialize", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/rooms?category=DOG", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rooms []models.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	require.NotEmpty(t, rooms)
	roomID := rooms[0].ID

	// book 3 nights with pickup
	w = doJSON(t, router, http.MethodPost, "/api/reservations", gin.H{
		"room_id":    roomID,
		"ownerName":  "Nok S.",
		"ownerPhone": "0812345678",
		"petName":    "Mali",
		"check_in":   "2024-03-01",
		"check_out":  "2024-03-04",
		"pickup":     true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Status string             `json:"status"`
		Data   models.Reservation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "success", created.Status)
	assert.Equal(t, models.ReservationStatusBooked, created.Data.Status)
	require.NotZero(t, created.Data.ID)

	// overlapping dates on the same room → conflict
	w = doJSON(t, router, http.MethodPost, "/api/reservations", gin.H{
		"room_id":    roomID,
		"ownerName":  "Anan K.",
		"ownerPhone": "0899990000",
		"petName":    "Taro",
		"check_in":   "2024-03-03",
		"check_out":  "2024-03-06",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	var conflictErr errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflictErr))
	assert.Equal(t, "error.roomNotAvailable", conflictErr.Error.Code)

	// missing owner phone → validation
	w = doJSON(t, router, http.MethodPost, "/api/reservations", gin.H{
		"room_id":   roomID,
		"ownerName": "Anan K.",
		"petName":   "Taro",
		"check_in":  "2024-04-01",
		"check_out": "2024-04-02",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// checkout: 3 × 20 + pickup 5 + bath 7 = 72
	path := fmt.Sprintf("/api/reservations/%d/checkout", created.Data.ID)
	w = doJSON(t, router, http.MethodPost, path, gin.H{
		"extraServices": []gin.H{{"reason": "Bath", "amount": 7}},
		"paymentMethod": "cash",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var checkedOut struct {
		Data services.BillingBreakdown `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkedOut))
	assert.Equal(t, 72.0, checkedOut.Data.Total)
	assert.Equal(t, 3, checkedOut.Data.TotalNights)

	// second checkout is rejected, not recomputed
	w = doJSON(t, router, http.MethodPost, path, gin.H{"paymentMethod": "cash"})
	require.Equal(t, http.StatusConflict, w.Code)
	var stateErr errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stateErr))
	assert.Equal(t, "error.invalidState", stateErr.Error.Code)

	// the room is back in the pool
	w = doJSON(t, router, http.MethodGet, "/api/rooms?category=DOG", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	assert.Equal(t, models.RoomStatusAvailable, rooms[0].Status)
}

func TestReservationEditAndCancelEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/rooms/initialize", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/reservations", gin.H{
		"room_id":    1,
		"ownerName":  "Nok S.",
		"ownerPhone": "0812345678",
		"petName":    "Mali",
		"check_in":   "2024-03-01",
		"check_out":  "2024-03-03",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data models.Reservation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := fmt.Sprintf("/api/reservations/%d", created.Data.ID)
	w = doJSON(t, router, http.MethodPut, path, gin.H{"notes": "bring own food", "status": "checked_in"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated struct {
		Data models.Reservation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "bring own food", updated.Data.Notes)
	assert.Equal(t, models.ReservationStatusCheckedIn, updated.Data.Status)

	w = doJSON(t, router, http.MethodPost, path+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// cancelled is terminal
	w = doJSON(t, router, http.MethodPut, path, gin.H{"notes": "too late"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/reservations/9999", gin.H{"notes": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/reservations/abc", gin.H{"notes": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
