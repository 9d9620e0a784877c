package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pethotel-backend/controllers"
	"pethotel-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter รับ Controller Instances เข้ามาเพื่อกำหนด Route
func SetupRouter(
	rc *controllers.RoomController,
	rsc *controllers.ReservationController,
	ctc *controllers.CustomerController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.POST("/initialize", rc.InitializeRooms)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", rsc.GetReservations)
			reservations.POST("", rsc.CreateReservation)
			reservations.GET("/:id", rsc.GetReservationDetails)
			reservations.PUT("/:id", rsc.UpdateReservation)
			reservations.POST("/:id/cancel", rsc.CancelReservation)
			reservations.POST("/:id/checkout", rsc.CheckoutReservation)
		}

		customersRoutes := api.Group("/customers")
		{
			customersRoutes.GET("", ctc.GetCustomers)
			customersRoutes.POST("", ctc.CreateCustomer)
		}

		pets := api.Group("/pets")
		{
			pets.GET("", controllers.GetPets)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
		}
	}

	return r
}
