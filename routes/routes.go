package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"guesthouse-backend/controllers"
	"guesthouse-backend/middleware"
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

// SetupRouter wires the controllers onto the HTTP surface.
func SetupRouter(
	rc *controllers.RoomController,
	bc *controllers.BedController,
	gc *controllers.GuestController,
	sc *controllers.StayController,
	pc *controllers.PaymentController,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(log), gin.Recovery())

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
	api.Use(middleware.RateLimiter(rate.Limit(50), 100))

	// Room listings change rarely between bookings; a short cache keeps
	// availability results fresh enough for browsing clients.
	listingCache := middleware.Cache(cache.New(30*time.Second, time.Minute), 30*time.Second)

	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", listingCache, rc.GetRooms)

			// must stay before /:id
			rooms.GET("/available", listingCache, rc.GetAvailableRooms)
			rooms.GET("/number/:number", rc.GetRoomByNumber)

			rooms.POST("", rc.CreateRoom)
			rooms.GET("/:id", rc.GetRoom)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeactivateRoom)

			rooms.POST("/:id/maintenance", rc.SetMaintenance)
			rooms.POST("/:id/cleaning", rc.SetCleaning)
			rooms.DELETE("/:id/override", rc.ClearOverride)

			rooms.GET("/:id/beds", bc.GetBedsForRoom)
			rooms.POST("/:id/beds", bc.CreateBed)
		}

		beds := api.Group("/beds")
		{
			beds.GET("/:id", bc.GetBed)
			beds.PUT("/:id", bc.UpdateBed)
			beds.PATCH("/:id", bc.UpdateBed)
			beds.DELETE("/:id", bc.DeactivateBed)
			beds.POST("/:id/maintenance", bc.SetMaintenance)
			beds.DELETE("/:id/override", bc.ClearOverride)
		}

		guests := api.Group("/guests")
		{
			guests.GET("", gc.GetGuests)
			guests.POST("", gc.CreateGuest)
			guests.GET("/:id", gc.GetGuest)
			guests.PUT("/:id", gc.UpdateGuest)
			guests.PATCH("/:id", gc.UpdateGuest)
			guests.DELETE("/:id", gc.DeactivateGuest)
		}

		stays := api.Group("/staylogs")
		{
			stays.GET("", sc.GetStays)
			stays.POST("", sc.CreateStay)
			stays.GET("/:id", sc.GetStay)
			stays.PUT("/:id", sc.UpdateStay)
			stays.PATCH("/:id", sc.UpdateStay)

			stays.POST("/:id/checkin", sc.CheckIn)
			stays.POST("/:id/checkout", sc.CheckOut)
			stays.POST("/:id/cancel", sc.Cancel)
			stays.POST("/:id/noshow", sc.MarkNoShow)

			stays.GET("/:id/payments", pc.GetPaymentsForStay)
			stays.GET("/:id/due", pc.GetAmountDue)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", pc.GetPayments)
			payments.POST("", pc.RecordPayment)
		}
	}

	return r
}
