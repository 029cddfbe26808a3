package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"guesthouse-backend/config"
	"guesthouse-backend/controllers"
	"guesthouse-backend/routes"
	"guesthouse-backend/services"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Info(".env not found; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	db := config.DB
	log.Info("database connection established, migrations applied")

	// Services
	occupancy := services.OccupancyService{}
	paymentService := services.NewPaymentService(db)
	roomService := services.NewRoomService(db, occupancy)
	bedService := services.NewBedService(db, occupancy)
	guestService := services.NewGuestService(db)
	availabilityService := services.NewAvailabilityService(db)
	stayService := services.NewStayService(db, occupancy, paymentService)

	// Controllers
	roomController := controllers.NewRoomController(roomService, availabilityService)
	bedController := controllers.NewBedController(bedService)
	guestController := controllers.NewGuestController(guestService)
	stayController := controllers.NewStayController(stayService)
	paymentController := controllers.NewPaymentController(paymentService)

	router := routes.SetupRouter(roomController, bedController, guestController, stayController, paymentController, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen and serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}

	log.Info("server stopped gracefully")
}
