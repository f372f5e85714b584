package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"venue-backend/config"
	"venue-backend/controllers"
	"venue-backend/middleware"
	"venue-backend/routes"
	"venue-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	cfg := config.Load()

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	log.Println("Database connection established, migrations applied")

	// Guards
	auth := middleware.NewAuthMiddleware(db, cfg)

	// Services
	userService := services.NewUserService(db)
	customerService := services.NewCustomerService(db)
	bookingService := services.NewBookingService(db, cfg.SelfServeUserID)
	paymentService := services.NewPaymentService(db)
	inventoryService := services.NewInventoryService(db)
	reportService := services.NewReportService(db)

	// Controllers
	authController := controllers.NewAuthController(userService, auth)
	userController := controllers.NewUserController(userService)
	customerController := controllers.NewCustomerController(customerService, bookingService, auth)
	bookingController := controllers.NewBookingController(bookingService)
	paymentController := controllers.NewPaymentController(paymentService)
	inventoryController := controllers.NewInventoryController(inventoryService)
	reportController := controllers.NewReportController(reportService)

	router := routes.SetupRouter(
		auth,
		authController,
		userController,
		customerController,
		bookingController,
		paymentController,
		inventoryController,
		reportController,
	)

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
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown on interrupt.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
