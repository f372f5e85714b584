package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"venue-backend/controllers"
	"venue-backend/middleware"
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

// SetupRouter wires the controllers behind their guards.
func SetupRouter(
	auth *middleware.AuthMiddleware,
	ac *controllers.AuthController,
	uc *controllers.UserController,
	cc *controllers.CustomerController,
	bc *controllers.BookingController,
	pc *controllers.PaymentController,
	ic *controllers.InventoryController,
	rc *controllers.ReportController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

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
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", ac.Login)
		}

		// Staff account management is admin-only across the board.
		users := api.Group("/users", auth.VerifyToken, auth.RequireAdmin)
		{
			users.POST("", uc.Create)
			users.GET("", uc.FindAll)
			users.PUT("/:id", uc.Update)
			users.DELETE("/:id", uc.Delete)
		}

		customers := api.Group("/customers")
		{
			// Public self-service auth surface.
			customers.POST("/register", cc.Register)
			customers.POST("/login", cc.Login)

			customers.GET("/my-bookings", auth.VerifyCustomerToken, cc.MyBookings)

			// Staff-facing customer management.
			customers.POST("", auth.VerifyToken, cc.Create)
			customers.GET("", auth.VerifyToken, cc.FindAll)
			customers.PUT("/:id", auth.VerifyToken, cc.Update)
			customers.DELETE("/:id", auth.VerifyToken, cc.Delete)
		}

		inventory := api.Group("/inventory", auth.VerifyToken)
		{
			inventory.POST("", ic.Create)
			inventory.GET("", ic.FindAll)
			inventory.PUT("/:id", ic.Update)
			inventory.DELETE("/:id", ic.Delete)
		}

		bookings := api.Group("/bookings")
		{
			// Staff/admin paths.
			bookings.POST("/admin", auth.VerifyToken, bc.CreateByAdmin)
			bookings.PUT("/:id", auth.VerifyToken, auth.RequireAdmin, bc.Update)
			bookings.DELETE("/:id", auth.VerifyToken, auth.RequireAdmin, bc.Delete)
			bookings.GET("/staff", auth.VerifyToken, bc.FindAllForStaff)
			bookings.GET("/check-availability", auth.VerifyToken, bc.CheckAvailability)
			bookings.GET("", auth.VerifyToken, auth.RequireAdmin, bc.FindAll)

			// Customer self-service paths.
			bookings.POST("/customer", auth.VerifyCustomerToken, bc.CreateByCustomer)
			bookings.PUT("/customer/:id", auth.VerifyCustomerToken, bc.UpdateByCustomer)
			bookings.DELETE("/customer/:id", auth.VerifyCustomerToken, bc.CancelByCustomer)

			// Shared: staff see any booking, customers only their own.
			bookings.GET("/:id", auth.Authenticate, bc.FindOne)
		}

		payments := api.Group("/payments", auth.VerifyToken, auth.RequireAdmin)
		{
			payments.POST("", pc.Create)
			payments.GET("", pc.FindAll)
			payments.GET("/booking/:bookingId", pc.FindAllForBooking)
			payments.DELETE("/:id", pc.Delete)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/staff", auth.VerifyToken, rc.StaffSummary)
			reports.GET("/dashboard-summary", auth.VerifyToken, auth.RequireAdmin, rc.DashboardSummary)
		}
	}

	return r
}
