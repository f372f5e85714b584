package controllers

import (
	"errors"
	"net/http"

	"venue-backend/middleware"
	"venue-backend/services"

	"github.com/gin-gonic/gin"
)

type customerLoginPayload struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CustomerController struct {
	CustomerSvc *services.CustomerService
	BookingSvc  *services.BookingService
	Auth        *middleware.AuthMiddleware
}

func NewCustomerController(customerSvc *services.CustomerService, bookingSvc *services.BookingService, auth *middleware.AuthMiddleware) *CustomerController {
	return &CustomerController{CustomerSvc: customerSvc, BookingSvc: bookingSvc, Auth: auth}
}

// Register opens a self-service account.
// POST /api/customers/register (public)
func (ctrl *CustomerController) Register(c *gin.Context) {
	var in services.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, Phone, and Password are required!"})
		return
	}

	customer, err := ctrl.CustomerSvc.Register(in)
	if err != nil {
		if errors.Is(err, services.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"message": "This phone number or email is already registered."})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// Login exchanges phone/password for a customer credential.
// POST /api/customers/login (public)
func (ctrl *CustomerController) Login(c *gin.Context) {
	var payload customerLoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Phone and password are required."})
		return
	}

	customer, err := ctrl.CustomerSvc.Authenticate(payload.Phone, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Account not found or not registered for login."})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"accessToken": nil, "message": "Invalid phone or password."})
		default:
			respondServiceError(c, err)
		}
		return
	}

	token, err := ctrl.Auth.IssueToken(customer.ID, middleware.RoleCustomer)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          customer.ID,
		"name":        customer.Name,
		"phone":       customer.Phone,
		"email":       customer.Email,
		"role":        middleware.RoleCustomer,
		"accessToken": token,
	})
}

// MyBookings lists the acting customer's own bookings, newest event first.
// GET /api/customers/my-bookings (customer)
func (ctrl *CustomerController) MyBookings(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	bookings, err := ctrl.BookingSvc.GetForOwner(p.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Create records a customer from the staff surface (no login needed).
// POST /api/customers (staff)
func (ctrl *CustomerController) Create(c *gin.Context) {
	var in services.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and Phone are required fields!"})
		return
	}

	customer, err := ctrl.CustomerSvc.Create(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// FindAll lists customers, optionally filtered by ?search= across
// name, phone, and email.
// GET /api/customers (staff)
func (ctrl *CustomerController) FindAll(c *gin.Context) {
	customers, err := ctrl.CustomerSvc.List(c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// Update rewrites a customer record.
// PUT /api/customers/:id (staff)
func (ctrl *CustomerController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in services.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload.", "details": err.Error()})
		return
	}

	customer, err := ctrl.CustomerSvc.Update(id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Delete removes a customer record.
// DELETE /api/customers/:id (staff)
func (ctrl *CustomerController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.CustomerSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer was deleted successfully!"})
}
