package controllers

import (
	"errors"
	"net/http"

	"venue-backend/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// Create records a payment against a booking.
// POST /api/payments (admin)
func (ctrl *PaymentController) Create(c *gin.Context) {
	var in services.PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Amount, method, and booking ID are required!"})
		return
	}

	payment, err := ctrl.PaymentSvc.Record(in)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found."})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// FindAll lists every payment with its booking and customer.
// GET /api/payments (admin)
func (ctrl *PaymentController) FindAll(c *gin.Context) {
	payments, err := ctrl.PaymentSvc.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// FindAllForBooking lists one booking's payments.
// GET /api/payments/booking/:bookingId (admin)
func (ctrl *PaymentController) FindAllForBooking(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "bookingId")
	if !ok {
		return
	}
	payments, err := ctrl.PaymentSvc.ListForBooking(bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Delete removes a payment row.
// DELETE /api/payments/:id (admin)
func (ctrl *PaymentController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.PaymentSvc.Delete(id); err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cannot delete Payment. Maybe not found!"})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment was deleted successfully!"})
}
