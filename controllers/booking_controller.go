package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"venue-backend/middleware"
	"venue-backend/services"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// parseIDParam reads the numeric :id route param.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id parameter."})
		return 0, false
	}
	return uint(id), true
}

// validationMessage strips the sentinel prefix so the client sees only
// the human part.
func validationMessage(err error) string {
	msg := err.Error()
	if cut, ok := strings.CutPrefix(msg, services.ErrValidation.Error()+": "); ok {
		return cut
	}
	return msg
}

// respondServiceError translates the service error taxonomy into HTTP.
// Handlers with a more specific message handle their cases before
// falling through to this.
func respondServiceError(c *gin.Context, err error) {
	var stateErr *services.InvalidStateError
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationMessage(err)})
	case errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden: You do not have permission."})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"message": "A record with these details already exists."})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("A booking with '%s' status cannot be changed.", stateErr.Status)})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong!"})
	}
}

// CreateByAdmin books on behalf of the customer named in the payload.
// POST /api/bookings/admin (staff/admin)
func (ctrl *BookingController) CreateByAdmin(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)

	var in services.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload.", "details": err.Error()})
		return
	}
	if in.CustomerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A customer must be selected to create a booking."})
		return
	}

	booking, err := ctrl.BookingSvc.CreateByStaff(in, p.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// CreateByCustomer is the self-serve path: ownership comes from the
// token, the handler is the configured placeholder.
// POST /api/bookings/customer (customer)
func (ctrl *BookingController) CreateByCustomer(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)

	var in services.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload.", "details": err.Error()})
		return
	}

	booking, err := ctrl.BookingSvc.CreateByCustomer(in, p.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// Update is the unrestricted staff overwrite, status included.
// PUT /api/bookings/:id (admin)
func (ctrl *BookingController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in services.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload.", "details": err.Error()})
		return
	}

	booking, err := ctrl.BookingSvc.UpdateByStaff(id, in)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Cannot update booking with id=%d. It may not exist.", id)})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateByCustomer edits an own, still-Pending booking.
// PUT /api/bookings/customer/:id (customer owner)
func (ctrl *BookingController) UpdateByCustomer(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in services.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload.", "details": err.Error()})
		return
	}

	if _, err := ctrl.BookingSvc.UpdateByCustomer(id, in, p.ID); err != nil {
		var stateErr *services.InvalidStateError
		switch {
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden: You cannot edit this booking."})
		case errors.As(err, &stateErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("A booking with '%s' status cannot be edited.", stateErr.Status)})
		default:
			respondServiceError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Your booking request was updated successfully."})
}

// CancelByCustomer soft-cancels an own, still-Pending booking.
// DELETE /api/bookings/customer/:id (customer owner)
func (ctrl *BookingController) CancelByCustomer(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.BookingSvc.CancelByCustomer(id, p.ID); err != nil {
		var stateErr *services.InvalidStateError
		switch {
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden: You are not authorized to cancel this booking."})
		case errors.As(err, &stateErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("A booking with '%s' status cannot be cancelled.", stateErr.Status)})
		default:
			respondServiceError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Your booking request has been cancelled."})
}

// Delete hard-deletes a booking and, via cascade, its payments.
// DELETE /api/bookings/:id (admin)
func (ctrl *BookingController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.DeleteByStaff(id); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Cannot delete booking with id=%d.", id)})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking was deleted successfully."})
}

// CheckAvailability reports whether a slot is free.
// GET /api/bookings/check-availability?eventDate&startTime&endTime (staff)
func (ctrl *BookingController) CheckAvailability(c *gin.Context) {
	eventDate := c.Query("eventDate")
	startTime := c.Query("startTime")
	endTime := c.Query("endTime")
	if eventDate == "" || startTime == "" || endTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Date and time parameters are required."})
		return
	}

	available, err := ctrl.BookingSvc.CheckAvailability(eventDate, startTime, endTime)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !available {
		c.JSON(http.StatusOK, gin.H{"available": false, "message": "This time slot is already booked."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true, "message": "Time slot is available."})
}

// FindAll returns every booking with derived paid/balance figures.
// GET /api/bookings (admin)
func (ctrl *BookingController) FindAll(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// FindAllForStaff is the staff view of the same joined listing.
// GET /api/bookings/staff (staff)
func (ctrl *BookingController) FindAllForStaff(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// FindOne returns one booking; customers only see their own.
// GET /api/bookings/:id (staff, or owning customer)
func (ctrl *BookingController) FindOne(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.GetOne(id, p)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Booking with id %d not found.", id)})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
