package services

import (
	"errors"
	"regexp"
	"time"

	"venue-backend/middleware"
	"venue-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService owns the booking lifecycle: creation on both the
// staff and the self-service path, the status-gated customer
// mutations, availability checks, and the derived ledger figures.
type BookingService struct {
	DB *gorm.DB

	// Handler id stamped on customer-originated bookings.
	SelfServeUserID uint
}

func NewBookingService(db *gorm.DB, selfServeUserID uint) *BookingService {
	return &BookingService{DB: db, SelfServeUserID: selfServeUserID}
}

// BookingInput is the common create/update payload. CustomerID and
// Status are honored only on the staff paths; the customer paths pin
// ownership to the token and force Pending.
type BookingInput struct {
	EventType   string        `json:"eventType" binding:"required"`
	EventDate   string        `json:"eventDate" binding:"required"` // YYYY-MM-DD
	StartTime   string        `json:"startTime" binding:"required"` // HH:MM
	EndTime     string        `json:"endTime" binding:"required"`
	GuestCount  int           `json:"guestCount" binding:"required,gt=0"`
	TotalAmount float64       `json:"totalAmount" binding:"gte=0"`
	Notes       string        `json:"notes"`
	MealPlan    MealPlanInput `json:"mealPlan"`

	CustomerID uint   `json:"customerId"`
	Status     string `json:"status"`
}

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

// normalizeTimeOfDay accepts HH:MM or HH:MM:SS and returns the
// zero-padded HH:MM form the overlap comparison relies on.
func normalizeTimeOfDay(raw string) (string, error) {
	if !timeOfDayRe.MatchString(raw) {
		return "", validationf("invalid time of day %q, expected HH:MM", raw)
	}
	return raw[:5], nil
}

func parseEventDate(raw string) (datatypes.Date, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return datatypes.Date{}, validationf("invalid event date %q, expected YYYY-MM-DD", raw)
	}
	return datatypes.Date(t), nil
}

func isValidStatus(s string) bool {
	switch s {
	case models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled:
		return true
	}
	return false
}

// applyFields writes the customer-editable fields of in onto b.
// Ownership, handler, and status are the callers' business.
func applyFields(b *models.Booking, in BookingInput) error {
	date, err := parseEventDate(in.EventDate)
	if err != nil {
		return err
	}
	start, err := normalizeTimeOfDay(in.StartTime)
	if err != nil {
		return err
	}
	end, err := normalizeTimeOfDay(in.EndTime)
	if err != nil {
		return err
	}
	if in.GuestCount <= 0 {
		return validationf("guest count must be positive")
	}
	if in.TotalAmount < 0 {
		return validationf("total amount cannot be negative")
	}
	mealPlan, err := ResolveMealPlan(in.MealPlan)
	if err != nil {
		return err
	}

	b.EventType = in.EventType
	b.EventDate = date
	b.StartTime = start
	b.EndTime = end
	b.GuestCount = in.GuestCount
	b.TotalAmount = in.TotalAmount
	b.Notes = in.Notes
	b.MealPlan = mealPlan
	return nil
}

// CreateByStaff persists a booking on behalf of the customer named in
// the payload. The customer id is not checked against the customers
// table; a dangling reference is tolerated and the read views render
// it without a customer.
func (s *BookingService) CreateByStaff(in BookingInput, actingStaffID uint) (models.Booking, error) {
	if in.CustomerID == 0 {
		return models.Booking{}, validationf("a customer must be selected to create a booking")
	}

	booking := models.Booking{
		Status:          models.StatusPending,
		CustomerID:      in.CustomerID,
		HandledByUserID: actingStaffID,
	}
	if err := applyFields(&booking, in); err != nil {
		return models.Booking{}, err
	}
	if err := s.DB.Create(&booking).Error; err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// CreateByCustomer persists a self-serve booking request. Ownership is
// pinned to the acting customer and the handler is the configured
// self-serve placeholder; neither can be spoofed via the payload.
func (s *BookingService) CreateByCustomer(in BookingInput, actingCustomerID uint) (models.Booking, error) {
	booking := models.Booking{
		Status:          models.StatusPending,
		CustomerID:      actingCustomerID,
		HandledByUserID: s.SelfServeUserID,
	}
	if err := applyFields(&booking, in); err != nil {
		return models.Booking{}, err
	}
	if err := s.DB.Create(&booking).Error; err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// UpdateByStaff overwrites a booking without ownership or status
// gating. Any status value may be written, including reverting a
// Completed booking; there is deliberately no transition table here.
func (s *BookingService) UpdateByStaff(id uint, in BookingInput) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, err
	}

	if err := applyFields(&booking, in); err != nil {
		return models.Booking{}, err
	}
	if in.CustomerID != 0 {
		booking.CustomerID = in.CustomerID
	}
	if in.Status != "" {
		if !isValidStatus(in.Status) {
			return models.Booking{}, validationf("unknown status %q", in.Status)
		}
		booking.Status = in.Status
	}

	if err := s.DB.Save(&booking).Error; err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// guardOwnedPending loads a booking and enforces the customer-path
// preconditions: ownership, then still-Pending.
func (s *BookingService) guardOwnedPending(id, actingCustomerID uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	if booking.CustomerID != actingCustomerID {
		return models.Booking{}, ErrForbidden
	}
	if booking.Status != models.StatusPending {
		return models.Booking{}, &InvalidStateError{Status: booking.Status}
	}
	return booking, nil
}

// UpdateByCustomer is the restricted own-record edit path: owner only,
// Pending only. Status, ownership, and handler are untouchable.
func (s *BookingService) UpdateByCustomer(id uint, in BookingInput, actingCustomerID uint) (models.Booking, error) {
	booking, err := s.guardOwnedPending(id, actingCustomerID)
	if err != nil {
		return models.Booking{}, err
	}
	if err := applyFields(&booking, in); err != nil {
		return models.Booking{}, err
	}
	if err := s.DB.Save(&booking).Error; err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// CancelByCustomer soft-deletes by flipping the status to Cancelled.
// Same gating as UpdateByCustomer; the row stays for reporting.
func (s *BookingService) CancelByCustomer(id, actingCustomerID uint) error {
	booking, err := s.guardOwnedPending(id, actingCustomerID)
	if err != nil {
		return err
	}
	return s.DB.Model(&booking).Update("status", models.StatusCancelled).Error
}

// DeleteByStaff hard-deletes the row; payments go with it via the
// declared cascade, no explicit transaction.
func (s *BookingService) DeleteByStaff(id uint) error {
	res := s.DB.Delete(&models.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CheckAvailability reports whether [startTime, endTime) on eventDate
// is free of non-cancelled bookings. Intervals are half-open: an
// existing booking ending exactly at startTime does not conflict, so
// back-to-back events are allowed.
//
// Known gap: nothing makes check-then-create atomic. Two concurrent
// creations for the same slot can both see available=true and both
// land. Closing it would take a serializable transaction or a range
// exclusion constraint, which MySQL does not offer.
func (s *BookingService) CheckAvailability(eventDate, startTime, endTime string) (bool, error) {
	date, err := parseEventDate(eventDate)
	if err != nil {
		return false, err
	}
	start, err := normalizeTimeOfDay(startTime)
	if err != nil {
		return false, err
	}
	end, err := normalizeTimeOfDay(endTime)
	if err != nil {
		return false, err
	}

	var count int64
	err = s.DB.Model(&models.Booking{}).
		Where("event_date = ? AND status <> ? AND start_time < ? AND end_time > ?",
			date, models.StatusCancelled, end, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// GetForOwner lists a customer's own bookings, newest event first.
func (s *BookingService) GetForOwner(customerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Where("customer_id = ?", customerID).
		Order("event_date DESC").
		Find(&bookings).Error
	return bookings, err
}

// GetAll returns every booking joined with customer, handler, and
// payments, each annotated with paidAmount and balance. The figures
// are recomputed from the payment rows on every call; nothing is
// cached on the booking.
func (s *BookingService) GetAll() ([]models.BookingWithTotals, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Customer").Preload("Handler").Preload("Payments").
		Order("event_date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	out := make([]models.BookingWithTotals, 0, len(bookings))
	for i := range bookings {
		paid := PaidAmount(bookings[i].Payments)
		out = append(out, models.BookingWithTotals{
			Booking:    bookings[i],
			PaidAmount: paid,
			Balance:    bookings[i].TotalAmount - paid,
		})
	}
	return out, nil
}

// GetOne fetches a single booking with its associations. Staff see
// any booking; a customer principal only their own.
func (s *BookingService) GetOne(id uint, p middleware.Principal) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Customer").Preload("Handler").Preload("Payments").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	if p.IsCustomer() && booking.CustomerID != p.ID {
		return models.Booking{}, ErrForbidden
	}
	return booking, nil
}

// PaidAmount sums a booking's recorded payments.
func PaidAmount(payments []models.Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}
