package services

import (
	"errors"
	"time"

	"venue-backend/models"

	"gorm.io/gorm"
)

// PaymentService is the payment ledger: rows appended against a
// booking, summed fresh on every read.
type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

type PaymentInput struct {
	BookingID     uint    `json:"bookingId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	Notes         string  `json:"notes"`
}

func isValidMethod(method string) bool {
	for _, m := range models.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Record appends a payment against an existing booking, timestamped
// now. The amount is not checked against the outstanding balance:
// overpayment is allowed and simply drives the balance negative.
func (s *PaymentService) Record(in PaymentInput) (models.Payment, error) {
	if in.Amount <= 0 {
		return models.Payment{}, validationf("amount must be positive")
	}
	if !isValidMethod(in.PaymentMethod) {
		return models.Payment{}, validationf("unknown payment method %q", in.PaymentMethod)
	}

	var booking models.Booking
	if err := s.DB.First(&booking, in.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, ErrBookingNotFound
		}
		return models.Payment{}, err
	}

	payment := models.Payment{
		BookingID:     in.BookingID,
		Amount:        in.Amount,
		PaymentDate:   time.Now(),
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

// ListForBooking returns a booking's payments, newest first.
func (s *PaymentService) ListForBooking(bookingID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.Where("booking_id = ?", bookingID).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

// ListAll returns every payment joined with its booking and the
// booking's customer, newest first.
func (s *PaymentService) ListAll() ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.Preload("Booking").Preload("Booking.Customer").
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

// Delete hard-deletes a payment row.
func (s *PaymentService) Delete(id uint) error {
	res := s.DB.Delete(&models.Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
