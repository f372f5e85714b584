package services

import (
	"errors"
	"regexp"
	"strings"

	"venue-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Nepali mobile numbers: 10 digits, 98 or 97 prefix.
var phoneRe = regexp.MustCompile(`^(98|97)\d{8}$`)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type CustomerService struct {
	DB *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db}
}

type CustomerInput struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

func (in *CustomerInput) validate() error {
	if !phoneRe.MatchString(strings.TrimSpace(in.Phone)) {
		return validationf("invalid phone number, must be 10 digits starting with 98 or 97")
	}
	if in.Email != "" && !emailRe.MatchString(in.Email) {
		return validationf("invalid email address")
	}
	return nil
}

func buildCustomer(in CustomerInput) (models.Customer, error) {
	if err := in.validate(); err != nil {
		return models.Customer{}, err
	}

	customer := models.Customer{
		Name:    in.Name,
		Phone:   strings.TrimSpace(in.Phone),
		Address: in.Address,
	}
	if in.Email != "" {
		email := in.Email
		customer.Email = &email
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.Customer{}, err
		}
		customer.Password = string(hash)
	}
	return customer, nil
}

// Register creates a self-service account; password is mandatory here,
// unlike staff-recorded walk-in customers.
func (s *CustomerService) Register(in CustomerInput) (models.Customer, error) {
	if in.Password == "" {
		return models.Customer{}, validationf("password is required")
	}
	customer, err := buildCustomer(in)
	if err != nil {
		return models.Customer{}, err
	}
	if err := s.DB.Create(&customer).Error; err != nil {
		if isDuplicateErr(err) {
			return models.Customer{}, ErrDuplicate
		}
		return models.Customer{}, err
	}
	return customer, nil
}

// Create records a customer on the staff surface; login access is
// optional.
func (s *CustomerService) Create(in CustomerInput) (models.Customer, error) {
	customer, err := buildCustomer(in)
	if err != nil {
		return models.Customer{}, err
	}
	if err := s.DB.Create(&customer).Error; err != nil {
		if isDuplicateErr(err) {
			return models.Customer{}, ErrDuplicate
		}
		return models.Customer{}, err
	}
	return customer, nil
}

// Authenticate checks a phone/password pair. A customer without a
// stored password has no login access and behaves like a missing
// account.
func (s *CustomerService) Authenticate(phone, password string) (models.Customer, error) {
	var customer models.Customer
	if err := s.DB.Where("phone = ?", phone).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Customer{}, ErrCustomerNotFound
		}
		return models.Customer{}, err
	}
	if customer.Password == "" {
		return models.Customer{}, ErrCustomerNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(password)) != nil {
		return models.Customer{}, ErrInvalidCredentials
	}
	return customer, nil
}

// List returns customers ordered by name, optionally filtered by a
// search term across name, phone, and email.
func (s *CustomerService) List(search string) ([]models.Customer, error) {
	var customers []models.Customer
	q := s.DB.Order("name ASC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like)
	}
	err := q.Find(&customers).Error
	return customers, err
}

// Update overwrites a customer's contact fields; a supplied password
// is re-hashed, an empty one leaves the stored hash alone.
func (s *CustomerService) Update(id uint, in CustomerInput) (models.Customer, error) {
	var existing models.Customer
	if err := s.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Customer{}, ErrCustomerNotFound
		}
		return models.Customer{}, err
	}

	updated, err := buildCustomer(in)
	if err != nil {
		return models.Customer{}, err
	}
	existing.Name = updated.Name
	existing.Phone = updated.Phone
	existing.Email = updated.Email
	existing.Address = updated.Address
	if updated.Password != "" {
		existing.Password = updated.Password
	}

	if err := s.DB.Save(&existing).Error; err != nil {
		if isDuplicateErr(err) {
			return models.Customer{}, ErrDuplicate
		}
		return models.Customer{}, err
	}
	return existing, nil
}

func (s *CustomerService) Delete(id uint) error {
	res := s.DB.Delete(&models.Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// isDuplicateErr matches unique-index violations across MySQL and the
// SQLite used in tests.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
