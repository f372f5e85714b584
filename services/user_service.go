package services

import (
	"errors"

	"venue-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages the staff/admin identity domain.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type UserInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func validUserRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleStaff
}

func (s *UserService) Create(in UserInput) (models.User, error) {
	if !emailRe.MatchString(in.Email) {
		return models.User{}, validationf("invalid email address")
	}
	if in.Password == "" {
		return models.User{}, validationf("password is required")
	}
	if in.Role == "" {
		in.Role = models.RoleStaff
	}
	if !validUserRole(in.Role) {
		return models.User{}, validationf("unknown role %q", in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{Name: in.Name, Email: in.Email, Password: string(hash), Role: in.Role}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateErr(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return user, nil
}

// Authenticate checks an email/password pair against the users table.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	err := s.DB.Order("name ASC").Find(&users).Error
	return users, err
}

// Update overwrites name, email, and role; a supplied password is
// re-hashed, an empty one keeps the stored hash.
func (s *UserService) Update(id uint, in UserInput) (models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if !emailRe.MatchString(in.Email) {
		return models.User{}, validationf("invalid email address")
	}
	if in.Role != "" && !validUserRole(in.Role) {
		return models.User{}, validationf("unknown role %q", in.Role)
	}

	user.Name = in.Name
	user.Email = in.Email
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		user.Password = string(hash)
	}

	if err := s.DB.Save(&user).Error; err != nil {
		if isDuplicateErr(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) Delete(id uint) error {
	res := s.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
