package controllers

import (
	"errors"
	"net/http"

	"venue-backend/middleware"
	"venue-backend/services"

	"github.com/gin-gonic/gin"
)

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthController handles staff/admin sign-in and token issuance.
type AuthController struct {
	UserSvc *services.UserService
	Auth    *middleware.AuthMiddleware
}

func NewAuthController(userSvc *services.UserService, auth *middleware.AuthMiddleware) *AuthController {
	return &AuthController{UserSvc: userSvc, Auth: auth}
}

// Login exchanges email/password for a signed staff credential.
// POST /api/auth/login (public)
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required."})
		return
	}

	user, err := ctrl.UserSvc.Authenticate(payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"accessToken": nil, "message": "Invalid email or password."})
		default:
			respondServiceError(c, err)
		}
		return
	}

	token, err := ctrl.Auth.IssueToken(user.ID, user.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"role":        user.Role,
		"accessToken": token,
	})
}
