package controllers

import (
	"net/http"

	"venue-backend/services"

	"github.com/gin-gonic/gin"
)

// UserController manages staff/admin accounts. Admin-only.
type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{UserSvc: svc}
}

// POST /api/users
func (ctrl *UserController) Create(c *gin.Context) {
	var in services.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required!"})
		return
	}

	user, err := ctrl.UserSvc.Create(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GET /api/users
func (ctrl *UserController) FindAll(c *gin.Context) {
	users, err := ctrl.UserSvc.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// PUT /api/users/:id
func (ctrl *UserController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in services.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload.", "details": err.Error()})
		return
	}

	user, err := ctrl.UserSvc.Update(id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /api/users/:id
func (ctrl *UserController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.UserSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User was deleted successfully!"})
}
