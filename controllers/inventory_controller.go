package controllers

import (
	"errors"
	"net/http"

	"venue-backend/services"
	"venue-backend/utils"

	"github.com/gin-gonic/gin"
)

type InventoryController struct {
	InventorySvc *services.InventoryService
}

func NewInventoryController(svc *services.InventoryService) *InventoryController {
	return &InventoryController{InventorySvc: svc}
}

// POST /api/inventory (staff)
func (ctrl *InventoryController) Create(c *gin.Context) {
	var in services.InventoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := ctrl.InventorySvc.Create(in)
	if err != nil {
		if errors.Is(err, services.ErrDuplicate) {
			utils.JSONError(c, http.StatusConflict, "An item with this name already exists.")
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, item)
}

// GET /api/inventory (staff)
func (ctrl *InventoryController) FindAll(c *gin.Context) {
	items, err := ctrl.InventorySvc.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

// PUT /api/inventory/:id (staff)
func (ctrl *InventoryController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in services.InventoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := ctrl.InventorySvc.Update(id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, item)
}

// DELETE /api/inventory/:id (staff)
func (ctrl *InventoryController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.InventorySvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Item deleted successfully."})
}
