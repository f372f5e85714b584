package services

import (
	"errors"
	"strings"

	"venue-backend/models"

	"gorm.io/gorm"
)

type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

type InventoryInput struct {
	ItemName          string `json:"itemName" binding:"required"`
	Quantity          int    `json:"quantity" binding:"gte=0"`
	Unit              string `json:"unit" binding:"required"`
	LowStockThreshold int    `json:"lowStockThreshold" binding:"gte=0"`
}

func (s *InventoryService) Create(in InventoryInput) (models.Inventory, error) {
	name := strings.TrimSpace(in.ItemName)
	if name == "" {
		return models.Inventory{}, validationf("item name is required")
	}

	item := models.Inventory{
		ItemName:          name,
		Quantity:          in.Quantity,
		Unit:              in.Unit,
		LowStockThreshold: in.LowStockThreshold,
	}
	if item.LowStockThreshold == 0 {
		item.LowStockThreshold = 10
	}
	if err := s.DB.Create(&item).Error; err != nil {
		if isDuplicateErr(err) {
			return models.Inventory{}, ErrDuplicate
		}
		return models.Inventory{}, err
	}
	return item, nil
}

func (s *InventoryService) List() ([]models.Inventory, error) {
	var items []models.Inventory
	err := s.DB.Order("item_name ASC").Find(&items).Error
	return items, err
}

func (s *InventoryService) Update(id uint, in InventoryInput) (models.Inventory, error) {
	var item models.Inventory
	if err := s.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Inventory{}, ErrItemNotFound
		}
		return models.Inventory{}, err
	}

	item.ItemName = strings.TrimSpace(in.ItemName)
	item.Quantity = in.Quantity
	item.Unit = in.Unit
	item.LowStockThreshold = in.LowStockThreshold

	if err := s.DB.Save(&item).Error; err != nil {
		if isDuplicateErr(err) {
			return models.Inventory{}, ErrDuplicate
		}
		return models.Inventory{}, err
	}
	return item, nil
}

func (s *InventoryService) Delete(id uint) error {
	res := s.DB.Delete(&models.Inventory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
