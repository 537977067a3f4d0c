package controllers

import (
	"fmt"

	"github.com/Govind-619/inventory-manager/models"
	"github.com/Govind-619/inventory-manager/repository"
	"github.com/Govind-619/inventory-manager/utils"
	"github.com/gin-gonic/gin"
)

// CharacteristicRequest describes one characteristic of a new category
type CharacteristicRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	DisplayedName string `json:"displayedName" binding:"required,max=255"`
}

// CategoryRequest represents the category creation request
type CategoryRequest struct {
	Name            string                  `json:"name" binding:"required,max=255"`
	Characteristics []CharacteristicRequest `json:"characteristics" binding:"omitempty,dive"`
}

// categoryDetail always renders the characteristics array, even when empty
type categoryDetail struct {
	models.Category
	Characteristics []models.Characteristic `json:"characteristics"`
}

func newCategoryDetail(category *models.Category) categoryDetail {
	detail := categoryDetail{Category: *category, Characteristics: category.Characteristics}
	if detail.Characteristics == nil {
		detail.Characteristics = []models.Characteristic{}
	}
	return detail
}

func (r CategoryRequest) validate() error {
	if err := utils.ValidateRequiredString("name", r.Name, utils.MaxNameLength); err != nil {
		return err
	}
	for i, ch := range r.Characteristics {
		if err := utils.ValidateRequiredString(fmt.Sprintf("characteristics[%d].name", i), ch.Name, utils.MaxNameLength); err != nil {
			return err
		}
		if err := utils.ValidateRequiredString(fmt.Sprintf("characteristics[%d].displayedName", i), ch.DisplayedName, utils.MaxNameLength); err != nil {
			return err
		}
	}
	return nil
}

// ListCategories returns all categories ordered by name
func (h *Handler) ListCategories(c *gin.Context) {
	utils.LogInfo("ListCategories called")

	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, "fetch categories", err)
		return
	}

	utils.LogDebug("Retrieved %d categories", len(categories))
	utils.Success(c, categories)
}

// CreateCategory handles category creation together with its characteristics
func (h *Handler) CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, utils.BindingErrorMessage(err))
		return
	}
	if err := req.validate(); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, err.Error())
		return
	}
	utils.LogDebug("Received category creation request - Name: %s, Characteristics: %d", req.Name, len(req.Characteristics))

	input := repository.NewCategory{Name: req.Name}
	for _, ch := range req.Characteristics {
		input.Characteristics = append(input.Characteristics, repository.NewCharacteristic{
			Name:          ch.Name,
			DisplayedName: ch.DisplayedName,
		})
	}

	category, err := h.repo.CreateCategory(c.Request.Context(), input)
	if err != nil {
		fail(c, "create category", err)
		return
	}

	utils.LogInfo("Category created successfully: %s", category.Name)
	utils.Created(c, newCategoryDetail(category))
}

// GetCategory returns a category with its characteristics
func (h *Handler) GetCategory(c *gin.Context) {
	utils.LogInfo("GetCategory called")

	id, ok := parseID(c, "category")
	if !ok {
		return
	}

	category, err := h.repo.GetCategory(c.Request.Context(), id)
	if err != nil {
		fail(c, "fetch category", err)
		return
	}

	utils.Success(c, newCategoryDetail(category))
}

// DeleteCategory handles category deletion. Categories that still have
// items are refused with 409.
func (h *Handler) DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")

	id, ok := parseID(c, "category")
	if !ok {
		return
	}
	utils.LogDebug("Processing category ID: %d", id)

	if err := h.repo.DeleteCategory(c.Request.Context(), id); err != nil {
		fail(c, "delete category", err)
		return
	}

	utils.LogInfo("Category deleted successfully: %d", id)
	utils.Message(c, "Category deleted successfully")
}
