package controllers

import (
	"github.com/Govind-619/inventory-manager/models"
	"github.com/Govind-619/inventory-manager/repository"
	"github.com/Govind-619/inventory-manager/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ItemValueRequest carries the value of one characteristic
type ItemValueRequest struct {
	CharacteristicID uint   `json:"characteristicId"`
	Value            string `json:"value"`
}

// ItemRequest represents the item creation request
type ItemRequest struct {
	Name            string             `json:"name" binding:"required,max=255"`
	Manufacturer    *string            `json:"manufacturer" binding:"omitempty,max=255"`
	Quantity        *int               `json:"quantity" binding:"required,gte=0,lte=2147483647"`
	Price           *decimal.Decimal   `json:"price" binding:"required"`
	CategoryID      uint               `json:"categoryId" binding:"required"`
	Characteristics []ItemValueRequest `json:"characteristics"`
}

// QuantityRequest is the body of a quantity update. Quantity is a float so
// fractional input can be floored rather than rejected.
type QuantityRequest struct {
	Quantity *float64 `json:"quantity" binding:"required"`
}

// itemDetail always renders the values array, even when empty
type itemDetail struct {
	models.Item
	CharValues []models.CharacteristicValue `json:"charValues"`
}

const invalidQuantityMessage = "Quantity must be a number and cannot be less than 0"

// ListItems returns all items
func (h *Handler) ListItems(c *gin.Context) {
	utils.LogInfo("ListItems called")

	items, err := h.repo.ListItems(c.Request.Context())
	if err != nil {
		fail(c, "fetch items", err)
		return
	}

	utils.LogDebug("Retrieved %d items", len(items))
	utils.Success(c, items)
}

// CreateItem handles item creation. One value is stored for every
// characteristic of the item's category.
func (h *Handler) CreateItem(c *gin.Context) {
	utils.LogInfo("CreateItem called")

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, utils.BindingErrorMessage(err))
		return
	}
	if err := utils.ValidateRequiredString("name", req.Name, utils.MaxNameLength); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, err.Error())
		return
	}
	if err := utils.ValidatePrice(*req.Price); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, err.Error())
		return
	}
	utils.LogDebug("Received item creation request - Name: %s, Category: %d", req.Name, req.CategoryID)

	input := repository.NewItem{
		Name:         req.Name,
		Manufacturer: req.Manufacturer,
		Quantity:     *req.Quantity,
		Price:        *req.Price,
		CategoryID:   req.CategoryID,
	}
	for _, v := range req.Characteristics {
		input.Values = append(input.Values, repository.ValueInput{
			CharacteristicID: v.CharacteristicID,
			Value:            v.Value,
		})
	}

	item, err := h.repo.CreateItem(c.Request.Context(), input)
	if err != nil {
		fail(c, "create item", err)
		return
	}

	detail := itemDetail{Item: *item, CharValues: item.CharValues}
	if detail.CharValues == nil {
		detail.CharValues = []models.CharacteristicValue{}
	}

	utils.LogInfo("Item created successfully: %s", item.Name)
	utils.Created(c, detail)
}

// UpdateItemQuantity sets the quantity of an item. Fractional quantities
// are floored; negative or non-numeric ones are rejected.
func (h *Handler) UpdateItemQuantity(c *gin.Context) {
	utils.LogInfo("UpdateItemQuantity called")

	id, ok := parseID(c, "item")
	if !ok {
		return
	}

	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid quantity for item %d: %v", id, err)
		utils.BadRequest(c, invalidQuantityMessage)
		return
	}

	quantity, err := utils.NormalizeQuantity(*req.Quantity)
	if err != nil {
		utils.LogError("Invalid quantity for item %d: %v", id, err)
		utils.RespondError(c, err)
		return
	}

	item, err := h.repo.UpdateItemQuantity(c.Request.Context(), id, quantity)
	if err != nil {
		fail(c, "update item", err)
		return
	}

	utils.LogInfo("Item %d quantity set to %d", item.ID, item.Quantity)
	utils.Success(c, item)
}

// DeleteItem deletes an item and its characteristic values
func (h *Handler) DeleteItem(c *gin.Context) {
	utils.LogInfo("DeleteItem called")

	id, ok := parseID(c, "item")
	if !ok {
		return
	}

	if err := h.repo.DeleteItem(c.Request.Context(), id); err != nil {
		fail(c, "delete item", err)
		return
	}

	utils.LogInfo("Item deleted successfully: %d", id)
	utils.Message(c, "Item deleted successfully")
}
