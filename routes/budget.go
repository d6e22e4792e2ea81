package routes

import (
	"errors"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/nitinthakurcode/weddingflo-sub007/models"
	"github.com/nitinthakurcode/weddingflo-sub007/services"
	"github.com/nitinthakurcode/weddingflo-sub007/storage"
	"github.com/nitinthakurcode/weddingflo-sub007/utils"
)

type BudgetItemCreateInput struct {
	Category      string  `json:"category" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	EstimatedCost float64 `json:"estimatedCost"`
	ActualCost    float64 `json:"actualCost"`
	PerGuest      bool    `json:"perGuest"`
	CostPerGuest  float64 `json:"costPerGuest"`
	Notes         string  `json:"notes"`
}

type BudgetItemUpdateInput struct {
	Category      *string  `json:"category"`
	Name          *string  `json:"name"`
	EstimatedCost *float64 `json:"estimatedCost"`
	ActualCost    *float64 `json:"actualCost"`
	Paid          *bool    `json:"paid"`
	PerGuest      *bool    `json:"perGuest"`
	CostPerGuest  *float64 `json:"costPerGuest"`
	Notes         *string  `json:"notes"`
}

func GetBudgetItems(ctx iris.Context) {
	clientID := ctx.Params().GetUintDefault("id", 0)

	if _, err := services.RequireClient(storage.DB, utils.CompanyID(ctx), clientID); err != nil {
		respondServiceError(err, ctx)
		return
	}

	var items []models.BudgetItem
	result := storage.DB.Where("client_id = ?", clientID).Order("category, name").Find(&items)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(items)
}

func CreateBudgetItem(ctx iris.Context) {
	clientID := ctx.Params().GetUintDefault("id", 0)

	if _, err := services.RequireClient(storage.DB, utils.CompanyID(ctx), clientID); err != nil {
		respondServiceError(err, ctx)
		return
	}

	var input BudgetItemCreateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	item := models.BudgetItem{
		ClientID:      clientID,
		Category:      input.Category,
		Name:          input.Name,
		EstimatedCost: input.EstimatedCost,
		ActualCost:    input.ActualCost,
		PerGuest:      input.PerGuest,
		CostPerGuest:  input.CostPerGuest,
		Notes:         input.Notes,
	}
	if err := storage.DB.Create(&item).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// A fresh per-guest line starts from the current accepted count.
	if item.PerGuest {
		if _, err := services.ReconcileBudget(storage.DB, clientID); err == nil {
			storage.DB.First(&item, item.ID)
		}
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(item)
}

func UpdateBudgetItem(ctx iris.Context) {
	itemID := ctx.Params().GetUintDefault("id", 0)

	var item models.BudgetItem
	err := storage.DB.First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateNotFound(ctx)
		return
	}
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if _, err := services.RequireClient(storage.DB, utils.CompanyID(ctx), item.ClientID); err != nil {
		respondServiceError(err, ctx)
		return
	}

	var input BudgetItemUpdateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.EstimatedCost != nil {
		item.EstimatedCost = *input.EstimatedCost
	}
	if input.ActualCost != nil {
		item.ActualCost = *input.ActualCost
	}
	if input.Paid != nil {
		item.Paid = *input.Paid
	}
	if input.PerGuest != nil {
		item.PerGuest = *input.PerGuest
	}
	if input.CostPerGuest != nil {
		item.CostPerGuest = *input.CostPerGuest
	}
	if input.Notes != nil {
		item.Notes = *input.Notes
	}

	if err := storage.DB.Save(&item).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if item.PerGuest {
		if _, err := services.ReconcileBudget(storage.DB, item.ClientID); err == nil {
			storage.DB.First(&item, item.ID)
		}
	}

	ctx.JSON(item)
}

// RecalculateBudget is the out-of-band repair for per-guest lines, e.g.
// after accepted guests were deleted (deletion does not reconcile).
func RecalculateBudget(ctx iris.Context) {
	clientID := ctx.Params().GetUintDefault("id", 0)

	if _, err := services.RequireClient(storage.DB, utils.CompanyID(ctx), clientID); err != nil {
		respondServiceError(err, ctx)
		return
	}

	touched, err := services.ReconcileBudget(storage.DB, clientID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"updatedItemCount": touched})
}
