package routes

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/nitinthakurcode/weddingflo-sub007/models"
	"github.com/nitinthakurcode/weddingflo-sub007/services"
	"github.com/nitinthakurcode/weddingflo-sub007/storage"
	"github.com/nitinthakurcode/weddingflo-sub007/utils"
)

type ClientCreateInput struct {
	CoupleName   string `json:"coupleName" validate:"required"`
	EventDate    string `json:"eventDate"` // "2006-01-02"
	Venue        string `json:"venue"`
	City         string `json:"city"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes"`
}

func CreateClient(ctx iris.Context) {
	var input ClientCreateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	client := models.Client{
		CompanyID:    utils.CompanyID(ctx),
		CoupleName:   input.CoupleName,
		Venue:        input.Venue,
		City:         input.City,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Notes:        input.Notes,
		Status:       "active",
	}
	if input.EventDate != "" {
		eventDate, err := time.Parse("2006-01-02", input.EventDate)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid eventDate format", ctx)
			return
		}
		client.EventDate = &eventDate
	}

	if err := storage.DB.Create(&client).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(client)
}

func GetClients(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := ctx.URLParamIntDefault("perPage", 50)
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	companyID := utils.CompanyID(ctx)

	var total int64
	if err := storage.DB.Model(&models.Client{}).
		Where("company_id = ?", companyID).Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var clients []models.Client
	result := storage.DB.
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&clients)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, clients, page, perPage, total)
}

func GetClient(ctx iris.Context) {
	clientID := ctx.Params().GetUintDefault("id", 0)

	client, err := services.RequireClient(storage.DB, utils.CompanyID(ctx), clientID)
	if err != nil {
		respondServiceError(err, ctx)
		return
	}

	ctx.JSON(client)
}

// DeleteClient soft-deletes; the tenant guard treats the client as gone from
// then on, so its guests can no longer be mutated.
func DeleteClient(ctx iris.Context) {
	clientID := ctx.Params().GetUintDefault("id", 0)

	client, err := services.RequireClient(storage.DB, utils.CompanyID(ctx), clientID)
	if err != nil {
		respondServiceError(err, ctx)
		return
	}

	if err := storage.DB.Delete(client).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}
