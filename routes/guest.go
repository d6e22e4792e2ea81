package routes

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/rs/zerolog/log"

	"github.com/nitinthakurcode/weddingflo-sub007/models"
	"github.com/nitinthakurcode/weddingflo-sub007/services"
	"github.com/nitinthakurcode/weddingflo-sub007/storage"
	"github.com/nitinthakurcode/weddingflo-sub007/utils"
)

const statsCacheTTL = 5 * time.Minute

func cascadeOptions(ctx iris.Context) services.CascadeOptions {
	return services.CascadeOptions{
		ActorUserID: utils.UserID(ctx),
		RequestID:   utils.RequestID(ctx),
	}
}

// respondServiceError maps engine error kinds onto HTTP statuses.
func respondServiceError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
	case errors.Is(err, services.ErrForbidden):
		utils.CreateForbidden(ctx)
	case errors.Is(err, services.ErrNotFound):
		utils.CreateNotFound(ctx)
	default:
		log.Error().Err(err).Str("requestID", utils.RequestID(ctx)).Msg("guest mutation failed")
		utils.CreateInternalServerError(ctx)
	}
}

func CreateGuest(ctx iris.Context) {
	clientID := ctx.Params().GetUintDefault("id", 0)

	var input services.GuestCreateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	guest, report, err := services.CreateGuestCascade(
		storage.DB, utils.CompanyID(ctx), clientID, input, cascadeOptions(ctx))
	if err != nil {
		respondServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"guest": guest, "cascade": report.Actions})
}

type BulkGuestInput struct {
	Guests []services.GuestCreateInput `json:"guests" validate:"required,min=1,dive"`
}

// CreateGuestsBulk runs one cascade per guest. Each guest commits on its
// own; a failure stops the batch but keeps what already landed.
func CreateGuestsBulk(ctx iris.Context) {
	clientID := ctx.Params().GetUintDefault("id", 0)

	var input BulkGuestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	companyID := utils.CompanyID(ctx)
	opts := cascadeOptions(ctx)

	created := make([]*models.Guest, 0, len(input.Guests))
	cascade := make([]services.CascadeAction, 0)
	for _, guestInput := range input.Guests {
		guest, report, err := services.CreateGuestCascade(storage.DB, companyID, clientID, guestInput, opts)
		if err != nil {
			respondServiceError(err, ctx)
			return
		}
		created = append(created, guest)
		cascade = append(cascade, report.Actions...)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"guests": created, "cascade": cascade})
}

func UpdateGuest(ctx iris.Context) {
	guestID := ctx.Params().GetUintDefault("id", 0)

	var input services.GuestUpdateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	guest, report, err := services.UpdateGuestCascade(
		storage.DB, utils.CompanyID(ctx), guestID, input, cascadeOptions(ctx))
	if err != nil {
		respondServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"guest": guest, "cascade": report.Actions})
}

func DeleteGuest(ctx iris.Context) {
	guestID := ctx.Params().GetUintDefault("id", 0)

	report, err := services.DeleteGuestCascade(
		storage.DB, utils.CompanyID(ctx), guestID, cascadeOptions(ctx))
	if err != nil {
		respondServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "cascade": report.Actions})
}

type RSVPInput struct {
	RSVPStatus string `json:"rsvpStatus" validate:"required,oneof=pending accepted declined"`
}

// UpdateGuestRSVP is the RSVP-only mutation; it rides the same orchestrator
// so an acceptance still triggers budget reconciliation.
func UpdateGuestRSVP(ctx iris.Context) {
	guestID := ctx.Params().GetUintDefault("id", 0)

	var input RSVPInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	patch := services.GuestUpdateInput{RSVPStatus: &input.RSVPStatus}
	guest, report, err := services.UpdateGuestCascade(
		storage.DB, utils.CompanyID(ctx), guestID, patch, cascadeOptions(ctx))
	if err != nil {
		respondServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"guest": guest, "cascade": report.Actions})
}

type CheckInInput struct {
	CheckedIn *bool `json:"checkedIn"`
}

func CheckInGuest(ctx iris.Context) {
	guestID := ctx.Params().GetUintDefault("id", 0)

	var input CheckInInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	checkedIn := true
	if input.CheckedIn != nil {
		checkedIn = *input.CheckedIn
	}

	patch := services.GuestUpdateInput{CheckedIn: &checkedIn}
	guest, report, err := services.UpdateGuestCascade(
		storage.DB, utils.CompanyID(ctx), guestID, patch, cascadeOptions(ctx))
	if err != nil {
		respondServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"guest": guest, "cascade": report.Actions})
}

func GetClientGuests(ctx iris.Context) {
	clientID := ctx.Params().GetUintDefault("id", 0)

	if _, err := services.RequireClient(storage.DB, utils.CompanyID(ctx), clientID); err != nil {
		respondServiceError(err, ctx)
		return
	}

	var guests []models.Guest
	result := storage.DB.
		Preload("HotelReservations").
		Preload("TransportLegs").
		Where("client_id = ?", clientID).
		Order("last_name, first_name").
		Find(&guests)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(guests)
}

type guestStats struct {
	Total      int64 `json:"total"`
	Accepted   int64 `json:"accepted"`
	Declined   int64 `json:"declined"`
	Pending    int64 `json:"pending"`
	CheckedIn  int64 `json:"checkedIn"`
	HeadsTotal int64 `json:"headsTotal"` // accepted guests weighted by party size
}

// GetClientGuestStats serves the per-client RSVP summary, cached in Redis
// until the next cascade invalidates it.
func GetClientGuestStats(ctx iris.Context) {
	clientID := ctx.Params().GetUintDefault("id", 0)

	if _, err := services.RequireClient(storage.DB, utils.CompanyID(ctx), clientID); err != nil {
		respondServiceError(err, ctx)
		return
	}

	cacheKey := services.GuestStatsCacheKey(clientID)
	if storage.Redis != nil {
		if cached, err := storage.Redis.Get(ctx.Request().Context(), cacheKey).Result(); err == nil {
			ctx.ContentType("application/json")
			ctx.WriteString(cached)
			return
		}
	}

	var stats guestStats
	storage.DB.Model(&models.Guest{}).Where("client_id = ?", clientID).Count(&stats.Total)
	storage.DB.Model(&models.Guest{}).
		Where("client_id = ? AND rsvp_status = ?", clientID, models.RSVPAccepted).Count(&stats.Accepted)
	storage.DB.Model(&models.Guest{}).
		Where("client_id = ? AND rsvp_status = ?", clientID, models.RSVPDeclined).Count(&stats.Declined)
	storage.DB.Model(&models.Guest{}).
		Where("client_id = ? AND rsvp_status = ?", clientID, models.RSVPPending).Count(&stats.Pending)
	storage.DB.Model(&models.Guest{}).
		Where("client_id = ? AND checked_in = ?", clientID, true).Count(&stats.CheckedIn)
	storage.DB.Model(&models.Guest{}).
		Where("client_id = ? AND rsvp_status = ?", clientID, models.RSVPAccepted).
		Select("COALESCE(SUM(party_size), 0)").Scan(&stats.HeadsTotal)

	if storage.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			storage.Redis.Set(ctx.Request().Context(), cacheKey, payload, statsCacheTTL)
		}
	}

	ctx.JSON(stats)
}
