package main

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nitinthakurcode/weddingflo-sub007/routes"
	"github.com/nitinthakurcode/weddingflo-sub007/storage"
	"github.com/nitinthakurcode/weddingflo-sub007/utils"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With, X-Request-ID")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})
	app.Use(iris.Compression)
	app.Use(utils.RequestIDMiddleware)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})
	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/users")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
	}

	api := app.Party("/api", accessTokenVerifierMiddleware, utils.TenantMiddleware)

	clients := api.Party("/clients")
	{
		clients.Post("", routes.CreateClient)
		clients.Get("", routes.GetClients)
		clients.Get("/{id:uint}", routes.GetClient)
		clients.Delete("/{id:uint}", utils.AdminOnlyMiddleware, routes.DeleteClient)

		clients.Post("/{id:uint}/guests", routes.CreateGuest)
		clients.Post("/{id:uint}/guests/bulk", routes.CreateGuestsBulk)
		clients.Get("/{id:uint}/guests", routes.GetClientGuests)
		clients.Get("/{id:uint}/guest-stats", routes.GetClientGuestStats)

		clients.Get("/{id:uint}/budget-items", routes.GetBudgetItems)
		clients.Post("/{id:uint}/budget-items", routes.CreateBudgetItem)
		clients.Post("/{id:uint}/budget-items/recalculate", routes.RecalculateBudget)
	}

	guests := api.Party("/guests")
	{
		guests.Patch("/{id:uint}", routes.UpdateGuest)
		guests.Delete("/{id:uint}", routes.DeleteGuest)
		guests.Patch("/{id:uint}/rsvp", routes.UpdateGuestRSVP)
		guests.Patch("/{id:uint}/check-in", routes.CheckInGuest)
	}

	budget := api.Party("/budget-items")
	{
		budget.Patch("/{id:uint}", routes.UpdateBudgetItem)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	log.Info().Str("port", port).Msg("starting server")
	app.Listen(":" + port)
}
