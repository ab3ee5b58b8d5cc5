package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"wishwash-backend/config"
	"wishwash-backend/internal/auth"
	"wishwash-backend/internal/mail"
	"wishwash-backend/internal/mw"
	"wishwash-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, issuer *auth.TokenIssuer, mailer *mail.Mailer, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, issuer, mailer, cfg)
	authRequired := mw.Auth(issuer)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		users := api.Group("/usuarios")
		{
			users.POST("", handler.Signup)
			users.POST("/login", handler.Login)
			users.GET("", handler.ListUsers)
			users.GET("/:id", authRequired, mw.RequireSelf("id"), handler.GetUser)
			users.PUT("/:id", authRequired, mw.RequireSelf("id"), handler.UpdateUser)
			users.DELETE("/:id", authRequired, mw.RequireSelf("id"), handler.DeleteUser)
		}

		laundries := api.Group("/lavanderias")
		{
			laundries.POST("", handler.RegisterLaundry)
			laundries.GET("", caching, handler.ListLaundries)
			laundries.GET("/:id", handler.GetLaundry)
			laundries.GET("/proprietario/:id", authRequired, mw.RequireSelf("id"), handler.LaundriesByOwner)
			laundries.PUT("/:id", authRequired, handler.UpdateLaundry)
			laundries.DELETE("/:id", authRequired, handler.DeleteLaundry)
		}

		machines := api.Group("/maquinas")
		{
			machines.POST("", authRequired, handler.CreateMachine)
			machines.GET("/lavanderia/:id", handler.MachinesByLaundry)
			machines.GET("/lavanderia/:id/status", caching, handler.MachineStatusCounts)
			machines.GET("/:id", handler.GetMachine)
			machines.PUT("/:id", authRequired, handler.UpdateMachine)
			machines.DELETE("/:id", authRequired, handler.DeleteMachine)
			machines.PUT("/:id/status", authRequired, handler.SetMachineStatus)
			machines.GET("/:id/status", handler.DerivedMachineStatus)
			machines.GET("/:id/horarios", handler.MachineSlots)
			machines.POST("/:id/agendamentos", authRequired, handler.CreateBooking)
		}

		api.DELETE("/agendamentos/:id", authRequired, handler.CancelBooking)

		reviews := api.Group("/avaliacoes", authRequired)
		{
			reviews.POST("", handler.SubmitReview)
			reviews.GET("/lavanderia/:id", handler.ReviewsForLaundry)
			reviews.GET("/usuario/:id", handler.UserReview)
			reviews.GET("/verificar/:id", handler.CanReview)
			reviews.DELETE("/:id", handler.DeleteReview)
		}

		history := api.Group("/historico-lavagens", authRequired)
		{
			history.POST("", handler.CreateHistory)
			history.GET("/usuario/:id", mw.RequireSelf("id"), handler.HistoryByUser)
			history.GET("/lavanderia/:id", handler.HistoryByLaundry)
			history.PUT("/:id/avaliar", handler.RateHistory)
		}

		api.POST("/suporte", handler.CreateSupportTicket)
	}

	return r
}
