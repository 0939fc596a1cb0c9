package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"smart-parking/internal/domain/user"
	"smart-parking/internal/handler/api"
	"smart-parking/internal/handler/middleware"
	"smart-parking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	quoteHandler *api.QuoteHandler,
	reservationHandler *api.ReservationHandler,
	subscriptionHandler *api.SubscriptionHandler,
	tariffHandler *api.TariffHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, quoteHandler, reservationHandler, subscriptionHandler, tariffHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	quoteHandler *api.QuoteHandler,
	reservationHandler *api.ReservationHandler,
	subscriptionHandler *api.SubscriptionHandler,
	tariffHandler *api.TariffHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/plans", Handler: subscriptionHandler.ListPlans},
		})

		spots := apiGroup.Group("/spots")
		spots.Use(authMiddleware.RequireAuth())
		{
			addRoutes(spots, []route{
				{Method: http.MethodPost, Path: "/price", Handler: quoteHandler.GetPrice},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.GetUserReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
				{Method: http.MethodPost, Path: "/:id/extend", Handler: reservationHandler.ExtendReservation},
				{Method: http.MethodDelete, Path: "/:id", Handler: reservationHandler.CancelReservation},
			})
		}

		subscriptions := apiGroup.Group("/subscriptions")
		subscriptions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(subscriptions, []route{
				{Method: http.MethodPost, Path: "", Handler: subscriptionHandler.Purchase},
				{Method: http.MethodGet, Path: "", Handler: subscriptionHandler.ListByUser},
				{Method: http.MethodGet, Path: "/active", Handler: subscriptionHandler.GetActive},
				{Method: http.MethodPost, Path: "/:id/renew", Handler: subscriptionHandler.Renew},
				{Method: http.MethodDelete, Path: "/:id", Handler: subscriptionHandler.Cancel},
			})
		}

		tariffs := apiGroup.Group("/tariffs")
		tariffs.Use(authMiddleware.RequireAuth())
		{
			addRoutes(tariffs, []route{
				{Method: http.MethodGet, Path: "/zones", Handler: tariffHandler.ListZones},
				{Method: http.MethodGet, Path: "/zones/:id/spots", Handler: tariffHandler.ListZoneSpots},
				// Rule internals (priorities, validity windows) are operator-facing
				{Method: http.MethodGet, Path: "/rules", Handler: tariffHandler.ListRules,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleOperator)}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
