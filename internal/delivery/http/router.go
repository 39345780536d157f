package http

import (
	"net/http"

	"github.com/frontandrew/viabus/internal/delivery/http/middleware"
	"github.com/frontandrew/viabus/internal/domain"
	"github.com/frontandrew/viabus/internal/pkg/config"
	"github.com/frontandrew/viabus/internal/pkg/jwt"
	"github.com/frontandrew/viabus/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router содержит все зависимости для HTTP роутера
type Router struct {
	authHandler   *AuthHandler
	routeHandler  *RouteHandler
	periodHandler *PeriodHandler
	reportHandler *ReportHandler
	tokenService  *jwt.TokenService
	config        *config.Config
	logger        logger.Logger
}

// NewRouter создает новый HTTP router
func NewRouter(
	authHandler *AuthHandler,
	routeHandler *RouteHandler,
	periodHandler *PeriodHandler,
	reportHandler *ReportHandler,
	tokenService *jwt.TokenService,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		authHandler:   authHandler,
		routeHandler:  routeHandler,
		periodHandler: periodHandler,
		reportHandler: reportHandler,
		tokenService:  tokenService,
		config:        config,
		logger:        logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: rt.config.CORS.AllowedOrigins,
		AllowedMethods: rt.config.CORS.AllowedMethods,
		AllowedHeaders: rt.config.CORS.AllowedHeaders,
	}))

	// Health check endpoint (публичный)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (без аутентификации)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", rt.authHandler.Register)
			r.Post("/login", rt.authHandler.Login)
		})

		// Справочная информация доступна без аутентификации
		r.Get("/routes", rt.routeHandler.ListRoutes)
		r.Get("/routes/{id}", rt.routeHandler.GetRoute)
		r.Get("/routes/{id}/trace", rt.routeHandler.GetTrace)
		r.Get("/routes/{id}/reports", rt.reportHandler.GetRouteReports)
		r.Get("/routes/{id}/times", rt.periodHandler.GetRouteTimes)
		r.Get("/routes/{id}/eta", rt.periodHandler.GetETA)
		r.Get("/periods", rt.periodHandler.ListPeriods)
		r.Get("/periods/current", rt.periodHandler.GetCurrentPeriod)
		r.Get("/periods/{id}", rt.periodHandler.GetPeriod)

		// Protected routes (требуют аутентификации)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(rt.tokenService))

			// Current user endpoints
			r.Get("/auth/me", rt.authHandler.GetMe)

			// Favorite endpoints
			r.Get("/routes/favorites/me", rt.routeHandler.GetMyFavorites)
			r.Post("/routes/{id}/favorite", rt.routeHandler.AddFavorite)
			r.Delete("/routes/{id}/favorite", rt.routeHandler.RemoveFavorite)

			// Report endpoints
			r.Route("/reports", func(r chi.Router) {
				r.Get("/me", rt.reportHandler.GetMyReports)
				r.Post("/", rt.reportHandler.CreateReport)
				r.Get("/{id}", rt.reportHandler.GetReport)
				r.Put("/{id}", rt.reportHandler.UpdateReport)
				r.Delete("/{id}", rt.reportHandler.DeleteReport)
			})

			// Admin only endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))

				r.Post("/routes", rt.routeHandler.CreateRoute)
				r.Put("/routes/{id}", rt.routeHandler.UpdateRoute)
				r.Delete("/routes/{id}", rt.routeHandler.DeleteRoute)
				r.Put("/routes/{id}/trace", rt.routeHandler.SetTrace)
				r.Put("/routes/{id}/stops", rt.routeHandler.ReplaceStops)

				r.Post("/periods", rt.periodHandler.CreatePeriod)
				r.Put("/periods/{id}", rt.periodHandler.UpdatePeriod)
				r.Delete("/periods/{id}", rt.periodHandler.DeletePeriod)

				r.Post("/route-times", rt.periodHandler.CreateRouteTime)
				r.Put("/route-times/{id}", rt.periodHandler.UpdateRouteTime)
				r.Delete("/route-times/{id}", rt.periodHandler.DeleteRouteTime)
			})
		})
	})

	return r
}
