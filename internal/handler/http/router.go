package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/user-profile-service/internal/config"
)

// NewRouter собирает цепочку middleware и маршруты пользователей.
// Логгер запросов берётся из глобального log.Logger на момент вызова.
func NewRouter(cfg config.HTTPConfig, userHandler *UserHandler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(hlog.NewHandler(log.Logger))
	router.Use(hlog.MethodHandler("method"))
	router.Use(hlog.URLHandler("path"))
	router.Use(hlog.RemoteAddrHandler("remote_addr"))
	router.Use(hlog.AccessHandler(logAccess))
	router.Use(middleware.Recoverer)
	router.Use(securityHeaders)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	router.Use(middleware.RequestSize(cfg.MaxBodyBytes))

	userHandler.RegisterRoutes(router)

	return router
}
