package routers

import (
	"net/http"
	"time"

	"dentalbot-service/internal/app/config"
	"dentalbot-service/internal/app/delivery/http/controllers"
	"dentalbot-service/internal/app/delivery/http/middlewares"
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	whatsAppController *controllers.WhatsAppController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds)*time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.BuildSuccessResponse(w, constvars.StatusOK, internalConfig.App.Version, nil)
	})

	router.Route("/api", func(r chi.Router) {
		r.Route("/whatsapp", func(r chi.Router) {
			attachWhatsAppRoutes(r, whatsAppController)
		})
	})
}
