package routers

import (
	"dentalbot-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachWhatsAppRoutes(router chi.Router, controller *controllers.WhatsAppController) {
	router.Post("/webhook", controller.HandleWebhook)
	router.Post("/send", controller.HandleSendMessage)
	router.Get("/status", controller.HandleStatus)
	router.Post("/init", controller.HandleInit)
}
