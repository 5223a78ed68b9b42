package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bonnavitta/chatbot-vendas/internal/auth"
	"github.com/bonnavitta/chatbot-vendas/internal/handlers"
	"github.com/bonnavitta/chatbot-vendas/internal/middleware"
	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

// Handlers agrupa os handlers registrados pelas rotas. Os handlers de canal
// são nil quando o canal está desligado na configuração.
type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Bot      *handlers.BotHandler
	Reports  *handlers.ReportsHandler
	Telegram *handlers.TelegramHandler
	WhatsApp *handlers.WhatsAppHandler
}

// SetupRoutes registra todas as rotas da API.
func SetupRoutes(app *fiber.App, authSvc *auth.Service, h Handlers) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Chatbot de Vendas BonnaVitta",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health":           "/health",
				"login":            "/api/auth/login",
				"bot":              "/api/bot/message",
				"webhook_telegram": "/api/webhook/telegram",
				"webhook_whatsapp": "/api/webhook/whatsapp",
			},
		})
	})

	app.Get("/health", h.Health.Check)

	api := app.Group("/api")

	autenticacao := api.Group("/auth")
	autenticacao.Post("/login", h.Auth.Login)
	autenticacao.Get("/validate", middleware.JWTProtected(authSvc), h.Auth.Verify)

	protegido := middleware.JWTProtected(authSvc)

	botAPI := api.Group("/bot", protegido)
	botAPI.Post("/message", h.Bot.Message)

	relatorios := api.Group("/reports", protegido, middleware.RequireRoles(
		string(models.RoleAdmin),
		string(models.RoleDiretoria),
		string(models.RoleComercial),
	))
	relatorios.Get("/ranking-produtos", h.Reports.RankingProdutos)
	relatorios.Get("/ticket-medio", h.Reports.TicketMedio)
	relatorios.Get("/vendas-dia", h.Reports.VendasPorDia)
	relatorios.Get("/vendas-vendedor", h.Reports.VendasPorVendedor)
	relatorios.Get("/detalhe-fabricante", h.Reports.DetalheFabricante)

	webhook := api.Group("/webhook")
	if h.Telegram != nil {
		webhook.Get("/telegram", h.Telegram.Verify)
		webhook.Post("/telegram", h.Telegram.Webhook)
	}
	if h.WhatsApp != nil {
		webhook.Get("/whatsapp", h.WhatsApp.VerifyWebhook)
		webhook.Post("/whatsapp", h.WhatsApp.Webhook)
	}
}
