package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bonnavitta/chatbot-vendas/internal/bot"
	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

// BotHandler expõe a conversa por REST, para testes e integrações fora dos
// webhooks de canal.
type BotHandler struct {
	controller *bot.Controller
	logger     *zap.Logger
}

// NewBotHandler cria o handler da conversa.
func NewBotHandler(controller *bot.Controller, logger *zap.Logger) *BotHandler {
	return &BotHandler{controller: controller, logger: logger}
}

// Message trata POST /api/bot/message: um turno da conversa para o par
// (canal, chatId) informado.
func (h *BotHandler) Message(c *fiber.Ctx) error {
	var req models.MensagemBotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Corpo da requisição inválido",
		})
	}
	if !models.CanalValido(req.Canal) || req.ChatID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Canal ou chatId inválidos",
		})
	}

	resp, err := h.controller.ProcessarMensagem(c.Context(), models.Canal(req.Canal), req.ChatID, req.Mensagem)
	if err != nil {
		h.logger.Error("erro ao processar mensagem via api",
			zap.String("canal", req.Canal),
			zap.String("chatId", req.ChatID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao processar a mensagem",
		})
	}
	return c.JSON(resp)
}
