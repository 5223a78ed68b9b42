package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bonnavitta/chatbot-vendas/internal/bot"
	"github.com/bonnavitta/chatbot-vendas/internal/models"
	"github.com/bonnavitta/chatbot-vendas/internal/services"
)

// TelegramHandler recebe os updates do webhook do Telegram. O webhook é
// confirmado com 200 imediatamente e o turno roda em goroutine; o Telegram
// reentrega updates não confirmados.
type TelegramHandler struct {
	controller *bot.Controller
	telegram   *services.TelegramService
	segredo    string
	logger     *zap.Logger
}

// NewTelegramHandler cria o handler do webhook do Telegram.
func NewTelegramHandler(controller *bot.Controller, telegram *services.TelegramService, segredo string, logger *zap.Logger) *TelegramHandler {
	return &TelegramHandler{
		controller: controller,
		telegram:   telegram,
		segredo:    segredo,
		logger:     logger,
	}
}

type atualizacaoTelegram struct {
	Message *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
	CallbackQuery *struct {
		Data    string `json:"data"`
		Message *struct {
			Chat struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		} `json:"message"`
	} `json:"callback_query"`
}

// Verify trata GET /api/webhook/telegram, a checagem manual da configuração
// do webhook: confere o token compartilhado passado na query.
func (h *TelegramHandler) Verify(c *fiber.Ctx) error {
	if h.segredo == "" || c.Query("token") != h.segredo {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Webhook trata POST /api/webhook/telegram. Payload ilegível ou update sem
// texto é engolido com 200 para o Telegram não reentregar.
func (h *TelegramHandler) Webhook(c *fiber.Ctx) error {
	if h.segredo != "" && c.Get("X-Telegram-Bot-Api-Secret-Token") != h.segredo {
		return c.SendStatus(fiber.StatusForbidden)
	}

	var update atualizacaoTelegram
	if err := c.BodyParser(&update); err != nil {
		h.logger.Warn("update do telegram ilegível", zap.Error(err))
		return c.SendStatus(fiber.StatusOK)
	}

	chatID, texto := extrairTurnoTelegram(update)
	if chatID == "" || texto == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	go h.processar(chatID, texto)

	return c.SendStatus(fiber.StatusOK)
}

func extrairTurnoTelegram(update atualizacaoTelegram) (chatID, texto string) {
	switch {
	case update.Message != nil:
		return strconv.FormatInt(update.Message.Chat.ID, 10), update.Message.Text
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return strconv.FormatInt(update.CallbackQuery.Message.Chat.ID, 10), update.CallbackQuery.Data
	}
	return "", ""
}

func (h *TelegramHandler) processar(chatID, texto string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := h.controller.ProcessarMensagem(ctx, models.CanalTelegram, chatID, texto)
	if err != nil {
		h.logger.Error("erro ao processar turno do telegram",
			zap.String("chatId", chatID),
			zap.Error(err),
		)
		return
	}

	if resp.Grafico != "" {
		err := h.telegram.EnviarFoto(ctx, chatID, resp.Grafico, resp.Resposta)
		if err == nil {
			return
		}
		h.logger.Warn("falha ao enviar gráfico, caindo para texto",
			zap.String("chatId", chatID),
			zap.Error(err),
		)
	}

	var envio error
	if len(resp.Opcoes) > 0 {
		envio = h.telegram.EnviarTeclado(ctx, chatID, resp.Resposta, resp.Opcoes)
	} else {
		envio = h.telegram.EnviarMensagem(ctx, chatID, resp.Resposta)
	}
	if envio != nil {
		h.logger.Error("erro ao enviar resposta ao telegram",
			zap.String("chatId", chatID),
			zap.Error(envio),
		)
	}
}
