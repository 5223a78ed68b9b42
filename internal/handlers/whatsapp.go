package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bonnavitta/chatbot-vendas/internal/bot"
	"github.com/bonnavitta/chatbot-vendas/internal/models"
	"github.com/bonnavitta/chatbot-vendas/internal/services"
)

// WhatsAppHandler recebe as notificações do webhook da Cloud API. Como no
// Telegram, o webhook é confirmado com 200 na hora e o turno roda em
// goroutine.
type WhatsAppHandler struct {
	controller  *bot.Controller
	sender      services.WhatsAppSender
	verifyToken string
	logger      *zap.Logger
}

// NewWhatsAppHandler cria o handler do webhook do WhatsApp.
func NewWhatsAppHandler(controller *bot.Controller, sender services.WhatsAppSender, verifyToken string, logger *zap.Logger) *WhatsAppHandler {
	return &WhatsAppHandler{
		controller:  controller,
		sender:      sender,
		verifyToken: verifyToken,
		logger:      logger,
	}
}

// notificacaoWhatsApp é o recorte do payload da Cloud API que interessa: a
// primeira mensagem de texto ou resposta interativa da primeira entrada.
type notificacaoWhatsApp struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					ID   string `json:"id"`
					From string `json:"from"`
					Type string `json:"type"`
					Text *struct {
						Body string `json:"body"`
					} `json:"text"`
					Interactive *struct {
						ButtonReply *struct {
							ID string `json:"id"`
						} `json:"button_reply"`
						ListReply *struct {
							ID string `json:"id"`
						} `json:"list_reply"`
					} `json:"interactive"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// VerifyWebhook trata GET /webhook/whatsapp, o handshake de inscrição da
// Cloud API: devolve o challenge quando o verify token confere.
func (h *WhatsAppHandler) VerifyWebhook(c *fiber.Ctx) error {
	modo := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if modo == "subscribe" && token != "" && token == h.verifyToken {
		h.logger.Info("webhook do whatsapp verificado")
		return c.SendString(challenge)
	}
	return c.SendStatus(fiber.StatusForbidden)
}

// Webhook trata POST /webhook/whatsapp. Notificações sem mensagem (status de
// entrega, payload ilegível) são engolidas com 200.
func (h *WhatsAppHandler) Webhook(c *fiber.Ctx) error {
	var notificacao notificacaoWhatsApp
	if err := c.BodyParser(&notificacao); err != nil {
		h.logger.Warn("notificação do whatsapp ilegível", zap.Error(err))
		return c.SendStatus(fiber.StatusOK)
	}

	numero, texto, mensagemID := extrairTurnoWhatsApp(notificacao)
	if numero == "" || texto == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	go h.processar(numero, texto, mensagemID)

	return c.SendStatus(fiber.StatusOK)
}

func extrairTurnoWhatsApp(n notificacaoWhatsApp) (numero, texto, mensagemID string) {
	if len(n.Entry) == 0 || len(n.Entry[0].Changes) == 0 {
		return "", "", ""
	}
	mensagens := n.Entry[0].Changes[0].Value.Messages
	if len(mensagens) == 0 {
		return "", "", ""
	}

	m := mensagens[0]
	switch {
	case m.Text != nil:
		return m.From, m.Text.Body, m.ID
	case m.Interactive != nil && m.Interactive.ButtonReply != nil:
		return m.From, m.Interactive.ButtonReply.ID, m.ID
	case m.Interactive != nil && m.Interactive.ListReply != nil:
		return m.From, m.Interactive.ListReply.ID, m.ID
	}
	return "", "", ""
}

// Capacidades opcionais do provedor: recibo de leitura e botões de resposta
// rápida existem na Cloud API mas não no Twilio.
type marcadorDeLeitura interface {
	MarcarComoLida(ctx context.Context, messageID string) error
}

type remetenteComBotoes interface {
	EnviarMensagemComBotoes(ctx context.Context, numeroDestino, texto string, botoes []models.OpcaoMenu) error
}

func (h *WhatsAppHandler) processar(numero, texto, mensagemID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if marcador, ok := h.sender.(marcadorDeLeitura); ok && mensagemID != "" {
		if err := marcador.MarcarComoLida(ctx, mensagemID); err != nil {
			h.logger.Warn("falha ao marcar mensagem como lida", zap.Error(err))
		}
	}

	resp, err := h.controller.ProcessarMensagem(ctx, models.CanalWhatsApp, numero, texto)
	if err != nil {
		h.logger.Error("erro ao processar turno do whatsapp",
			zap.String("numero", numero),
			zap.Error(err),
		)
		return
	}

	if resp.Grafico != "" {
		err := h.sender.EnviarImagem(ctx, numero, resp.Grafico, resp.Resposta)
		if err == nil {
			return
		}
		h.logger.Warn("falha ao enviar gráfico, caindo para texto",
			zap.String("numero", numero),
			zap.Error(err),
		)
	}

	if remetente, ok := h.sender.(remetenteComBotoes); ok && len(resp.Opcoes) > 0 && len(resp.Opcoes) <= 3 {
		err := remetente.EnviarMensagemComBotoes(ctx, numero, resp.Resposta, resp.Opcoes)
		if err == nil {
			return
		}
		h.logger.Warn("falha ao enviar botões, caindo para texto",
			zap.String("numero", numero),
			zap.Error(err),
		)
	}

	if err := h.sender.EnviarMensagem(ctx, numero, resp.TextoComOpcoes()); err != nil {
		h.logger.Error("erro ao enviar resposta ao whatsapp",
			zap.String("numero", numero),
			zap.Error(err),
		)
	}
}
