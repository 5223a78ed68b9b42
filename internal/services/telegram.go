package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

const telegramAPIBase = "https://api.telegram.org/bot"

// TelegramService fala com a Bot API do Telegram. Todas as chamadas recebem
// context e devolvem erro quando a API responde ok=false.
type TelegramService struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewTelegramService cria o serviço do Telegram para o token do bot.
func NewTelegramService(botToken string, logger *zap.Logger) *TelegramService {
	return &TelegramService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    telegramAPIBase + botToken,
		logger:     logger,
	}
}

type respostaTelegram struct {
	OK        bool   `json:"ok"`
	Descricao string `json:"description"`
}

func (s *TelegramService) chamar(ctx context.Context, metodo string, payload any) error {
	corpo, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", metodo, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/"+metodo, bytes.NewReader(corpo))
	if err != nil {
		return fmt.Errorf("telegram %s: %w", metodo, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", metodo, err)
	}
	defer resp.Body.Close()

	return decodificarRespostaTelegram(metodo, resp.Body)
}

func decodificarRespostaTelegram(metodo string, corpo io.Reader) error {
	var parsed respostaTelegram
	if err := json.NewDecoder(corpo).Decode(&parsed); err != nil {
		return fmt.Errorf("telegram %s: resposta ilegível: %w", metodo, err)
	}
	if !parsed.OK {
		return fmt.Errorf("telegram %s: %s", metodo, parsed.Descricao)
	}
	return nil
}

// EnviarMensagem envia texto simples em Markdown.
func (s *TelegramService) EnviarMensagem(ctx context.Context, chatID, texto string) error {
	err := s.chamar(ctx, "sendMessage", map[string]any{
		"chat_id":    chatID,
		"text":       texto,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return err
	}
	s.logger.Info("mensagem enviada ao telegram", zap.String("chatId", chatID))
	return nil
}

// EnviarTeclado envia texto com teclado inline; cada opção vira um botão cujo
// callback é o id da opção.
func (s *TelegramService) EnviarTeclado(ctx context.Context, chatID, texto string, opcoes []models.OpcaoMenu) error {
	if len(opcoes) == 0 {
		return s.EnviarMensagem(ctx, chatID, texto)
	}

	teclado := make([][]map[string]string, 0, len(opcoes))
	for _, o := range opcoes {
		rotulo := o.Texto
		if o.Emoji != "" {
			rotulo = o.Emoji + " " + o.Texto
		}
		teclado = append(teclado, []map[string]string{{
			"text":          rotulo,
			"callback_data": o.ID,
		}})
	}

	err := s.chamar(ctx, "sendMessage", map[string]any{
		"chat_id":      chatID,
		"text":         texto,
		"parse_mode":   "Markdown",
		"reply_markup": map[string]any{"inline_keyboard": teclado},
	})
	if err != nil {
		return err
	}
	s.logger.Info("teclado enviado ao telegram",
		zap.String("chatId", chatID),
		zap.Int("opcoes", len(opcoes)),
	)
	return nil
}

// EnviarFoto envia um PNG codificado em base64 como upload multipart.
func (s *TelegramService) EnviarFoto(ctx context.Context, chatID, pngBase64, legenda string) error {
	imagem, err := base64.StdEncoding.DecodeString(pngBase64)
	if err != nil {
		return fmt.Errorf("telegram sendPhoto: imagem base64 inválida: %w", err)
	}

	var corpo bytes.Buffer
	escritor := multipart.NewWriter(&corpo)
	_ = escritor.WriteField("chat_id", chatID)
	if legenda != "" {
		_ = escritor.WriteField("caption", legenda)
		_ = escritor.WriteField("parse_mode", "Markdown")
	}
	parte, err := escritor.CreateFormFile("photo", "grafico.png")
	if err != nil {
		return fmt.Errorf("telegram sendPhoto: %w", err)
	}
	if _, err := parte.Write(imagem); err != nil {
		return fmt.Errorf("telegram sendPhoto: %w", err)
	}
	if err := escritor.Close(); err != nil {
		return fmt.Errorf("telegram sendPhoto: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/sendPhoto", &corpo)
	if err != nil {
		return fmt.Errorf("telegram sendPhoto: %w", err)
	}
	req.Header.Set("Content-Type", escritor.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram sendPhoto: %w", err)
	}
	defer resp.Body.Close()

	if err := decodificarRespostaTelegram("sendPhoto", resp.Body); err != nil {
		return err
	}
	s.logger.Info("foto enviada ao telegram",
		zap.String("chatId", chatID),
		zap.Int("bytes", len(imagem)),
	)
	return nil
}

// DefinirWebhook registra a URL de webhook do bot, limitando os updates a
// mensagens e callbacks de teclado.
func (s *TelegramService) DefinirWebhook(ctx context.Context, urlWebhook, segredo string) error {
	payload := map[string]any{
		"url":             urlWebhook,
		"allowed_updates": []string{"message", "callback_query"},
	}
	if segredo != "" {
		payload["secret_token"] = segredo
	}
	if err := s.chamar(ctx, "setWebhook", payload); err != nil {
		return err
	}
	s.logger.Info("webhook do telegram definido", zap.String("url", urlWebhook))
	return nil
}

// RemoverWebhook desregistra o webhook do bot.
func (s *TelegramService) RemoverWebhook(ctx context.Context) error {
	if err := s.chamar(ctx, "deleteWebhook", map[string]any{}); err != nil {
		return err
	}
	s.logger.Info("webhook do telegram removido")
	return nil
}
