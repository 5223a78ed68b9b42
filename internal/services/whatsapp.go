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

// WhatsAppSender abstrai o provedor de envio de WhatsApp. O corpo do bot só
// conhece esta interface; o provedor concreto vem da configuração.
type WhatsAppSender interface {
	EnviarMensagem(ctx context.Context, numeroDestino, texto string) error
	EnviarImagem(ctx context.Context, numeroDestino, pngBase64, legenda string) error
}

const metaGraphAPIBase = "https://graph.facebook.com/v18.0"

// MetaWhatsAppService envia mensagens pela Cloud API da Meta. Imagens são
// primeiro enviadas ao endpoint de mídia e depois referenciadas pelo id.
type MetaWhatsAppService struct {
	httpClient    *http.Client
	baseURL       string
	phoneNumberID string
	accessToken   string
	logger        *zap.Logger
}

// NewMetaWhatsAppService cria o provedor da Cloud API da Meta.
func NewMetaWhatsAppService(phoneNumberID, accessToken string, logger *zap.Logger) *MetaWhatsAppService {
	return &MetaWhatsAppService{
		httpClient:    &http.Client{Timeout: 20 * time.Second},
		baseURL:       metaGraphAPIBase,
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
		logger:        logger,
	}
}

func (s *MetaWhatsAppService) postarJSON(ctx context.Context, url string, payload any, destino any) error {
	corpo, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(corpo))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detalhe, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("cloud api respondeu %d: %s", resp.StatusCode, detalhe)
	}
	if destino != nil {
		return json.NewDecoder(resp.Body).Decode(destino)
	}
	return nil
}

// EnviarMensagem envia texto simples para o número informado.
func (s *MetaWhatsAppService) EnviarMensagem(ctx context.Context, numeroDestino, texto string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                numeroDestino,
		"type":              "text",
		"text":              map[string]string{"body": texto},
	}

	url := fmt.Sprintf("%s/%s/messages", s.baseURL, s.phoneNumberID)
	if err := s.postarJSON(ctx, url, payload, nil); err != nil {
		return fmt.Errorf("whatsapp enviar mensagem: %w", err)
	}
	s.logger.Info("mensagem enviada ao whatsapp", zap.String("para", numeroDestino))
	return nil
}

// EnviarMensagemComBotoes envia texto com botões de resposta rápida. A Cloud
// API aceita no máximo três botões; quem chama decide quando cair para texto.
func (s *MetaWhatsAppService) EnviarMensagemComBotoes(ctx context.Context, numeroDestino, texto string, botoes []models.OpcaoMenu) error {
	if len(botoes) == 0 || len(botoes) > 3 {
		return fmt.Errorf("whatsapp aceita de 1 a 3 botões, recebidos %d", len(botoes))
	}

	acoes := make([]map[string]any, 0, len(botoes))
	for _, b := range botoes {
		titulo := b.Texto
		if b.Emoji != "" {
			titulo = b.Emoji + " " + b.Texto
		}
		// A Cloud API limita o título do botão a 20 caracteres.
		if runes := []rune(titulo); len(runes) > 20 {
			titulo = string(runes[:20])
		}
		acoes = append(acoes, map[string]any{
			"type": "reply",
			"reply": map[string]string{
				"id":    b.ID,
				"title": titulo,
			},
		})
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                numeroDestino,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "button",
			"body":   map[string]string{"text": texto},
			"action": map[string]any{"buttons": acoes},
		},
	}

	url := fmt.Sprintf("%s/%s/messages", s.baseURL, s.phoneNumberID)
	if err := s.postarJSON(ctx, url, payload, nil); err != nil {
		return fmt.Errorf("whatsapp enviar botões: %w", err)
	}
	s.logger.Info("mensagem com botões enviada ao whatsapp",
		zap.String("para", numeroDestino),
		zap.Int("botoes", len(botoes)),
	)
	return nil
}

// MarcarComoLida envia o recibo de leitura da mensagem recebida.
func (s *MetaWhatsAppService) MarcarComoLida(ctx context.Context, messageID string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"status":            "read",
		"message_id":        messageID,
	}

	url := fmt.Sprintf("%s/%s/messages", s.baseURL, s.phoneNumberID)
	if err := s.postarJSON(ctx, url, payload, nil); err != nil {
		return fmt.Errorf("whatsapp marcar como lida: %w", err)
	}
	return nil
}

// EnviarImagem sobe o PNG para o endpoint de mídia e envia a mensagem de
// imagem referenciando o id devolvido.
func (s *MetaWhatsAppService) EnviarImagem(ctx context.Context, numeroDestino, pngBase64, legenda string) error {
	mediaID, err := s.subirMidia(ctx, pngBase64)
	if err != nil {
		return fmt.Errorf("whatsapp enviar imagem: %w", err)
	}

	imagem := map[string]any{"id": mediaID}
	if legenda != "" {
		imagem["caption"] = legenda
	}
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                numeroDestino,
		"type":              "image",
		"image":             imagem,
	}

	url := fmt.Sprintf("%s/%s/messages", s.baseURL, s.phoneNumberID)
	if err := s.postarJSON(ctx, url, payload, nil); err != nil {
		return fmt.Errorf("whatsapp enviar imagem: %w", err)
	}
	s.logger.Info("imagem enviada ao whatsapp",
		zap.String("para", numeroDestino),
		zap.String("mediaId", mediaID),
	)
	return nil
}

func (s *MetaWhatsAppService) subirMidia(ctx context.Context, pngBase64 string) (string, error) {
	imagem, err := base64.StdEncoding.DecodeString(pngBase64)
	if err != nil {
		return "", fmt.Errorf("imagem base64 inválida: %w", err)
	}

	var corpo bytes.Buffer
	escritor := multipart.NewWriter(&corpo)
	_ = escritor.WriteField("messaging_product", "whatsapp")
	_ = escritor.WriteField("type", "image/png")
	parte, err := escritor.CreateFormFile("file", "grafico.png")
	if err != nil {
		return "", err
	}
	if _, err := parte.Write(imagem); err != nil {
		return "", err
	}
	if err := escritor.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/media", s.baseURL, s.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &corpo)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Content-Type", escritor.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detalhe, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("upload de mídia respondeu %d: %s", resp.StatusCode, detalhe)
	}

	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.ID == "" {
		return "", fmt.Errorf("upload de mídia sem id na resposta")
	}
	return parsed.ID, nil
}
