package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVerifyWebhookWhatsApp(t *testing.T) {
	h := NewWhatsAppHandler(nil, nil, "token-de-verificacao", zap.NewNop())
	app := fiber.New()
	app.Get("/webhook/whatsapp", h.VerifyWebhook)

	t.Run("handshake correto devolve o challenge", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=token-de-verificacao&hub.challenge=12345", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		corpo, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "12345", string(corpo))
	})

	t.Run("verify token errado responde 403", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=outro&hub.challenge=12345", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("sem modo subscribe responde 403", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/webhook/whatsapp?hub.verify_token=token-de-verificacao&hub.challenge=12345", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestWebhookTelegramSecret(t *testing.T) {
	h := NewTelegramHandler(nil, nil, "segredo-do-webhook", zap.NewNop())
	app := fiber.New()
	app.Post("/webhook/telegram", h.Webhook)

	t.Run("secret token errado responde 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil)
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "errado")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("update sem mensagem é aceito com 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil)
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "segredo-do-webhook")
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestHealthEndpoint(t *testing.T) {
	h := NewHealthHandler("1.0.0", nil, true, false)
	app := fiber.New()
	app.Get("/health", h.Check)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	corpo, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(corpo), `"database":"desconectado"`)
	assert.Contains(t, string(corpo), `"telegram":true`)
}
