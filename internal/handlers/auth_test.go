package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bonnavitta/chatbot-vendas/internal/auth"
	"github.com/bonnavitta/chatbot-vendas/internal/middleware"
	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

func novaAppDeAuth(t *testing.T) (*fiber.App, *auth.Service) {
	t.Helper()

	authSvc := auth.NewService("segredo-de-teste", time.Hour, zap.NewNop())
	h := NewAuthHandler(authSvc, zap.NewNop())

	app := fiber.New()
	app.Post("/api/auth/login", h.Login)
	app.Get("/api/auth/validate", middleware.JWTProtected(authSvc), h.Verify)
	return app, authSvc
}

func requisicaoJSON(t *testing.T, metodo, alvo, corpo string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(metodo, alvo, strings.NewReader(corpo))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLoginEndpoint(t *testing.T) {
	app, _ := novaAppDeAuth(t)

	t.Run("credenciais corretas", func(t *testing.T) {
		resp, err := app.Test(requisicaoJSON(t, http.MethodPost, "/api/auth/login",
			`{"cpf":"778.034.502-53","telefone":"(92) 99437-5522"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var parsed models.LoginResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
		assert.True(t, parsed.Success)
		assert.NotEmpty(t, parsed.Token)
		require.NotNil(t, parsed.Usuario)
		assert.Equal(t, "Paulo Sarraff", parsed.Usuario.Nome)
	})

	t.Run("credenciais erradas respondem 401", func(t *testing.T) {
		resp, err := app.Test(requisicaoJSON(t, http.MethodPost, "/api/auth/login",
			`{"cpf":"77803450253","telefone":"11900001111"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("corpo incompleto responde 400", func(t *testing.T) {
		resp, err := app.Test(requisicaoJSON(t, http.MethodPost, "/api/auth/login",
			`{"cpf":"77803450253"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestVerifyEndpoint(t *testing.T) {
	app, authSvc := novaAppDeAuth(t)

	t.Run("sem token responde 401", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/auth/validate", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token adulterado responde 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/validate", nil)
		req.Header.Set("Authorization", "Bearer token-qualquer")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token válido devolve as claims", func(t *testing.T) {
		usuario := auth.BuscarPorCPF("77803450253")
		require.NotNil(t, usuario)
		token, err := authSvc.GerarToken(usuario)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/validate", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		corpo, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(corpo), "Paulo Sarraff")
	})
}
