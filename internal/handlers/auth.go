package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bonnavitta/chatbot-vendas/internal/auth"
	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

// AuthHandler expõe o login por CPF e telefone e a verificação de token.
type AuthHandler struct {
	auth   *auth.Service
	logger *zap.Logger
}

// NewAuthHandler cria o handler de autenticação.
func NewAuthHandler(authSvc *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, logger: logger}
}

// Login trata POST /api/auth/login. Credenciais inválidas respondem 401 com
// a mesma mensagem genérica, sem revelar qual campo falhou.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":  false,
			"mensagem": "Corpo da requisição inválido",
		})
	}
	if req.CPF == "" || req.Telefone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":  false,
			"mensagem": "CPF e telefone são obrigatórios",
		})
	}

	resp := h.auth.Login(req.CPF, req.Telefone)
	if !resp.Success {
		return c.Status(fiber.StatusUnauthorized).JSON(resp)
	}
	return c.JSON(resp)
}

// Verify trata GET /api/auth/verify, atrás do middleware JWT: devolve as
// claims do token apresentado.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*auth.Claims)
	if !ok || claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success":  false,
			"mensagem": "Token inválido",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"usuario": fiber.Map{
			"id":       claims.UsuarioID,
			"cpf":      claims.CPF,
			"nome":     claims.Nome,
			"equipeId": claims.EquipeID,
			"roles":    claims.Roles,
		},
	})
}
