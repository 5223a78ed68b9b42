package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bonnavitta/chatbot-vendas/internal/auth"
)

// JWTProtected valida o bearer token e deixa as claims em c.Locals("claims").
func JWTProtected(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		const prefixo = "Bearer "

		header := c.Get("Authorization")
		if !strings.HasPrefix(header, prefixo) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token de acesso ausente",
			})
		}

		claims, ok := authSvc.VerificarToken(strings.TrimPrefix(header, prefixo))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token inválido ou expirado",
			})
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}

// RequireRoles nega com 403 quando o token não carrega nenhuma das roles
// permitidas. Deve vir depois de JWTProtected.
func RequireRoles(rolesPermitidas ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*auth.Claims)
		if !ok || claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token de acesso ausente",
			})
		}
		if !auth.Autorizar(claims.Roles, rolesPermitidas) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Acesso negado para este perfil",
			})
		}
		return c.Next()
	}
}
