package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler responde o health check da API.
type HealthHandler struct {
	Version  string
	db       *gorm.DB
	telegram bool
	whatsapp bool
}

// NewHealthHandler cria o handler de health check.
func NewHealthHandler(version string, db *gorm.DB, telegram, whatsapp bool) *HealthHandler {
	return &HealthHandler{
		Version:  version,
		db:       db,
		telegram: telegram,
		whatsapp: whatsapp,
	}
}

// Check devolve o status do serviço, do banco e dos canais habilitados.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	banco := "OK"
	if h.db == nil {
		banco = "desconectado"
	} else if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
		banco = "indisponível"
	}

	status := "OK"
	codigo := fiber.StatusOK
	if banco != "OK" {
		status = "DEGRADED"
		codigo = fiber.StatusServiceUnavailable
	}

	return c.Status(codigo).JSON(fiber.Map{
		"status":   status,
		"service":  "Chatbot Vendas BonnaVitta",
		"version":  h.Version,
		"database": banco,
		"canais": fiber.Map{
			"telegram": h.telegram,
			"whatsapp": h.whatsapp,
		},
	})
}
