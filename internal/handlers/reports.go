package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
	"github.com/bonnavitta/chatbot-vendas/internal/reports"
)

// ConsultasDeRelatorio é o recorte do gateway exposto pelos endpoints REST.
type ConsultasDeRelatorio interface {
	RankingProdutos(ctx context.Context, dataInicio, dataFim string, limite int) ([]models.RankingProduto, error)
	TicketMedio(ctx context.Context, dataInicio, dataFim string) (*models.TicketMedio, error)
	VendasPorDia(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorDiaResumo, error)
	VendasPorVendedor(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorVendedor, error)
	DetalheFabricante(ctx context.Context, dataInicio, dataFim, nomeFabricante string) (*models.DetalheFabricante, error)
}

// ReportsHandler expõe consultas avulsas de relatório por REST, atrás do
// middleware JWT. As datas vêm em query string no formato YYYY-MM-DD;
// `formato=texto` devolve o mesmo bloco pt-BR que o bot envia nos canais.
type ReportsHandler struct {
	gateway ConsultasDeRelatorio
	logger  *zap.Logger
}

// NewReportsHandler cria o handler de relatórios.
func NewReportsHandler(gateway ConsultasDeRelatorio, logger *zap.Logger) *ReportsHandler {
	return &ReportsHandler{gateway: gateway, logger: logger}
}

func periodoDaQuery(c *fiber.Ctx) (string, string, bool) {
	dataInicio := c.Query("dataInicio")
	dataFim := c.Query("dataFim")
	if !dataValida(dataInicio) || !dataValida(dataFim) {
		return "", "", false
	}
	return dataInicio, dataFim, true
}

func dataValida(valor string) bool {
	_, err := time.Parse("2006-01-02", valor)
	return err == nil
}

func emTexto(c *fiber.Ctx) bool {
	return c.Query("formato") == "texto"
}

func periodoInvalido(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "dataInicio e dataFim são obrigatórios no formato YYYY-MM-DD",
	})
}

func (h *ReportsHandler) falhaDeConsulta(c *fiber.Ctx, operacao string, err error) error {
	h.logger.Error("erro na consulta de relatório",
		zap.String("operacao", operacao),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Erro ao consultar o relatório",
	})
}

// RankingProdutos trata GET /api/reports/ranking-produtos.
func (h *ReportsHandler) RankingProdutos(c *fiber.Ctx) error {
	dataInicio, dataFim, ok := periodoDaQuery(c)
	if !ok {
		return periodoInvalido(c)
	}

	limite, _ := strconv.Atoi(c.Query("limite", "10"))

	produtos, err := h.gateway.RankingProdutos(c.Context(), dataInicio, dataFim, limite)
	if err != nil {
		return h.falhaDeConsulta(c, "ranking-produtos", err)
	}
	if emTexto(c) {
		return c.JSON(fiber.Map{"relatorio": reports.FormatarRankingProdutos(produtos)})
	}
	return c.JSON(fiber.Map{"produtos": produtos})
}

// TicketMedio trata GET /api/reports/ticket-medio.
func (h *ReportsHandler) TicketMedio(c *fiber.Ctx) error {
	dataInicio, dataFim, ok := periodoDaQuery(c)
	if !ok {
		return periodoInvalido(c)
	}

	resumo, err := h.gateway.TicketMedio(c.Context(), dataInicio, dataFim)
	if err != nil {
		return h.falhaDeConsulta(c, "ticket-medio", err)
	}
	if emTexto(c) {
		return c.JSON(fiber.Map{"relatorio": reports.FormatarTicketMedio(resumo)})
	}
	return c.JSON(resumo)
}

// VendasPorDia trata GET /api/reports/vendas-dia.
func (h *ReportsHandler) VendasPorDia(c *fiber.Ctx) error {
	dataInicio, dataFim, ok := periodoDaQuery(c)
	if !ok {
		return periodoInvalido(c)
	}

	vendas, err := h.gateway.VendasPorDia(c.Context(), dataInicio, dataFim)
	if err != nil {
		return h.falhaDeConsulta(c, "vendas-dia", err)
	}
	return c.JSON(fiber.Map{"vendas": vendas})
}

// VendasPorVendedor trata GET /api/reports/vendas-vendedor.
func (h *ReportsHandler) VendasPorVendedor(c *fiber.Ctx) error {
	dataInicio, dataFim, ok := periodoDaQuery(c)
	if !ok {
		return periodoInvalido(c)
	}

	vendas, err := h.gateway.VendasPorVendedor(c.Context(), dataInicio, dataFim)
	if err != nil {
		return h.falhaDeConsulta(c, "vendas-vendedor", err)
	}
	if emTexto(c) {
		return c.JSON(fiber.Map{"relatorio": reports.FormatarVendasPorVendedor(vendas)})
	}
	return c.JSON(fiber.Map{"vendas": vendas})
}

// DetalheFabricante trata GET /api/reports/detalhe-fabricante.
func (h *ReportsHandler) DetalheFabricante(c *fiber.Ctx) error {
	dataInicio, dataFim, ok := periodoDaQuery(c)
	if !ok {
		return periodoInvalido(c)
	}
	nome := c.Query("nome")
	if nome == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "nome do fabricante é obrigatório",
		})
	}

	detalhe, err := h.gateway.DetalheFabricante(c.Context(), dataInicio, dataFim, nome)
	if err != nil {
		return h.falhaDeConsulta(c, "detalhe-fabricante", err)
	}
	if emTexto(c) {
		return c.JSON(fiber.Map{"relatorio": reports.FormatarDetalheFabricante(detalhe)})
	}
	if detalhe == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Fabricante não encontrado no período",
		})
	}
	return c.JSON(detalhe)
}
