package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

type relatoriosFalsos struct {
	ranking    []models.RankingProduto
	ticket     *models.TicketMedio
	dias       []models.VendaPorDiaResumo
	vendedores []models.VendaPorVendedor
	fabricante *models.DetalheFabricante
	err        error
}

func (r *relatoriosFalsos) RankingProdutos(ctx context.Context, dataInicio, dataFim string, limite int) ([]models.RankingProduto, error) {
	return r.ranking, r.err
}

func (r *relatoriosFalsos) TicketMedio(ctx context.Context, dataInicio, dataFim string) (*models.TicketMedio, error) {
	return r.ticket, r.err
}

func (r *relatoriosFalsos) VendasPorDia(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorDiaResumo, error) {
	return r.dias, r.err
}

func (r *relatoriosFalsos) VendasPorVendedor(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorVendedor, error) {
	return r.vendedores, r.err
}

func (r *relatoriosFalsos) DetalheFabricante(ctx context.Context, dataInicio, dataFim, nomeFabricante string) (*models.DetalheFabricante, error) {
	return r.fabricante, r.err
}

func novaAppDeRelatorios(g ConsultasDeRelatorio) *fiber.App {
	h := NewReportsHandler(g, zap.NewNop())
	app := fiber.New()
	app.Get("/api/reports/ranking-produtos", h.RankingProdutos)
	app.Get("/api/reports/ticket-medio", h.TicketMedio)
	app.Get("/api/reports/vendas-dia", h.VendasPorDia)
	app.Get("/api/reports/vendas-vendedor", h.VendasPorVendedor)
	app.Get("/api/reports/detalhe-fabricante", h.DetalheFabricante)
	return app
}

func corpoJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return parsed
}

func TestRankingProdutosEndpoint(t *testing.T) {
	g := &relatoriosFalsos{ranking: []models.RankingProduto{
		{NomeProduto: "Azeite Extra Virgem", NomeFabricante: "Gallo", QuantidadeVendida: 40, TotalVendas: 1200},
	}}
	app := novaAppDeRelatorios(g)

	t.Run("sem período responde 400", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/reports/ranking-produtos", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("devolve a lista em json", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/reports/ranking-produtos?dataInicio=2025-03-01&dataFim=2025-03-19", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		parsed := corpoJSON(t, resp)
		require.Contains(t, parsed, "produtos")
	})

	t.Run("formato texto devolve o bloco formatado", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/reports/ranking-produtos?dataInicio=2025-03-01&dataFim=2025-03-19&formato=texto", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		parsed := corpoJSON(t, resp)
		relatorio, _ := parsed["relatorio"].(string)
		assert.Contains(t, relatorio, "Ranking de Produtos")
		assert.Contains(t, relatorio, "Azeite Extra Virgem")
		assert.Contains(t, relatorio, "R$ 1.200,00")
	})

	t.Run("erro do gateway responde 500 genérico", func(t *testing.T) {
		app := novaAppDeRelatorios(&relatoriosFalsos{err: errors.New("proc indisponível")})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/reports/ranking-produtos?dataInicio=2025-03-01&dataFim=2025-03-19", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		parsed := corpoJSON(t, resp)
		assert.NotContains(t, parsed["error"], "proc indisponível")
	})
}

func TestTicketMedioEmTexto(t *testing.T) {
	g := &relatoriosFalsos{ticket: &models.TicketMedio{TicketMedio: 150.5, TotalVendas: 3010, TotalPedidos: 20}}
	app := novaAppDeRelatorios(g)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/reports/ticket-medio?dataInicio=2025-03-01&dataFim=2025-03-19&formato=texto", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	parsed := corpoJSON(t, resp)
	relatorio, _ := parsed["relatorio"].(string)
	assert.Contains(t, relatorio, "Ticket Médio Geral")
	assert.Contains(t, relatorio, "R$ 150,50")
}

func TestVendasPorVendedorEmTexto(t *testing.T) {
	g := &relatoriosFalsos{vendedores: []models.VendaPorVendedor{
		{NomeVendedor: "João Silva", NomeSupervisor: "Roberto Almeida", TotalVendas: 800, QuantidadePedidos: 4},
	}}
	app := novaAppDeRelatorios(g)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/reports/vendas-vendedor?dataInicio=2025-03-01&dataFim=2025-03-19&formato=texto", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	parsed := corpoJSON(t, resp)
	relatorio, _ := parsed["relatorio"].(string)
	assert.Contains(t, relatorio, "Vendas por Vendedor")
	assert.Contains(t, relatorio, "João Silva")
	assert.Contains(t, relatorio, "Roberto Almeida")
}

func TestDetalheFabricanteEndpoint(t *testing.T) {
	t.Run("sem nome responde 400", func(t *testing.T) {
		app := novaAppDeRelatorios(&relatoriosFalsos{})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/reports/detalhe-fabricante?dataInicio=2025-03-01&dataFim=2025-03-19", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("fabricante ausente responde 404 em json", func(t *testing.T) {
		app := novaAppDeRelatorios(&relatoriosFalsos{})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/reports/detalhe-fabricante?dataInicio=2025-03-01&dataFim=2025-03-19&nome=Gallo", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("fabricante ausente em texto devolve o aviso padrão", func(t *testing.T) {
		app := novaAppDeRelatorios(&relatoriosFalsos{})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/reports/detalhe-fabricante?dataInicio=2025-03-01&dataFim=2025-03-19&nome=Gallo&formato=texto", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		parsed := corpoJSON(t, resp)
		relatorio, _ := parsed["relatorio"].(string)
		assert.Contains(t, relatorio, "Nenhum dado encontrado")
	})

	t.Run("detalhe em texto", func(t *testing.T) {
		app := novaAppDeRelatorios(&relatoriosFalsos{fabricante: &models.DetalheFabricante{
			NomeFabricante:    "Gallo",
			TotalVendas:       5400.75,
			QuantidadePedidos: 12,
		}})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/reports/detalhe-fabricante?dataInicio=2025-03-01&dataFim=2025-03-19&nome=Gallo&formato=texto", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		parsed := corpoJSON(t, resp)
		relatorio, _ := parsed["relatorio"].(string)
		assert.Contains(t, relatorio, "Gallo")
		assert.Contains(t, relatorio, "R$ 5.400,75")
	})
}
