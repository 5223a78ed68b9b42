package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bonnavitta/chatbot-vendas/internal/auth"
	"github.com/bonnavitta/chatbot-vendas/internal/flow"
	"github.com/bonnavitta/chatbot-vendas/internal/models"
	"github.com/bonnavitta/chatbot-vendas/internal/reports"
	"github.com/bonnavitta/chatbot-vendas/internal/storage"
)

// gatewayFalso devolve dados prontos ou o erro configurado, e anota os
// filtros recebidos para inspeção.
type gatewayFalso struct {
	supervisores []models.VendaPorSupervisor
	equipes      []models.VendaPorEquipeDeSupervisor
	vendedores   []models.VendaPorVendedorEmEquipe
	detalhe      *models.DetalheVendedor
	dias         []models.VendaPorDia
	fabricantes  []models.VendaPorFabricante
	err          error

	supervisorConsultado string
	equipeConsultada     string
}

func (g *gatewayFalso) VendasPorSupervisor(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorSupervisor, error) {
	return g.supervisores, g.err
}

func (g *gatewayFalso) VendasPorSupervisorPorEquipe(ctx context.Context, dataInicio, dataFim, nomeSupervisor string) ([]models.VendaPorEquipeDeSupervisor, error) {
	g.supervisorConsultado = nomeSupervisor
	return g.equipes, g.err
}

func (g *gatewayFalso) VendasPorVendedorEmEquipe(ctx context.Context, dataInicio, dataFim, nomeSetor string) ([]models.VendaPorVendedorEmEquipe, error) {
	g.equipeConsultada = nomeSetor
	return g.vendedores, g.err
}

func (g *gatewayFalso) DetalheVendedor(ctx context.Context, dataInicio, dataFim string, setorClientes int) (*models.DetalheVendedor, error) {
	return g.detalhe, g.err
}

func (g *gatewayFalso) VendasPorDiaDetalhado(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorDia, error) {
	return g.dias, g.err
}

func (g *gatewayFalso) VendasPorFabricante(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorFabricante, error) {
	return g.fabricantes, g.err
}

func novoControllerDeTeste(t *testing.T, g ConsultasDeVendas) (*Controller, storage.Store) {
	t.Helper()

	store := storage.NewMemoryStore()
	authSvc := auth.NewService("segredo-de-teste", time.Hour, zap.NewNop())
	engine := flow.NewEngine(authSvc, time.UTC, zap.NewNop())
	renderer := reports.NewRenderer(false, 0, 0, zap.NewNop())
	return NewController(store, engine, g, renderer, zap.NewNop()), store
}

func autenticar(t *testing.T, c *Controller, chatID, cpf, telefone string) {
	t.Helper()
	ctx := context.Background()

	resp, err := c.ProcessarMensagem(ctx, models.CanalTelegram, chatID, "oi")
	require.NoError(t, err)
	require.Equal(t, models.EstadoAguardandoCPF, resp.ProximoEstado)

	resp, err = c.ProcessarMensagem(ctx, models.CanalTelegram, chatID, cpf)
	require.NoError(t, err)
	require.Equal(t, models.EstadoAguardandoTelefone, resp.ProximoEstado)

	resp, err = c.ProcessarMensagem(ctx, models.CanalTelegram, chatID, telefone)
	require.NoError(t, err)
	require.Contains(t, resp.Resposta, "Login realizado com sucesso")
}

func turno(t *testing.T, c *Controller, chatID, mensagem string) models.MensagemBotResponse {
	t.Helper()
	resp, err := c.ProcessarMensagem(context.Background(), models.CanalTelegram, chatID, mensagem)
	require.NoError(t, err)
	return resp
}

func TestPrimeiraMensagemCriaSessao(t *testing.T) {
	c, store := novoControllerDeTeste(t, &gatewayFalso{})

	resp := turno(t, c, "chat-1", "qualquer coisa")
	assert.Equal(t, models.EstadoAguardandoCPF, resp.ProximoEstado)
	assert.Contains(t, resp.Resposta, "CPF")

	sessao, err := store.Obter(models.ChaveSessao{Canal: models.CanalTelegram, ChatID: "chat-1"})
	require.NoError(t, err)
	require.NotNil(t, sessao)
	assert.Equal(t, models.EstadoAguardandoCPF, sessao.Estado)
}

func TestFluxoSupervisorCompleto(t *testing.T) {
	g := &gatewayFalso{
		supervisores: []models.VendaPorSupervisor{
			{NomeSupervisor: "Roberto Almeida", TotalVendas: 1000, QuantidadePedidos: 5},
			{NomeSupervisor: "Fernanda Souza", TotalVendas: 2500.50, QuantidadePedidos: 8},
		},
		equipes: []models.VendaPorEquipeDeSupervisor{
			{EquipeNome: "Food Service", TotalVendas: 2500.50, QuantidadePedidos: 8},
		},
	}
	c, store := novoControllerDeTeste(t, g)
	autenticar(t, c, "chat-sup", "77803450253", "92994375522")

	turno(t, c, "chat-sup", "1") // menu comercial
	turno(t, c, "chat-sup", "1") // vendas por supervisor

	resp := turno(t, c, "chat-sup", "1") // período: hoje, dispara a consulta
	assert.Equal(t, models.EstadoAguardandoEscolhaSupervisor, resp.ProximoEstado)
	assert.Contains(t, resp.Resposta, "TOTAL GERAL")
	assert.Contains(t, resp.Resposta, "Fernanda Souza")

	// A lista consultada fica no contexto da sessão para os próximos turnos.
	sessao, err := store.Obter(models.ChaveSessao{Canal: models.CanalTelegram, ChatID: "chat-sup"})
	require.NoError(t, err)
	require.NotNil(t, sessao.Contexto.Supervisor)
	assert.Len(t, sessao.Contexto.Supervisor.Lista, 2)

	resp = turno(t, c, "chat-sup", "2") // código 2 do registro fixo
	assert.Equal(t, models.EstadoExibindoAnaliseSupervisor, resp.ProximoEstado)
	assert.Contains(t, resp.Resposta, "Análise de Fernanda Souza")
	assert.Equal(t, "Fernanda Souza", g.supervisorConsultado)
}

func TestConsultaSemDadosVoltaAoMenu(t *testing.T) {
	c, store := novoControllerDeTeste(t, &gatewayFalso{})
	autenticar(t, c, "chat-vazio", "77803450253", "92994375522")

	turno(t, c, "chat-vazio", "1")
	turno(t, c, "chat-vazio", "1")

	resp := turno(t, c, "chat-vazio", "2") // período: ontem
	assert.Equal(t, models.EstadoMenuPrincipal, resp.ProximoEstado)
	assert.Contains(t, resp.Resposta, "Nenhum dado encontrado")

	sessao, err := store.Obter(models.ChaveSessao{Canal: models.CanalTelegram, ChatID: "chat-vazio"})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoMenuPrincipal, sessao.Estado)
	assert.Empty(t, sessao.Contexto.SubFluxo)
}

func TestErroDeConsultaViraDesculpaGenerica(t *testing.T) {
	g := &gatewayFalso{err: errors.New("conexão recusada")}
	c, store := novoControllerDeTeste(t, g)
	autenticar(t, c, "chat-erro", "77803450253", "92994375522")

	turno(t, c, "chat-erro", "1")
	turno(t, c, "chat-erro", "1")

	resp := turno(t, c, "chat-erro", "1")
	assert.Equal(t, models.EstadoMenuPrincipal, resp.ProximoEstado)
	assert.Contains(t, resp.Resposta, "Não consegui completar a consulta")
	assert.NotContains(t, resp.Resposta, "conexão recusada")

	// A sessão volta ao menu com contexto limpo, pronta para outra tentativa.
	sessao, err := store.Obter(models.ChaveSessao{Canal: models.CanalTelegram, ChatID: "chat-erro"})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoMenuPrincipal, sessao.Estado)
	assert.Empty(t, sessao.Contexto.SubFluxo)
	assert.Nil(t, sessao.Contexto.Supervisor)
}

func TestEquipeFiltradaPorPerfil(t *testing.T) {
	lista := []models.VendaPorVendedorEmEquipe{
		{SetorClientes: 205, NomeVendedor: "João Silva", TotalVendas: 800, QuantidadePedidos: 4},
	}

	t.Run("perfil comercial consulta só a própria equipe", func(t *testing.T) {
		g := &gatewayFalso{vendedores: lista}
		c, _ := novoControllerDeTeste(t, g)
		autenticar(t, c, "chat-maria", "98765432100", "11912345678")

		// Comercial cai direto no menu comercial após o login.
		turno(t, c, "chat-maria", "2") // vendas por vendedor
		resp := turno(t, c, "chat-maria", "1")
		assert.Equal(t, models.EstadoAguardandoCodigoVendedor, resp.ProximoEstado)
		assert.Equal(t, "Food Service", g.equipeConsultada)
	})

	t.Run("admin consulta todas as equipes", func(t *testing.T) {
		g := &gatewayFalso{vendedores: lista}
		c, _ := novoControllerDeTeste(t, g)
		autenticar(t, c, "chat-paulo", "77803450253", "92994375522")

		turno(t, c, "chat-paulo", "1")
		turno(t, c, "chat-paulo", "2")
		resp := turno(t, c, "chat-paulo", "1")
		assert.Equal(t, models.EstadoAguardandoCodigoVendedor, resp.ProximoEstado)
		assert.Empty(t, g.equipeConsultada)
	})
}

func TestVendasPorDiaEmTexto(t *testing.T) {
	g := &gatewayFalso{
		dias: []models.VendaPorDia{
			{Data: "2025-03-17", DiaSemana: "Segunda", TotalVendas: 100, QuantidadePedidos: 1},
			{Data: "2025-03-18", DiaSemana: "Terça", TotalVendas: 200, QuantidadePedidos: 2},
		},
	}
	c, _ := novoControllerDeTeste(t, g)
	autenticar(t, c, "chat-dia", "77803450253", "92994375522")

	turno(t, c, "chat-dia", "1") // menu comercial
	turno(t, c, "chat-dia", "3") // vendas por dia
	turno(t, c, "chat-dia", "1") // janela: semana atual

	resp := turno(t, c, "chat-dia", "1") // formato texto
	assert.Equal(t, models.EstadoExibindoResultadoDia, resp.ProximoEstado)
	assert.Empty(t, resp.Grafico)
	assert.Contains(t, resp.Resposta, "17/03/2025 (Segunda)")
	assert.Contains(t, resp.Resposta, "TOTAL: R$ 300,00 em 3 pedido(s)")
}

func TestLogoutResetaSessaoPreservandoVinculo(t *testing.T) {
	c, store := novoControllerDeTeste(t, &gatewayFalso{})
	autenticar(t, c, "chat-sair", "77803450253", "92994375522")

	resp := turno(t, c, "chat-sair", "0")
	assert.Contains(t, resp.Resposta, "Até logo")

	sessao, err := store.Obter(models.ChaveSessao{Canal: models.CanalTelegram, ChatID: "chat-sair"})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoAguardandoCPF, sessao.Estado)
	assert.Equal(t, 1, sessao.UsuarioID)
	assert.NotEmpty(t, sessao.Token)
}
