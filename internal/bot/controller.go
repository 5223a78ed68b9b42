package bot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bonnavitta/chatbot-vendas/internal/auth"
	"github.com/bonnavitta/chatbot-vendas/internal/flow"
	"github.com/bonnavitta/chatbot-vendas/internal/models"
	"github.com/bonnavitta/chatbot-vendas/internal/reports"
	"github.com/bonnavitta/chatbot-vendas/internal/storage"
)

// ConsultasDeVendas é o recorte do gateway de relatórios que os sub-fluxos
// da conversa disparam.
type ConsultasDeVendas interface {
	VendasPorSupervisor(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorSupervisor, error)
	VendasPorSupervisorPorEquipe(ctx context.Context, dataInicio, dataFim, nomeSupervisor string) ([]models.VendaPorEquipeDeSupervisor, error)
	VendasPorVendedorEmEquipe(ctx context.Context, dataInicio, dataFim, nomeSetor string) ([]models.VendaPorVendedorEmEquipe, error)
	DetalheVendedor(ctx context.Context, dataInicio, dataFim string, setorClientes int) (*models.DetalheVendedor, error)
	VendasPorDiaDetalhado(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorDia, error)
	VendasPorFabricante(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorFabricante, error)
}

// Controller orquestra um turno completo da conversa: resolve a sessão pela
// chave (canal, chatId), roda o motor de fluxo, executa a consulta quando o
// motor devolve o estado de processamento e persiste o resultado.
type Controller struct {
	store    storage.Store
	engine   *flow.Engine
	gateway  ConsultasDeVendas
	renderer *reports.Renderer
	logger   *zap.Logger
}

// NewController cria o controller do bot.
func NewController(store storage.Store, engine *flow.Engine, gateway ConsultasDeVendas, renderer *reports.Renderer, logger *zap.Logger) *Controller {
	return &Controller{
		store:    store,
		engine:   engine,
		gateway:  gateway,
		renderer: renderer,
		logger:   logger,
	}
}

// ProcessarMensagem processa uma mensagem recebida de um canal e devolve a
// resposta a enviar. Sessão inexistente é criada no gate de login e a
// primeira mensagem só dispara a saudação.
func (c *Controller) ProcessarMensagem(ctx context.Context, canal models.Canal, chatID, mensagem string) (models.MensagemBotResponse, error) {
	chave := models.ChaveSessao{Canal: canal, ChatID: chatID}

	sessao, err := c.store.Obter(chave)
	if err != nil {
		return models.MensagemBotResponse{}, fmt.Errorf("obter sessão %s: %w", chave, err)
	}
	if sessao == nil {
		if _, err := c.store.Criar(0, canal, chatID); err != nil {
			return models.MensagemBotResponse{}, fmt.Errorf("criar sessão %s: %w", chave, err)
		}
		c.logger.Info("sessão criada", zap.String("chave", chave.String()))
		return flow.MensagemInicial(), nil
	}

	var roles []string
	var nome string
	usuario := auth.BuscarPorID(sessao.UsuarioID)
	if usuario != nil {
		roles = usuario.RolesComoStrings()
		nome = usuario.Nome
	}

	t := c.engine.Processar(mensagem, sessao.Estado, sessao.Contexto, roles, nome)

	if t.Usuario != nil {
		usuario = t.Usuario
		roles = usuario.RolesComoStrings()
		nome = usuario.Nome
		campos := storage.CamposSessao{
			UsuarioID: &t.Usuario.ID,
			Token:     &t.Token,
		}
		if err := c.store.AtualizarCampos(sessao.ID, campos); err != nil {
			return models.MensagemBotResponse{}, fmt.Errorf("vincular usuário à sessão %s: %w", chave, err)
		}
	}

	if t.ProximoEstado == models.EstadoProcessando {
		return c.executarConsulta(ctx, sessao, t.Contexto, usuario, roles, nome)
	}

	if err := c.store.AtualizarEstado(sessao.ID, t.ProximoEstado, t.Contexto); err != nil {
		return models.MensagemBotResponse{}, fmt.Errorf("persistir estado da sessão %s: %w", chave, err)
	}
	if t.Logout {
		if err := c.store.Resetar(chave); err != nil {
			c.logger.Warn("erro ao resetar sessão no logout",
				zap.String("chave", chave.String()),
				zap.Error(err),
			)
		}
	}

	return t.Resposta, nil
}

// executarConsulta roda a operação de relatório indicada pelo sub-fluxo do
// contexto e devolve o resultado formatado junto do próximo passo da
// conversa. Falha de consulta vira desculpa genérica com o menu do perfil; o
// erro fica só no log.
func (c *Controller) executarConsulta(ctx context.Context, sessao *models.Sessao, fluxoCtx *models.Contexto, usuario *models.Usuario, roles []string, nome string) (models.MensagemBotResponse, error) {
	if fluxoCtx == nil {
		fluxoCtx = models.NovoContexto()
	}

	resposta, proximoCtx, err := c.consultarPorSubFluxo(ctx, fluxoCtx, usuario, roles, nome)
	if err != nil {
		c.logger.Error("erro na consulta de relatório",
			zap.String("subFluxo", fluxoCtx.SubFluxo),
			zap.String("chave", sessao.Chave().String()),
			zap.Error(err),
		)
		resposta = c.engine.MenuPorRoles(roles, nome)
		resposta.Resposta = "😕 Não consegui completar a consulta agora. Tente novamente.\n\n" + resposta.Resposta
		proximoCtx = models.NovoContexto()
	}

	if err := c.store.AtualizarEstado(sessao.ID, resposta.ProximoEstado, proximoCtx); err != nil {
		return models.MensagemBotResponse{}, fmt.Errorf("persistir estado da sessão %s: %w", sessao.Chave(), err)
	}
	return resposta, nil
}

func (c *Controller) consultarPorSubFluxo(ctx context.Context, fluxoCtx *models.Contexto, usuario *models.Usuario, roles []string, nome string) (models.MensagemBotResponse, *models.Contexto, error) {
	di, df := fluxoCtx.DataInicio, fluxoCtx.DataFim

	switch fluxoCtx.SubFluxo {
	case models.SubFluxoCarregarSupervisores:
		lista, err := c.gateway.VendasPorSupervisor(ctx, di, df)
		if err != nil {
			return models.MensagemBotResponse{}, nil, err
		}
		if len(lista) == 0 {
			return c.voltarAoMenu(reports.FormatarVendasPorSupervisor(lista), roles, nome)
		}
		nc := fluxoCtx.Clonado()
		if nc.Supervisor == nil {
			nc.Supervisor = &models.ContextoSupervisor{}
		}
		nc.Supervisor.Lista = lista

		escolha := flow.MenuEscolhaSupervisor()
		escolha.Resposta = reports.FormatarVendasPorSupervisor(lista) + "\n" + escolha.Resposta
		return escolha, nc, nil

	case models.SubFluxoAnaliseSupervisor:
		if fluxoCtx.Supervisor == nil || fluxoCtx.Supervisor.SupervisorEscolhido == "" {
			return c.voltarAoMenu("", roles, nome)
		}
		supervisor := fluxoCtx.Supervisor.SupervisorEscolhido
		detalhes, err := c.gateway.VendasPorSupervisorPorEquipe(ctx, di, df, supervisor)
		if err != nil {
			return models.MensagemBotResponse{}, nil, err
		}
		texto := reports.FormatarVendasPorSupervisorPorEquipe(supervisor, detalhes)
		return flow.PromptOutraAnalise(texto+"\nO que deseja fazer agora?", models.EstadoExibindoAnaliseSupervisor),
			fluxoCtx.Clonado(), nil

	case models.SubFluxoCarregarVendedores:
		// Perfis restritos só enxergam a própria equipe; admin e diretoria
		// consultam todas.
		equipe := ""
		if usuario != nil && !usuario.TemRole(models.RoleAdmin) && !usuario.TemRole(models.RoleDiretoria) {
			equipe = usuario.NomeEquipe
		}
		lista, err := c.gateway.VendasPorVendedorEmEquipe(ctx, di, df, equipe)
		if err != nil {
			return models.MensagemBotResponse{}, nil, err
		}
		if len(lista) == 0 {
			return c.voltarAoMenu(reports.FormatarVendasPorVendedorEmEquipe(lista), roles, nome)
		}
		nc := fluxoCtx.Clonado()
		if nc.Vendedor == nil {
			nc.Vendedor = &models.ContextoVendedor{}
		}
		nc.Vendedor.Lista = lista
		nc.Vendedor.EquipeNome = equipe

		escolha := flow.PromptEscolhaVendedor(lista)
		escolha.Resposta = reports.FormatarVendasPorVendedorEmEquipe(lista) + "\n" + escolha.Resposta
		return escolha, nc, nil

	case models.SubFluxoAnaliseVendedor:
		if fluxoCtx.Vendedor == nil || fluxoCtx.Vendedor.CodigoEscolhido == 0 {
			return c.voltarAoMenu("", roles, nome)
		}
		detalhe, err := c.gateway.DetalheVendedor(ctx, di, df, fluxoCtx.Vendedor.CodigoEscolhido)
		if err != nil {
			return models.MensagemBotResponse{}, nil, err
		}
		texto := reports.FormatarDetalheVendedor(detalhe)
		return flow.PromptOutraAnalise(texto+"\nO que deseja fazer agora?", models.EstadoExibindoAnaliseVendedor),
			fluxoCtx.Clonado(), nil

	case models.SubFluxoVendasDia:
		return c.consultarVendasDia(ctx, fluxoCtx)

	case models.SubFluxoVendasFabricante:
		lista, err := c.gateway.VendasPorFabricante(ctx, di, df)
		if err != nil {
			return models.MensagemBotResponse{}, nil, err
		}
		return c.voltarAoMenu(reports.FormatarVendasPorFabricante(lista), roles, nome)
	}

	c.logger.Warn("sub-fluxo desconhecido no processamento", zap.String("subFluxo", fluxoCtx.SubFluxo))
	return c.voltarAoMenu("", roles, nome)
}

func (c *Controller) consultarVendasDia(ctx context.Context, fluxoCtx *models.Contexto) (models.MensagemBotResponse, *models.Contexto, error) {
	if fluxoCtx.Dia == nil {
		fluxoCtx = fluxoCtx.Clonado()
		fluxoCtx.Dia = &models.ContextoDia{}
	}

	vendas, err := c.gateway.VendasPorDiaDetalhado(ctx, fluxoCtx.DataInicio, fluxoCtx.DataFim)
	if err != nil {
		return models.MensagemBotResponse{}, nil, err
	}

	titulo := reports.TituloDaJanela(fluxoCtx.Dia.Janela)
	pontos := reports.SeriePorJanela(fluxoCtx.Dia.Janela, vendas)

	resposta := flow.PromptOutraAnalise("", models.EstadoExibindoResultadoDia)
	if fluxoCtx.Dia.Formato == models.FormatoGrafico && c.renderer.Habilitado() && len(pontos) > 0 {
		grafico, err := c.renderer.GerarGraficoBarras(titulo, pontos)
		if err == nil {
			resposta.Grafico = grafico
			resposta.Resposta = fmt.Sprintf("📈 *%s*\n\nO que deseja fazer agora?", titulo)
			return resposta, fluxoCtx.Clonado(), nil
		}
		c.logger.Warn("falha ao gerar gráfico, caindo para texto", zap.Error(err))
	}

	resposta.Resposta = reports.FormatarSerie(titulo, pontos) + "\nO que deseja fazer agora?"
	return resposta, fluxoCtx.Clonado(), nil
}

func (c *Controller) voltarAoMenu(texto string, roles []string, nome string) (models.MensagemBotResponse, *models.Contexto, error) {
	resposta := c.engine.MenuPorRoles(roles, nome)
	if texto != "" {
		resposta.Resposta = texto + "\n" + resposta.Resposta
	}
	return resposta, models.NovoContexto(), nil
}
