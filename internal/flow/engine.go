package flow

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bonnavitta/chatbot-vendas/internal/auth"
	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

// Marcadores de fluxo gravados no contexto entre a escolha no menu comercial
// e a escolha do período, quando o sub-fluxo de processamento ainda não é
// conhecido.
const (
	fluxoSupervisor = "supervisor"
	fluxoVendedor   = "vendedor"
	fluxoFabricante = "fabricante"
)

// Palavras que reiniciam a conversa de qualquer estado fora do login.
var palavrasDeReset = map[string]bool{
	"oi":      true,
	"olá":     true,
	"ola":     true,
	"menu":    true,
	"iniciar": true,
	"start":   true,
	"/start":  true,
}

// Transicao é o resultado de um turno da conversa. Usuario e Token só vêm
// preenchidos quando o turno completou o login; Logout pede ao chamador que
// reinicie a sessão depois de enviar a resposta.
type Transicao struct {
	ProximoEstado models.Estado
	Contexto      *models.Contexto
	Resposta      models.MensagemBotResponse
	Usuario       *models.Usuario
	Token         string
	Logout        bool
}

// Engine é o motor de fluxo da conversa: uma função de transição pura sobre
// (entrada, estado, contexto). Efeitos de banco ficam fora; quando uma
// consulta precisa rodar, o motor devolve PROCESSANDO e o sub-fluxo no
// contexto diz ao controller o que executar.
type Engine struct {
	auth   *auth.Service
	agora  func() time.Time
	logger *zap.Logger
}

// NewEngine cria o motor de fluxo. Os períodos relativos (hoje, semana, mês)
// são calculados no fuso informado.
func NewEngine(authSvc *auth.Service, loc *time.Location, logger *zap.Logger) *Engine {
	return &Engine{
		auth:   authSvc,
		agora:  func() time.Time { return time.Now().In(loc) },
		logger: logger,
	}
}

// MensagemInicial é o primeiro turno de uma sessão recém-criada.
func MensagemInicial() models.MensagemBotResponse {
	return models.MensagemBotResponse{
		Resposta: "👋 *Olá! Sou o assistente de vendas da BonnaVitta.*\n\n" +
			"Para começar, digite seu CPF (apenas números):",
		ProximoEstado: models.EstadoAguardandoCPF,
	}
}

// Processar executa um turno da conversa e devolve a transição resultante.
// Nunca propaga panic: qualquer falha interna vira uma resposta de erro
// genérica com o menu do perfil do usuário.
func (e *Engine) Processar(entrada string, estado models.Estado, ctx *models.Contexto, roles []string, nome string) (t Transicao) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("panic no motor de fluxo",
				zap.Any("panic", r),
				zap.String("estado", string(estado)),
			)
			resposta := e.menuPorRoles(roles, nome)
			resposta.Resposta = "😕 Algo deu errado ao processar sua mensagem.\n\n" + resposta.Resposta
			t = Transicao{
				ProximoEstado: resposta.ProximoEstado,
				Contexto:      models.NovoContexto(),
				Resposta:      resposta,
			}
		}
	}()

	entrada = strings.TrimSpace(entrada)

	if models.EstadoDeLogin(estado) {
		return e.processarLogin(entrada, estado, ctx)
	}

	if palavrasDeReset[strings.ToLower(entrada)] {
		return e.transicaoParaMenu(roles, nome)
	}

	switch estado {
	case models.EstadoMenuPrincipal:
		return e.processarMenuPrincipal(entrada, roles, nome)
	case models.EstadoMenuComercial:
		return e.processarMenuComercial(entrada)
	case models.EstadoMenuFinanceiro:
		if entrada == "0" {
			return transicaoDeLogout()
		}
		return repetir(opcaoInvalida(menuFinanceiro()), ctx)
	case models.EstadoAguardandoPeriodo:
		return e.processarPeriodo(entrada, ctx, roles, nome)
	case models.EstadoAguardandoEscolhaSupervisor:
		return e.processarEscolhaSupervisor(entrada, ctx)
	case models.EstadoExibindoAnaliseSupervisor:
		return e.processarPosAnaliseSupervisor(entrada, ctx, roles, nome)
	case models.EstadoAguardandoCodigoVendedor:
		return e.processarCodigoVendedor(entrada, ctx, roles, nome)
	case models.EstadoExibindoAnaliseVendedor:
		return e.processarPosAnaliseVendedor(entrada, ctx, roles, nome)
	case models.EstadoAguardandoTipoResumo:
		return e.processarTipoResumo(entrada, ctx)
	case models.EstadoAguardandoFormato:
		return e.processarFormato(entrada, ctx)
	case models.EstadoExibindoResultadoDia:
		return e.processarPosResultadoDia(entrada, roles, nome)
	}

	// PROCESSANDO, ENCERRADO ou estado desconhecido: volta ao menu do perfil.
	return e.transicaoParaMenu(roles, nome)
}

func (e *Engine) processarLogin(entrada string, estado models.Estado, ctx *models.Contexto) Transicao {
	if estado == models.EstadoAguardandoCPF {
		cpf := auth.LimparDigitos(entrada)
		if !auth.ValidarCPF(cpf) || auth.BuscarPorCPF(cpf) == nil {
			return Transicao{
				ProximoEstado: models.EstadoAguardandoCPF,
				Contexto:      models.NovoContexto(),
				Resposta: models.MensagemBotResponse{
					Resposta: "❌ CPF inválido ou não cadastrado.\n\n" +
						"Digite seu CPF (apenas números):",
					ProximoEstado: models.EstadoAguardandoCPF,
				},
			}
		}
		return Transicao{
			ProximoEstado: models.EstadoAguardandoTelefone,
			Contexto:      &models.Contexto{CPFPendente: cpf},
			Resposta: models.MensagemBotResponse{
				Resposta:      "📱 Agora digite seu telefone com DDD (apenas números):",
				ProximoEstado: models.EstadoAguardandoTelefone,
			},
		}
	}

	// AGUARDANDO_TELEFONE
	telefone := auth.LimparDigitos(entrada)
	recomecar := Transicao{
		ProximoEstado: models.EstadoAguardandoCPF,
		Contexto:      models.NovoContexto(),
		Resposta: models.MensagemBotResponse{
			Resposta: "❌ CPF e telefone não conferem. Vamos recomeçar.\n\n" +
				"Digite seu CPF (apenas números):",
			ProximoEstado: models.EstadoAguardandoCPF,
		},
	}
	if ctx == nil || ctx.CPFPendente == "" || !auth.ValidarTelefone(telefone) {
		return recomecar
	}

	usuario, err := e.auth.ValidarUsuario(ctx.CPFPendente, telefone)
	if err != nil || usuario == nil {
		return recomecar
	}

	token, err := e.auth.GerarToken(usuario)
	if err != nil {
		e.logger.Error("erro ao gerar token no fluxo", zap.Error(err))
		return recomecar
	}

	resposta := e.menuPorRoles(usuario.RolesComoStrings(), usuario.Nome)
	resposta.Resposta = "✅ *Login realizado com sucesso!*\n\n" + resposta.Resposta
	return Transicao{
		ProximoEstado: resposta.ProximoEstado,
		Contexto:      models.NovoContexto(),
		Resposta:      resposta,
		Usuario:       usuario,
		Token:         token,
	}
}

func (e *Engine) processarMenuPrincipal(entrada string, roles []string, nome string) Transicao {
	comercialLiberado := auth.Autorizar(roles, []string{
		string(models.RoleAdmin),
		string(models.RoleDiretoria),
	})

	switch {
	case entrada == "1" && comercialLiberado:
		return Transicao{
			ProximoEstado: models.EstadoMenuComercial,
			Contexto:      models.NovoContexto(),
			Resposta:      menuComercial(),
		}
	case entrada == "0":
		return transicaoDeLogout()
	}

	if comercialLiberado {
		return repetir(opcaoInvalida(menuPrincipal(nome)), nil)
	}
	return repetir(opcaoInvalida(menuPerfilNaoConfigurado()), nil)
}

func (e *Engine) processarMenuComercial(entrada string) Transicao {
	switch entrada {
	case "1":
		return Transicao{
			ProximoEstado: models.EstadoAguardandoPeriodo,
			Contexto: &models.Contexto{
				SubFluxo:   fluxoSupervisor,
				Supervisor: &models.ContextoSupervisor{},
			},
			Resposta: menuPeriodo(),
		}
	case "2":
		return Transicao{
			ProximoEstado: models.EstadoAguardandoPeriodo,
			Contexto: &models.Contexto{
				SubFluxo: fluxoVendedor,
				Vendedor: &models.ContextoVendedor{},
			},
			Resposta: menuPeriodo(),
		}
	case "3":
		return Transicao{
			ProximoEstado: models.EstadoAguardandoTipoResumo,
			Contexto:      &models.Contexto{Dia: &models.ContextoDia{}},
			Resposta:      menuTipoResumo(),
		}
	case "4":
		return Transicao{
			ProximoEstado: models.EstadoAguardandoPeriodo,
			Contexto:      &models.Contexto{SubFluxo: fluxoFabricante},
			Resposta:      menuPeriodo(),
		}
	case "0":
		return transicaoDeLogout()
	}
	return repetir(opcaoInvalida(menuComercial()), nil)
}

func (e *Engine) processarPeriodo(entrada string, ctx *models.Contexto, roles []string, nome string) Transicao {
	periodo, ok := PeriodoPorCodigo(entrada, e.agora())
	if !ok {
		return repetir(opcaoInvalida(menuPeriodo()), ctx)
	}

	nc := ctx.Clonado()
	nc.DataInicio, nc.DataFim = periodo.Datas()

	switch nc.SubFluxo {
	case fluxoSupervisor:
		nc.SubFluxo = models.SubFluxoCarregarSupervisores
	case fluxoVendedor:
		nc.SubFluxo = models.SubFluxoCarregarVendedores
	case fluxoFabricante:
		nc.SubFluxo = models.SubFluxoVendasFabricante
	default:
		// Contexto sem fluxo selecionado: sessão corrompida, volta ao menu.
		return e.transicaoParaMenu(roles, nome)
	}

	return transicaoDeProcessamento(nc)
}

func (e *Engine) processarEscolhaSupervisor(entrada string, ctx *models.Contexto) Transicao {
	supervisor, ok := SupervisorPorCodigo(entrada)
	if !ok {
		return repetir(opcaoInvalida(MenuEscolhaSupervisor()), ctx)
	}

	nc := ctx.Clonado()
	if nc.Supervisor == nil {
		nc.Supervisor = &models.ContextoSupervisor{}
	}
	nc.Supervisor.CodigoEscolhido = supervisor.Codigo
	nc.Supervisor.SupervisorEscolhido = supervisor.Nome
	nc.SubFluxo = models.SubFluxoAnaliseSupervisor

	return transicaoDeProcessamento(nc)
}

func (e *Engine) processarPosAnaliseSupervisor(entrada string, ctx *models.Contexto, roles []string, nome string) Transicao {
	switch entrada {
	case "1":
		return Transicao{
			ProximoEstado: models.EstadoAguardandoEscolhaSupervisor,
			Contexto:      ctx.Clonado(),
			Resposta:      MenuEscolhaSupervisor(),
		}
	case "2":
		return e.transicaoParaMenu(roles, nome)
	}
	return repetir(PromptOutraAnalise("O que deseja fazer agora?", models.EstadoExibindoAnaliseSupervisor), ctx)
}

func (e *Engine) processarCodigoVendedor(entrada string, ctx *models.Contexto, roles []string, nome string) Transicao {
	if ctx == nil || ctx.Vendedor == nil || len(ctx.Vendedor.Lista) == 0 {
		return e.transicaoParaMenu(roles, nome)
	}

	codigo, err := strconv.Atoi(entrada)
	if err == nil {
		for _, v := range ctx.Vendedor.Lista {
			if v.SetorClientes == codigo {
				nc := ctx.Clonado()
				nc.Vendedor.CodigoEscolhido = codigo
				nc.SubFluxo = models.SubFluxoAnaliseVendedor
				return transicaoDeProcessamento(nc)
			}
		}
	}

	return repetir(opcaoInvalida(PromptEscolhaVendedor(ctx.Vendedor.Lista)), ctx)
}

func (e *Engine) processarPosAnaliseVendedor(entrada string, ctx *models.Contexto, roles []string, nome string) Transicao {
	switch entrada {
	case "1":
		if ctx == nil || ctx.Vendedor == nil || len(ctx.Vendedor.Lista) == 0 {
			return e.transicaoParaMenu(roles, nome)
		}
		return Transicao{
			ProximoEstado: models.EstadoAguardandoCodigoVendedor,
			Contexto:      ctx.Clonado(),
			Resposta:      PromptEscolhaVendedor(ctx.Vendedor.Lista),
		}
	case "2":
		return e.transicaoParaMenu(roles, nome)
	}
	return repetir(PromptOutraAnalise("O que deseja fazer agora?", models.EstadoExibindoAnaliseVendedor), ctx)
}

func (e *Engine) processarTipoResumo(entrada string, ctx *models.Contexto) Transicao {
	var janela string
	switch entrada {
	case "1":
		janela = models.JanelaSemanaAtual
	case "2":
		janela = models.JanelaSemanaAnterior
	case "3":
		janela = models.JanelaMesAtual
	case "4":
		janela = models.JanelaAnoPorSemana
	case "5":
		janela = models.JanelaAnoPorMes
	default:
		return repetir(opcaoInvalida(menuTipoResumo()), ctx)
	}

	periodo, _ := PeriodoPorJanela(janela, e.agora())

	nc := ctx.Clonado()
	if nc.Dia == nil {
		nc.Dia = &models.ContextoDia{}
	}
	nc.Dia.Janela = janela
	nc.DataInicio, nc.DataFim = periodo.Datas()

	return Transicao{
		ProximoEstado: models.EstadoAguardandoFormato,
		Contexto:      nc,
		Resposta:      menuFormato(),
	}
}

func (e *Engine) processarFormato(entrada string, ctx *models.Contexto) Transicao {
	var formato string
	switch entrada {
	case "1":
		formato = models.FormatoTexto
	case "2":
		formato = models.FormatoGrafico
	default:
		return repetir(opcaoInvalida(menuFormato()), ctx)
	}

	nc := ctx.Clonado()
	if nc.Dia == nil {
		nc.Dia = &models.ContextoDia{}
	}
	nc.Dia.Formato = formato
	nc.SubFluxo = models.SubFluxoVendasDia

	return transicaoDeProcessamento(nc)
}

func (e *Engine) processarPosResultadoDia(entrada string, roles []string, nome string) Transicao {
	switch entrada {
	case "1":
		return Transicao{
			ProximoEstado: models.EstadoAguardandoTipoResumo,
			Contexto:      &models.Contexto{Dia: &models.ContextoDia{}},
			Resposta:      menuTipoResumo(),
		}
	case "2":
		return e.transicaoParaMenu(roles, nome)
	}
	return repetir(PromptOutraAnalise("O que deseja fazer agora?", models.EstadoExibindoResultadoDia), nil)
}

// menuPorRoles escolhe o menu de entrada conforme o perfil: admin e diretoria
// veem o menu principal, comercial vai direto ao menu comercial, financeiro ao
// financeiro. Perfil sem role reconhecida não navega.
func (e *Engine) menuPorRoles(roles []string, nome string) models.MensagemBotResponse {
	switch {
	case auth.Autorizar(roles, []string{string(models.RoleAdmin), string(models.RoleDiretoria)}):
		return menuPrincipal(nome)
	case auth.Autorizar(roles, []string{string(models.RoleComercial)}):
		return menuComercial()
	case auth.Autorizar(roles, []string{string(models.RoleFinanceiro)}):
		return menuFinanceiro()
	}
	return menuPerfilNaoConfigurado()
}

// MenuPorRoles é a versão exportada usada pelo controller ao retomar a
// conversa depois de uma consulta.
func (e *Engine) MenuPorRoles(roles []string, nome string) models.MensagemBotResponse {
	return e.menuPorRoles(roles, nome)
}

func (e *Engine) transicaoParaMenu(roles []string, nome string) Transicao {
	resposta := e.menuPorRoles(roles, nome)
	return Transicao{
		ProximoEstado: resposta.ProximoEstado,
		Contexto:      models.NovoContexto(),
		Resposta:      resposta,
	}
}

func transicaoDeProcessamento(ctx *models.Contexto) Transicao {
	return Transicao{
		ProximoEstado: models.EstadoProcessando,
		Contexto:      ctx,
		Resposta:      respostaProcessando(),
	}
}

func transicaoDeLogout() Transicao {
	return Transicao{
		ProximoEstado: models.EstadoEncerrado,
		Contexto:      models.NovoContexto(),
		Resposta:      respostaDespedida(),
		Logout:        true,
	}
}

// repetir mantém estado e contexto, trocando só a resposta.
func repetir(resposta models.MensagemBotResponse, ctx *models.Contexto) Transicao {
	return Transicao{
		ProximoEstado: resposta.ProximoEstado,
		Contexto:      ctx.Clonado(),
		Resposta:      resposta,
	}
}

func opcaoInvalida(resposta models.MensagemBotResponse) models.MensagemBotResponse {
	resposta.Resposta = "❌ Opção inválida.\n\n" + resposta.Resposta
	return resposta
}
