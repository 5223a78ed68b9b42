package flow

import (
	"fmt"
	"strings"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

// Construtores dos menus fixos da conversa. Os ids das opções são os códigos
// literais que o usuário digita.

func menuPrincipal(nome string) models.MensagemBotResponse {
	saudacao := "🏪 *Bem-vindo ao Chatbot BonnaVitta*"
	if nome != "" {
		saudacao = fmt.Sprintf("🏪 *Bem-vindo, %s!*", nome)
	}
	return models.MensagemBotResponse{
		Resposta: saudacao + "\n\nO que deseja consultar?\n",
		Opcoes: []models.OpcaoMenu{
			{ID: "1", Texto: "Menu Comercial", Emoji: "📊"},
			{ID: "0", Texto: "Sair", Emoji: "👋"},
		},
		ProximoEstado: models.EstadoMenuPrincipal,
	}
}

func menuComercial() models.MensagemBotResponse {
	return models.MensagemBotResponse{
		Resposta: "📊 *Menu Comercial*\n\nO que deseja consultar?\n",
		Opcoes: []models.OpcaoMenu{
			{ID: "1", Texto: "Vendas por Supervisor", Emoji: "👔"},
			{ID: "2", Texto: "Vendas por Vendedor", Emoji: "👥"},
			{ID: "3", Texto: "Vendas por Dia", Emoji: "📅"},
			{ID: "4", Texto: "Totalizador por Fabricante", Emoji: "🏭"},
			{ID: "0", Texto: "Sair", Emoji: "👋"},
		},
		ProximoEstado: models.EstadoMenuComercial,
	}
}

func menuFinanceiro() models.MensagemBotResponse {
	return models.MensagemBotResponse{
		Resposta: "💼 *Menu Financeiro*\n\nConsultas financeiras ainda não estão disponíveis.\n",
		Opcoes: []models.OpcaoMenu{
			{ID: "0", Texto: "Sair", Emoji: "👋"},
		},
		ProximoEstado: models.EstadoMenuFinanceiro,
	}
}

func menuPerfilNaoConfigurado() models.MensagemBotResponse {
	return models.MensagemBotResponse{
		Resposta: "⚠️ Seu perfil de acesso ainda não foi configurado.\n" +
			"Fale com o administrador do sistema.\n",
		Opcoes: []models.OpcaoMenu{
			{ID: "0", Texto: "Sair", Emoji: "👋"},
		},
		ProximoEstado: models.EstadoMenuPrincipal,
	}
}

func menuPeriodo() models.MensagemBotResponse {
	return models.MensagemBotResponse{
		Resposta: "📅 *Qual período deseja consultar?*\n",
		Opcoes: []models.OpcaoMenu{
			{ID: "1", Texto: "Hoje", Emoji: "📍"},
			{ID: "2", Texto: "Ontem", Emoji: "⏮️"},
			{ID: "3", Texto: "Semana anterior", Emoji: "📆"},
			{ID: "4", Texto: "Este mês", Emoji: "📅"},
			{ID: "5", Texto: "Mês anterior", Emoji: "⏪"},
		},
		ProximoEstado: models.EstadoAguardandoPeriodo,
	}
}

func menuTipoResumo() models.MensagemBotResponse {
	return models.MensagemBotResponse{
		Resposta: "📅 *Vendas por Dia*\n\nQual resumo deseja ver?\n",
		Opcoes: []models.OpcaoMenu{
			{ID: "1", Texto: "Semana atual", Emoji: "📍"},
			{ID: "2", Texto: "Semana anterior", Emoji: "⏮️"},
			{ID: "3", Texto: "Mês atual", Emoji: "📅"},
			{ID: "4", Texto: "Ano, semana a semana", Emoji: "🗓️"},
			{ID: "5", Texto: "Ano, mês a mês", Emoji: "📊"},
		},
		ProximoEstado: models.EstadoAguardandoTipoResumo,
	}
}

func menuFormato() models.MensagemBotResponse {
	return models.MensagemBotResponse{
		Resposta: "Como deseja visualizar?\n",
		Opcoes: []models.OpcaoMenu{
			{ID: "1", Texto: "Texto detalhado", Emoji: "📝"},
			{ID: "2", Texto: "Gráfico", Emoji: "📈"},
		},
		ProximoEstado: models.EstadoAguardandoFormato,
	}
}

func MenuEscolhaSupervisor() models.MensagemBotResponse {
	var b strings.Builder
	b.WriteString("👔 *Escolha um supervisor para a análise:*\n\n")
	for _, s := range supervisoresRegistrados {
		fmt.Fprintf(&b, "%d - %s (%s)\n", s.Codigo, s.Nome, s.Equipe)
	}
	return models.MensagemBotResponse{
		Resposta:      b.String(),
		ProximoEstado: models.EstadoAguardandoEscolhaSupervisor,
	}
}

// PromptEscolhaVendedor lista os vendedores retornados pela consulta para que
// o usuário escolha um pelo código de setor.
func PromptEscolhaVendedor(lista []models.VendaPorVendedorEmEquipe) models.MensagemBotResponse {
	var b strings.Builder
	b.WriteString("👥 *Digite o código do vendedor para ver o detalhe:*\n\n")
	for _, v := range lista {
		fmt.Fprintf(&b, "%d - %s\n", v.SetorClientes, v.NomeVendedor)
	}
	return models.MensagemBotResponse{
		Resposta:      b.String(),
		ProximoEstado: models.EstadoAguardandoCodigoVendedor,
	}
}

func PromptOutraAnalise(texto string, proximo models.Estado) models.MensagemBotResponse {
	return models.MensagemBotResponse{
		Resposta: texto,
		Opcoes: []models.OpcaoMenu{
			{ID: "1", Texto: "Ver outra análise", Emoji: "🔁"},
			{ID: "2", Texto: "Menu principal", Emoji: "🏠"},
		},
		ProximoEstado: proximo,
	}
}

func respostaProcessando() models.MensagemBotResponse {
	return models.MensagemBotResponse{
		Resposta:      "Processando sua consulta...",
		ProximoEstado: models.EstadoProcessando,
	}
}

func respostaDespedida() models.MensagemBotResponse {
	return models.MensagemBotResponse{
		Resposta:      "Até logo! 👋",
		ProximoEstado: models.EstadoEncerrado,
	}
}
