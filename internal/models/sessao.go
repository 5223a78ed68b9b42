package models

import "fmt"

// Canal identifica a plataforma de mensagens de origem.
type Canal string

const (
	CanalTelegram Canal = "telegram"
	CanalWhatsApp Canal = "whatsapp"
)

// CanalValido informa se a string corresponde a um canal suportado.
func CanalValido(c string) bool {
	return c == string(CanalTelegram) || c == string(CanalWhatsApp)
}

// ChaveSessao é a chave composta (canal, chatId) que identifica uma sessão.
// Toda consulta de sessão a partir da camada de canal usa esta chave, nunca o
// id numérico diretamente.
type ChaveSessao struct {
	Canal  Canal
	ChatID string
}

func (k ChaveSessao) String() string {
	return fmt.Sprintf("%s_%s", k.Canal, k.ChatID)
}

// Estado é o conjunto fechado de estados da conversa. O motor de fluxo nunca
// deixa a sessão fora desta enumeração.
type Estado string

const (
	EstadoAguardandoCPF      Estado = "aguardando_cpf"
	EstadoAguardandoTelefone Estado = "aguardando_telefone"
	EstadoMenuPrincipal      Estado = "menu_principal"
	EstadoMenuComercial      Estado = "menu_comercial"
	EstadoMenuFinanceiro     Estado = "menu_financeiro"

	EstadoAguardandoPeriodo           Estado = "aguardando_periodo"
	EstadoAguardandoEscolhaSupervisor Estado = "aguardando_escolha_supervisor"
	EstadoExibindoAnaliseSupervisor   Estado = "exibindo_analise_supervisor"
	EstadoAguardandoCodigoVendedor    Estado = "aguardando_codigo_vendedor"
	EstadoExibindoAnaliseVendedor     Estado = "exibindo_analise_vendedor"
	EstadoAguardandoTipoResumo        Estado = "aguardando_tipo_resumo"
	EstadoAguardandoFormato           Estado = "aguardando_formato"
	EstadoExibindoResultadoDia        Estado = "exibindo_resultado_dia"

	EstadoProcessando Estado = "processando"
	EstadoEncerrado   Estado = "encerrado"
)

// EstadoValido informa se o estado pertence à enumeração.
func EstadoValido(e Estado) bool {
	switch e {
	case EstadoAguardandoCPF, EstadoAguardandoTelefone,
		EstadoMenuPrincipal, EstadoMenuComercial, EstadoMenuFinanceiro,
		EstadoAguardandoPeriodo, EstadoAguardandoEscolhaSupervisor,
		EstadoExibindoAnaliseSupervisor, EstadoAguardandoCodigoVendedor,
		EstadoExibindoAnaliseVendedor, EstadoAguardandoTipoResumo,
		EstadoAguardandoFormato, EstadoExibindoResultadoDia,
		EstadoProcessando, EstadoEncerrado:
		return true
	}
	return false
}

// EstadoDeLogin informa se o estado faz parte do gate de identidade, onde as
// palavras-chave globais de reset não se aplicam.
func EstadoDeLogin(e Estado) bool {
	return e == EstadoAguardandoCPF || e == EstadoAguardandoTelefone
}

// Sessao guarda o estado conversacional de um par (canal, chatId).
type Sessao struct {
	ID        int64     `json:"id"`
	UsuarioID int       `json:"usuarioId"`
	Canal     Canal     `json:"canal"`
	ChatID    string    `json:"chatId"`
	Estado    Estado    `json:"estadoAtual"`
	Contexto  *Contexto `json:"dadosContexto"`
	Token     string    `json:"token"`
}

// Chave devolve a chave composta desta sessão.
func (s *Sessao) Chave() ChaveSessao {
	return ChaveSessao{Canal: s.Canal, ChatID: s.ChatID}
}
