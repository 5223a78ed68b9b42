package models

// Sub-fluxos de consulta. O valor é gravado no contexto quando o motor de
// fluxo entra em PROCESSANDO e diz ao controller qual operação do gateway de
// relatórios executar.
const (
	SubFluxoCarregarSupervisores = "carregar_supervisores"
	SubFluxoAnaliseSupervisor    = "analise_supervisor"
	SubFluxoCarregarVendedores   = "carregar_vendedores"
	SubFluxoAnaliseVendedor      = "analise_vendedor"
	SubFluxoVendasDia            = "vendas_dia"
	SubFluxoVendasFabricante     = "vendas_fabricante"
)

// Janelas de agregação do fluxo "Vendas por Dia".
const (
	JanelaSemanaAtual    = "semana_atual"
	JanelaSemanaAnterior = "semana_anterior"
	JanelaMesAtual       = "mes_atual"
	JanelaAnoPorSemana   = "ano_por_semana"
	JanelaAnoPorMes      = "ano_por_mes"
)

// Formatos de exibição do fluxo "Vendas por Dia".
const (
	FormatoTexto   = "texto"
	FormatoGrafico = "grafico"
)

// Contexto é o estado acumulado de uma consulta em andamento. Cada sub-fluxo
// carrega apenas a sua variante; as demais ficam nil. Um contexto novo é
// construído na entrada de cada fluxo e descartado na saída, evitando campos
// obsoletos de fluxos anteriores.
type Contexto struct {
	SubFluxo   string `json:"subFluxo,omitempty"`
	DataInicio string `json:"dataInicio,omitempty"`
	DataFim    string `json:"dataFim,omitempty"`

	// CPF aceito no primeiro passo do login, aguardando o telefone.
	CPFPendente string `json:"cpfPendente,omitempty"`

	Supervisor *ContextoSupervisor `json:"supervisor,omitempty"`
	Vendedor   *ContextoVendedor   `json:"vendedor,omitempty"`
	Dia        *ContextoDia        `json:"dia,omitempty"`
}

// NovoContexto devolve um contexto vazio.
func NovoContexto() *Contexto {
	return &Contexto{}
}

// Clonado devolve uma cópia do contexto com variantes próprias, para que a
// mutação de um turno não vaze para a sessão ainda persistida. As listas
// internas continuam compartilhadas; são somente-leitura após carregadas.
func (c *Contexto) Clonado() *Contexto {
	if c == nil {
		return NovoContexto()
	}
	cp := *c
	if c.Supervisor != nil {
		sup := *c.Supervisor
		cp.Supervisor = &sup
	}
	if c.Vendedor != nil {
		ven := *c.Vendedor
		cp.Vendedor = &ven
	}
	if c.Dia != nil {
		dia := *c.Dia
		cp.Dia = &dia
	}
	return &cp
}

// ContextoSupervisor guarda o andamento do fluxo de supervisores: a lista
// carregada na primeira consulta é reaproveitada quando o usuário pede outra
// análise, sem nova ida ao banco.
type ContextoSupervisor struct {
	Lista               []VendaPorSupervisor `json:"lista,omitempty"`
	CodigoEscolhido     int                  `json:"codigoEscolhido,omitempty"`
	SupervisorEscolhido string               `json:"supervisorEscolhido,omitempty"`
}

// ContextoVendedor guarda o andamento do fluxo de vendedores.
type ContextoVendedor struct {
	Lista           []VendaPorVendedorEmEquipe `json:"lista,omitempty"`
	EquipeNome      string                     `json:"equipeNome,omitempty"`
	CodigoEscolhido int                        `json:"codigoEscolhido,omitempty"`
}

// ContextoDia guarda o andamento do fluxo "Vendas por Dia".
type ContextoDia struct {
	Janela  string `json:"janela,omitempty"`
	Formato string `json:"formato,omitempty"`
}
