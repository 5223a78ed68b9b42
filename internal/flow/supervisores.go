package flow

import "strconv"

// SupervisorRegistrado é uma entrada do registro fixo de supervisores. A
// ordem de exibição é a ordem do código.
type SupervisorRegistrado struct {
	Codigo int
	Nome   string
	Equipe string
}

// Registro fixo de cinco supervisores; os códigos 1-5 do menu de escolha são
// validados diretamente contra ele.
var supervisoresRegistrados = []SupervisorRegistrado{
	{Codigo: 1, Nome: "Roberto Almeida", Equipe: "Loja"},
	{Codigo: 2, Nome: "Fernanda Souza", Equipe: "Food Service"},
	{Codigo: 3, Nome: "Marcos Pereira", Equipe: "Varejo"},
	{Codigo: 4, Nome: "Juliana Castro", Equipe: "Redes"},
	{Codigo: 5, Nome: "Ricardo Gomes", Equipe: "Telemarketing"},
}

// SupervisoresRegistrados devolve o registro completo, na ordem de exibição.
func SupervisoresRegistrados() []SupervisorRegistrado {
	return supervisoresRegistrados
}

// SupervisorPorCodigo valida o código digitado contra o registro fixo.
func SupervisorPorCodigo(entrada string) (SupervisorRegistrado, bool) {
	codigo, err := strconv.Atoi(entrada)
	if err != nil {
		return SupervisorRegistrado{}, false
	}
	for _, s := range supervisoresRegistrados {
		if s.Codigo == codigo {
			return s, true
		}
	}
	return SupervisorRegistrado{}, false
}
