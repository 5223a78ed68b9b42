package flow

import (
	"time"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

const formatoData = "2006-01-02"

// Periodo é um intervalo fechado de datas, sempre com Inicio <= Fim.
type Periodo struct {
	Inicio time.Time
	Fim    time.Time
}

// Datas devolve o intervalo no formato aceito pelas procedures (YYYY-MM-DD).
func (p Periodo) Datas() (string, string) {
	return p.Inicio.Format(formatoData), p.Fim.Format(formatoData)
}

// inicioDoDia trunca para meia-noite no fuso de t.
func inicioDoDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// inicioDaSemana devolve a segunda-feira da semana de t. Semanas começam na
// segunda e terminam no domingo; o cálculo é feito no fuso local configurado
// para evitar deslocamento de um dia perto da meia-noite.
func inicioDaSemana(t time.Time) time.Time {
	dia := inicioDoDia(t)
	desloc := int(dia.Weekday()) - 1
	if dia.Weekday() == time.Sunday {
		desloc = 6
	}
	return dia.AddDate(0, 0, -desloc)
}

// PeriodoPorCodigo mapeia os códigos 1-5 do menu de período:
// 1 hoje, 2 ontem, 3 semana anterior (seg-dom), 4 mês atual, 5 mês anterior.
func PeriodoPorCodigo(codigo string, agora time.Time) (Periodo, bool) {
	hoje := inicioDoDia(agora)

	switch codigo {
	case "1":
		return Periodo{Inicio: hoje, Fim: hoje}, true
	case "2":
		ontem := hoje.AddDate(0, 0, -1)
		return Periodo{Inicio: ontem, Fim: ontem}, true
	case "3":
		segunda := inicioDaSemana(hoje).AddDate(0, 0, -7)
		return Periodo{Inicio: segunda, Fim: segunda.AddDate(0, 0, 6)}, true
	case "4":
		primeiro := time.Date(hoje.Year(), hoje.Month(), 1, 0, 0, 0, 0, hoje.Location())
		return Periodo{Inicio: primeiro, Fim: hoje}, true
	case "5":
		primeiroAtual := time.Date(hoje.Year(), hoje.Month(), 1, 0, 0, 0, 0, hoje.Location())
		return Periodo{
			Inicio: primeiroAtual.AddDate(0, -1, 0),
			Fim:    primeiroAtual.AddDate(0, 0, -1),
		}, true
	}
	return Periodo{}, false
}

// PeriodoPorJanela mapeia as janelas do fluxo "Vendas por Dia".
func PeriodoPorJanela(janela string, agora time.Time) (Periodo, bool) {
	hoje := inicioDoDia(agora)

	switch janela {
	case models.JanelaSemanaAtual:
		return Periodo{Inicio: inicioDaSemana(hoje), Fim: hoje}, true
	case models.JanelaSemanaAnterior:
		segunda := inicioDaSemana(hoje).AddDate(0, 0, -7)
		return Periodo{Inicio: segunda, Fim: segunda.AddDate(0, 0, 6)}, true
	case models.JanelaMesAtual:
		primeiro := time.Date(hoje.Year(), hoje.Month(), 1, 0, 0, 0, 0, hoje.Location())
		return Periodo{Inicio: primeiro, Fim: hoje}, true
	case models.JanelaAnoPorSemana, models.JanelaAnoPorMes:
		primeiro := time.Date(hoje.Year(), time.January, 1, 0, 0, 0, 0, hoje.Location())
		return Periodo{Inicio: primeiro, Fim: hoje}, true
	}
	return Periodo{}, false
}
