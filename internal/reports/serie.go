package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

// SeriePonto é um ponto agregado da série de vendas por dia: o eixo X do
// gráfico e a linha do texto detalhado.
type SeriePonto struct {
	Rotulo            string
	TotalVendas       float64
	QuantidadePedidos int
}

var mesesAbreviados = [12]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// SeriePorJanela agrega o record set diário na granularidade da janela
// pedida: janelas de semana e mês ficam dia a dia, as janelas de ano são
// reagrupadas semana a semana ou mês a mês. Linhas com data ilegível são
// descartadas.
func SeriePorJanela(janela string, vendas []models.VendaPorDia) []SeriePonto {
	switch janela {
	case models.JanelaAnoPorSemana:
		return agrupar(vendas, func(t time.Time) string {
			return fmt.Sprintf("Sem %02d", semanaNoAno(t))
		})
	case models.JanelaAnoPorMes:
		return agrupar(vendas, func(t time.Time) string {
			return mesesAbreviados[t.Month()-1]
		})
	}
	return serieDiaria(vendas)
}

// semanaNoAno devolve a semana ISO presa ao ano-calendário da data: dias de
// janeiro que ainda pertencem à última semana ISO do ano anterior contam como
// semana 1, e dias de dezembro que já caem na semana 1 do ano seguinte contam
// como a última semana do ano corrente. Sem isso uma série anual começaria
// com um balde "Sem 53".
func semanaNoAno(t time.Time) int {
	anoISO, semana := t.ISOWeek()
	switch {
	case anoISO < t.Year():
		return 1
	case anoISO > t.Year():
		_, ultima := time.Date(t.Year(), time.December, 28, 0, 0, 0, 0, t.Location()).ISOWeek()
		return ultima
	}
	return semana
}

func serieDiaria(vendas []models.VendaPorDia) []SeriePonto {
	pontos := make([]SeriePonto, 0, len(vendas))
	for _, v := range vendas {
		rotulo := FormatarData(v.Data)
		if v.DiaSemana != "" {
			rotulo = fmt.Sprintf("%s (%s)", rotulo, v.DiaSemana)
		}
		pontos = append(pontos, SeriePonto{
			Rotulo:            rotulo,
			TotalVendas:       v.TotalVendas,
			QuantidadePedidos: v.QuantidadePedidos,
		})
	}
	return pontos
}

// agrupar acumula as linhas diárias pelo rótulo derivado da data, preservando
// a ordem cronológica do record set.
func agrupar(vendas []models.VendaPorDia, rotuloDe func(time.Time) string) []SeriePonto {
	var pontos []SeriePonto
	indice := make(map[string]int)

	for _, v := range vendas {
		t, ok := parseData(v.Data)
		if !ok {
			continue
		}
		rotulo := rotuloDe(t)
		i, visto := indice[rotulo]
		if !visto {
			indice[rotulo] = len(pontos)
			pontos = append(pontos, SeriePonto{Rotulo: rotulo})
			i = len(pontos) - 1
		}
		pontos[i].TotalVendas += v.TotalVendas
		pontos[i].QuantidadePedidos += v.QuantidadePedidos
	}
	return pontos
}

// FormatarSerie monta o texto detalhado da série de vendas por dia.
func FormatarSerie(titulo string, pontos []SeriePonto) string {
	if len(pontos) == 0 {
		return semDados
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 *%s*\n\n", titulo)

	var totalGeral float64
	var totalPedidos int
	for _, p := range pontos {
		fmt.Fprintf(&b, "*%s*\n", p.Rotulo)
		fmt.Fprintf(&b, "  Venda R$ %s\n", FormatarMoeda(p.TotalVendas))
		fmt.Fprintf(&b, "  Quantidade de pedidos: %d\n\n", p.QuantidadePedidos)
		totalGeral += p.TotalVendas
		totalPedidos += p.QuantidadePedidos
	}

	fmt.Fprintf(&b, "*💰 TOTAL: R$ %s em %d pedido(s)*\n", FormatarMoeda(totalGeral), totalPedidos)
	return b.String()
}

// TituloDaJanela é o título de exibição das janelas do fluxo de vendas por
// dia.
func TituloDaJanela(janela string) string {
	switch janela {
	case models.JanelaSemanaAtual:
		return "Vendas da Semana Atual"
	case models.JanelaSemanaAnterior:
		return "Vendas da Semana Anterior"
	case models.JanelaMesAtual:
		return "Vendas do Mês Atual"
	case models.JanelaAnoPorSemana:
		return "Vendas do Ano, Semana a Semana"
	case models.JanelaAnoPorMes:
		return "Vendas do Ano, Mês a Mês"
	}
	return "Vendas por Dia"
}
