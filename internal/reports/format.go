package reports

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

const semDados = "Nenhum dado encontrado para o período solicitado."

// FormatarMoeda converte o valor para o formato pt-BR, com ponto de milhar e
// vírgula decimal: 1234567.8 vira 1.234.567,80.
func FormatarMoeda(valor float64) string {
	negativo := valor < 0
	if negativo {
		valor = -valor
	}

	bruto := strconv.FormatFloat(valor, 'f', 2, 64)
	inteiro, decimal, _ := strings.Cut(bruto, ".")

	var b strings.Builder
	for i := 0; i < len(inteiro); i++ {
		if i > 0 && (len(inteiro)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(inteiro[i])
	}

	resultado := b.String() + "," + decimal
	if negativo {
		return "-" + resultado
	}
	return resultado
}

// FormatarData converte uma data ISO (com ou sem hora) para DD/MM/YYYY.
// Entrada não reconhecida é devolvida como veio.
func FormatarData(iso string) string {
	t, ok := parseData(iso)
	if !ok {
		return iso
	}
	return t.Format("02/01/2006")
}

func parseData(valor string) (time.Time, bool) {
	recorte, _, _ := strings.Cut(valor, "T")
	if t, err := time.Parse("2006-01-02", recorte); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatarVendasPorSupervisor monta o totalizador por supervisor.
func FormatarVendasPorSupervisor(vendas []models.VendaPorSupervisor) string {
	if len(vendas) == 0 {
		return semDados
	}

	var b strings.Builder
	b.WriteString("📊 *Totalizador de Vendas por Supervisor*\n\n")

	var totalGeral float64
	for _, v := range vendas {
		fmt.Fprintf(&b, "*%s*\n", v.NomeSupervisor)
		fmt.Fprintf(&b, "  💰 Total de Vendas: R$ %s\n", FormatarMoeda(v.TotalVendas))
		fmt.Fprintf(&b, "  🎫 Ticket Médio: R$ %s\n", FormatarMoeda(v.TicketMedio))
		fmt.Fprintf(&b, "  📦 Pedidos: %d\n", v.QuantidadePedidos)
		fmt.Fprintf(&b, "  👥 Vendedores: %d\n\n", v.QuantidadeVendedores)
		totalGeral += v.TotalVendas
	}

	fmt.Fprintf(&b, "*💰 TOTAL GERAL: R$ %s*\n", FormatarMoeda(totalGeral))
	return b.String()
}

// FormatarVendasPorSupervisorPorEquipe monta o detalhe de um supervisor,
// equipe a equipe.
func FormatarVendasPorSupervisorPorEquipe(nomeSupervisor string, vendas []models.VendaPorEquipeDeSupervisor) string {
	if len(vendas) == 0 {
		return semDados
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👔 *Análise de %s*\n\n", nomeSupervisor)

	var totalGeral float64
	for _, v := range vendas {
		fmt.Fprintf(&b, "*%s*\n", v.EquipeNome)
		fmt.Fprintf(&b, "  Venda R$ %s\n", FormatarMoeda(v.TotalVendas))
		fmt.Fprintf(&b, "  Quantidade de pedidos: %d\n", v.QuantidadePedidos)
		fmt.Fprintf(&b, "  Vendedores com pedido: %d\n\n", v.QuantidadeVendedores)
		totalGeral += v.TotalVendas
	}

	fmt.Fprintf(&b, "*💰 TOTAL GERAL: R$ %s*\n", FormatarMoeda(totalGeral))
	return b.String()
}

// FormatarVendasPorVendedor monta o agregado geral por vendedor.
func FormatarVendasPorVendedor(vendas []models.VendaPorVendedor) string {
	if len(vendas) == 0 {
		return semDados
	}

	var b strings.Builder
	b.WriteString("👥 *Vendas por Vendedor*\n\n")
	for _, v := range vendas {
		fmt.Fprintf(&b, "*%s* (%s)\n", v.NomeVendedor, v.NomeSupervisor)
		fmt.Fprintf(&b, "  💰 Total de Vendas: R$ %s\n", FormatarMoeda(v.TotalVendas))
		fmt.Fprintf(&b, "  🎫 Ticket Médio: R$ %s\n", FormatarMoeda(v.TicketMedio))
		fmt.Fprintf(&b, "  📦 Pedidos: %d\n\n", v.QuantidadePedidos)
	}
	return b.String()
}

// FormatarVendasPorVendedorEmEquipe monta a lista resumida de vendedores com
// seus totais, na ordem do record set.
func FormatarVendasPorVendedorEmEquipe(vendas []models.VendaPorVendedorEmEquipe) string {
	if len(vendas) == 0 {
		return semDados
	}

	var b strings.Builder
	b.WriteString("👥 *Totalizador de Vendas por Vendedor*\n\n")

	var totalGeral float64
	for _, v := range vendas {
		fmt.Fprintf(&b, "%d - *%s* - Valor R$ %s\n", v.SetorClientes, v.NomeVendedor, FormatarMoeda(v.TotalVendas))
		totalGeral += v.TotalVendas
	}

	fmt.Fprintf(&b, "\n*Total: R$ %s*\n", FormatarMoeda(totalGeral))
	return b.String()
}

// FormatarDetalheVendedor monta a análise completa de um vendedor.
func FormatarDetalheVendedor(d *models.DetalheVendedor) string {
	if d == nil {
		return semDados
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*%d - %s*\n", d.SetorClientes, d.NomeVendedor)
	fmt.Fprintf(&b, "Vendas R$ %s\n", FormatarMoeda(d.TotalVendas))
	fmt.Fprintf(&b, "Quantidade de pedidos: %d\n", d.QuantidadePedidos)
	fmt.Fprintf(&b, "Quantidade de clientes: %d\n", d.QuantidadeClientes)
	fmt.Fprintf(&b, "Fabricante mais vendido: %s\n", d.FabricanteMaisVendido)
	fmt.Fprintf(&b, "Produto mais vendido: %s\n", d.ProdutoMaisVendido)
	return b.String()
}

// FormatarVendasPorFabricante monta o totalizador por fabricante, numerado.
func FormatarVendasPorFabricante(vendas []models.VendaPorFabricante) string {
	if len(vendas) == 0 {
		return semDados
	}

	var b strings.Builder
	b.WriteString("🏭 *Totalizador de Vendas por Fabricante*\n\n")

	var totalGeral float64
	for i, v := range vendas {
		fmt.Fprintf(&b, "%d - %s - R$ %s\n", i+1, v.NomeFabricante, FormatarMoeda(v.TotalVendas))
		totalGeral += v.TotalVendas
	}

	fmt.Fprintf(&b, "\n*💰 TOTAL GERAL: R$ %s*\n", FormatarMoeda(totalGeral))
	return b.String()
}

// FormatarDetalheFabricante monta a análise completa de um fabricante.
func FormatarDetalheFabricante(d *models.DetalheFabricante) string {
	if d == nil {
		return semDados
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*%s* - R$ %s\n", d.NomeFabricante, FormatarMoeda(d.TotalVendas))
	fmt.Fprintf(&b, "Quantidade de pedidos: %d\n", d.QuantidadePedidos)
	fmt.Fprintf(&b, "Vendedores: %d\n", d.QuantidadeVendedores)
	fmt.Fprintf(&b, "Clientes: %d\n", d.QuantidadeClientes)
	fmt.Fprintf(&b, "Produto mais vendido: %s\n", d.ProdutoMaisVendido)
	fmt.Fprintf(&b, "Quantidade do produto mais vendido: %d volume(s)\n", d.QuantidadeProdutoMaisVendido)
	return b.String()
}

// FormatarRankingProdutos monta o ranking de produtos mais vendidos.
func FormatarRankingProdutos(produtos []models.RankingProduto) string {
	if len(produtos) == 0 {
		return "Nenhum produto vendido no período."
	}

	var b strings.Builder
	b.WriteString("🏆 *Ranking de Produtos*\n\n")
	for i, p := range produtos {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, p.NomeProduto)
		fmt.Fprintf(&b, "   🏭 Fabricante: %s\n", p.NomeFabricante)
		fmt.Fprintf(&b, "   📦 Quantidade: %d un.\n", p.QuantidadeVendida)
		fmt.Fprintf(&b, "   💰 Total: R$ %s\n", FormatarMoeda(p.TotalVendas))
		fmt.Fprintf(&b, "   🎫 Ticket Médio: R$ %s\n\n", FormatarMoeda(p.TicketMedio))
	}
	return b.String()
}

// FormatarTicketMedio monta o resumo geral do ticket médio.
func FormatarTicketMedio(d *models.TicketMedio) string {
	if d == nil {
		d = &models.TicketMedio{}
	}
	var b strings.Builder
	b.WriteString("🎫 *Ticket Médio Geral*\n\n")
	fmt.Fprintf(&b, "  💰 Ticket Médio: R$ %s\n", FormatarMoeda(d.TicketMedio))
	fmt.Fprintf(&b, "  💵 Total de Vendas: R$ %s\n", FormatarMoeda(d.TotalVendas))
	fmt.Fprintf(&b, "  📦 Total de Pedidos: %d\n", d.TotalPedidos)
	return b.String()
}
