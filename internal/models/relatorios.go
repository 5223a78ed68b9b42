package models

// Projeções somente-leitura devolvidas pelas procedures de vendas. Os nomes
// das colunas seguem os record sets do banco.

// VendaPorSupervisor é o agregado de vendas de um supervisor no período.
type VendaPorSupervisor struct {
	NomeSupervisor       string  `json:"nomeSupervisor" gorm:"column:NomeSupervisor"`
	QuantidadePedidos    int     `json:"quantidadePedidos" gorm:"column:QuantidadePedidos"`
	QuantidadeVendedores int     `json:"quantidadeVendedores" gorm:"column:QuantidadeVendedores"`
	TotalVendas          float64 `json:"totalVendas" gorm:"column:TotalVendas"`
	TicketMedio          float64 `json:"ticketMedio" gorm:"column:TicketMedio"`
}

// VendaPorEquipeDeSupervisor é o detalhe de um supervisor, quebrado por equipe.
type VendaPorEquipeDeSupervisor struct {
	EquipeNome           string  `json:"equipeNome" gorm:"column:EquipeNome"`
	QuantidadePedidos    int     `json:"quantidadePedidos" gorm:"column:QuantidadePedidos"`
	QuantidadeVendedores int     `json:"quantidadeVendedores" gorm:"column:QuantidadeVendedores"`
	TotalVendas          float64 `json:"totalVendas" gorm:"column:TotalVendas"`
	TicketMedio          float64 `json:"ticketMedio" gorm:"column:TicketMedio"`
}

// VendaPorVendedor é o agregado geral por vendedor.
type VendaPorVendedor struct {
	NomeVendedor      string  `json:"nomeVendedor" gorm:"column:NomeVendedor"`
	NomeSupervisor    string  `json:"nomeSupervisor" gorm:"column:NomeSupervisor"`
	QuantidadePedidos int     `json:"quantidadePedidos" gorm:"column:QuantidadePedidos"`
	TotalVendas       float64 `json:"totalVendas" gorm:"column:TotalVendas"`
	TicketMedio       float64 `json:"ticketMedio" gorm:"column:TicketMedio"`
}

// VendaPorVendedorEmEquipe é a linha da lista "escolha um vendedor": o código
// SetorClientes identifica o vendedor na análise de detalhe.
type VendaPorVendedorEmEquipe struct {
	SetorClientes     int     `json:"setorClientes" gorm:"column:SetorClientes"`
	NomeVendedor      string  `json:"nomeVendedor" gorm:"column:NomeVendedor"`
	TotalVendas       float64 `json:"totalVendas" gorm:"column:TotalVendas"`
	QuantidadePedidos int     `json:"quantidadePedidos" gorm:"column:QuantidadePedidos"`
	TicketMedio       float64 `json:"ticketMedio" gorm:"column:TicketMedio"`
}

// DetalheVendedor é a análise completa de um vendedor.
type DetalheVendedor struct {
	NomeVendedor                 string  `json:"nomeVendedor" gorm:"column:NomeVendedor"`
	SetorClientes                int     `json:"setorClientes" gorm:"column:SetorClientes"`
	TotalVendas                  float64 `json:"totalVendas" gorm:"column:TotalVendas"`
	QuantidadePedidos            int     `json:"quantidadePedidos" gorm:"column:QuantidadePedidos"`
	QuantidadeClientes           int     `json:"quantidadeClientes" gorm:"column:QuantidadeClientes"`
	FabricanteMaisVendido        string  `json:"fabricanteMaisVendido" gorm:"column:FabricanteMaisVendido"`
	ProdutoMaisVendido           string  `json:"produtoMaisVendido" gorm:"column:ProdutoMaisVendido"`
	QuantidadeProdutoMaisVendido int     `json:"quantidadeProdutoMaisVendido" gorm:"column:QuantidadeProdutoMaisVendido"`
}

// VendaPorDiaResumo é o resumo diário com ticket médio.
type VendaPorDiaResumo struct {
	Data              string  `json:"data" gorm:"column:Data"`
	QuantidadePedidos int     `json:"quantidadePedidos" gorm:"column:QuantidadePedidos"`
	TotalVendas       float64 `json:"totalVendas" gorm:"column:TotalVendas"`
	TicketMedio       float64 `json:"ticketMedio" gorm:"column:TicketMedio"`
}

// VendaPorDia é o agregado diário com dia da semana.
type VendaPorDia struct {
	Data              string  `json:"data" gorm:"column:Data"`
	DiaSemana         string  `json:"diaSemana" gorm:"column:DiaSemana"`
	TotalVendas       float64 `json:"totalVendas" gorm:"column:TotalVendas"`
	QuantidadePedidos int     `json:"quantidadePedidos" gorm:"column:QuantidadePedidos"`
}

// VendaPorFabricante é o agregado por fabricante.
type VendaPorFabricante struct {
	NomeFabricante    string  `json:"nomeFabricante" gorm:"column:NomeFabricante"`
	QuantidadePedidos int     `json:"quantidadePedidos" gorm:"column:QuantidadePedidos"`
	TotalVendas       float64 `json:"totalVendas" gorm:"column:TotalVendas"`
	TicketMedio       float64 `json:"ticketMedio" gorm:"column:TicketMedio"`
}

// DetalheFabricante é a análise completa de um fabricante.
type DetalheFabricante struct {
	NomeFabricante               string  `json:"nomeFabricante" gorm:"column:NomeFabricante"`
	TotalVendas                  float64 `json:"totalVendas" gorm:"column:TotalVendas"`
	QuantidadePedidos            int     `json:"quantidadePedidos" gorm:"column:QuantidadePedidos"`
	QuantidadeVendedores         int     `json:"quantidadeVendedores" gorm:"column:QuantidadeVendedores"`
	QuantidadeClientes           int     `json:"quantidadeClientes" gorm:"column:QuantidadeClientes"`
	ProdutoMaisVendido           string  `json:"produtoMaisVendido" gorm:"column:ProdutoMaisVendido"`
	QuantidadeProdutoMaisVendido int     `json:"quantidadeProdutoMaisVendido" gorm:"column:QuantidadeProdutoMaisVendido"`
}

// RankingProduto é uma posição no ranking de produtos mais vendidos.
type RankingProduto struct {
	NomeProduto       string  `json:"nomeProduto" gorm:"column:NomeProduto"`
	NomeFabricante    string  `json:"nomeFabricante" gorm:"column:NomeFabricante"`
	QuantidadeVendida int     `json:"quantidadeVendida" gorm:"column:QuantidadeVendida"`
	TotalVendas       float64 `json:"totalVendas" gorm:"column:TotalVendas"`
	TicketMedio       float64 `json:"ticketMedio" gorm:"column:TicketMedio"`
}

// TicketMedio é o resumo geral do ticket médio do período.
type TicketMedio struct {
	TicketMedio  float64 `json:"ticketMedio" gorm:"column:TicketMedio"`
	TotalVendas  float64 `json:"totalVendas" gorm:"column:TotalVendas"`
	TotalPedidos int     `json:"totalPedidos" gorm:"column:TotalPedidos"`
}
