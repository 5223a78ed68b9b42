package reports

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

// Gateway concentra as consultas de vendas. Toda a agregação pesada vive em
// procedures no banco; aqui só se passa o período e se materializa o record
// set nas projeções de models. Datas sempre no formato YYYY-MM-DD.
type Gateway struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGateway cria o gateway de relatórios.
func NewGateway(db *gorm.DB, logger *zap.Logger) *Gateway {
	return &Gateway{db: db, logger: logger}
}

// VendasPorSupervisor devolve o agregado por supervisor no período.
func (g *Gateway) VendasPorSupervisor(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorSupervisor, error) {
	var vendas []models.VendaPorSupervisor
	err := g.db.WithContext(ctx).
		Raw("SELECT * FROM sp_get_vendas_por_supervisor(?, ?)", dataInicio, dataFim).
		Scan(&vendas).Error
	if err != nil {
		return nil, fmt.Errorf("vendas por supervisor: %w", err)
	}
	g.logger.Info("vendas por supervisor recuperadas", zap.Int("registros", len(vendas)))
	return vendas, nil
}

// VendasPorSupervisorPorEquipe devolve o detalhe de um supervisor quebrado
// por equipe.
func (g *Gateway) VendasPorSupervisorPorEquipe(ctx context.Context, dataInicio, dataFim, nomeSupervisor string) ([]models.VendaPorEquipeDeSupervisor, error) {
	var vendas []models.VendaPorEquipeDeSupervisor
	err := g.db.WithContext(ctx).
		Raw("SELECT * FROM sp_get_vendas_por_supervisor_por_equipe(?, ?, ?)", dataInicio, dataFim, nomeSupervisor).
		Scan(&vendas).Error
	if err != nil {
		return nil, fmt.Errorf("vendas por supervisor %q: %w", nomeSupervisor, err)
	}
	g.logger.Info("detalhe de supervisor recuperado",
		zap.String("supervisor", nomeSupervisor),
		zap.Int("registros", len(vendas)),
	)
	return vendas, nil
}

// VendasPorVendedor devolve o agregado geral por vendedor no período.
func (g *Gateway) VendasPorVendedor(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorVendedor, error) {
	var vendas []models.VendaPorVendedor
	err := g.db.WithContext(ctx).
		Raw("SELECT * FROM sp_get_vendas_por_vendedor(?, ?)", dataInicio, dataFim).
		Scan(&vendas).Error
	if err != nil {
		return nil, fmt.Errorf("vendas por vendedor: %w", err)
	}
	g.logger.Info("vendas por vendedor recuperadas", zap.Int("registros", len(vendas)))
	return vendas, nil
}

// VendasPorVendedorEmEquipe devolve os vendedores de uma equipe com seus
// totais. nomeSetor vazio traz todas as equipes.
func (g *Gateway) VendasPorVendedorEmEquipe(ctx context.Context, dataInicio, dataFim, nomeSetor string) ([]models.VendaPorVendedorEmEquipe, error) {
	var vendas []models.VendaPorVendedorEmEquipe
	err := g.db.WithContext(ctx).
		Raw("SELECT * FROM sp_get_vendas_por_vendedor_em_equipe(?, ?, ?)", dataInicio, dataFim, nomeSetor).
		Scan(&vendas).Error
	if err != nil {
		return nil, fmt.Errorf("vendas por vendedor na equipe %q: %w", nomeSetor, err)
	}
	g.logger.Info("vendedores da equipe recuperados",
		zap.String("equipe", nomeSetor),
		zap.Int("registros", len(vendas)),
	)
	return vendas, nil
}

// DetalheVendedor devolve a análise completa de um vendedor. Vendedor sem
// movimento no período resulta em (nil, nil).
func (g *Gateway) DetalheVendedor(ctx context.Context, dataInicio, dataFim string, setorClientes int) (*models.DetalheVendedor, error) {
	var detalhes []models.DetalheVendedor
	err := g.db.WithContext(ctx).
		Raw("SELECT * FROM sp_get_detalhe_vendedor(?, ?, ?)", dataInicio, dataFim, setorClientes).
		Scan(&detalhes).Error
	if err != nil {
		return nil, fmt.Errorf("detalhe do vendedor %d: %w", setorClientes, err)
	}
	if len(detalhes) == 0 {
		return nil, nil
	}
	g.logger.Info("detalhe de vendedor recuperado", zap.Int("setorClientes", setorClientes))
	return &detalhes[0], nil
}

// VendasPorDia devolve o resumo diário com ticket médio no período.
func (g *Gateway) VendasPorDia(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorDiaResumo, error) {
	var vendas []models.VendaPorDiaResumo
	err := g.db.WithContext(ctx).
		Raw("SELECT * FROM sp_get_vendas_por_dia(?, ?)", dataInicio, dataFim).
		Scan(&vendas).Error
	if err != nil {
		return nil, fmt.Errorf("vendas por dia: %w", err)
	}
	g.logger.Info("vendas por dia recuperadas", zap.Int("registros", len(vendas)))
	return vendas, nil
}

// VendasPorDiaDetalhado devolve o agregado diário com dia da semana, usado
// pelo fluxo de conversa para montar as séries por janela.
func (g *Gateway) VendasPorDiaDetalhado(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorDia, error) {
	var vendas []models.VendaPorDia
	err := g.db.WithContext(ctx).
		Raw("SELECT * FROM sp_get_vendas_por_dia_detalhado(?, ?)", dataInicio, dataFim).
		Scan(&vendas).Error
	if err != nil {
		return nil, fmt.Errorf("vendas por dia detalhado: %w", err)
	}
	g.logger.Info("vendas por dia detalhado recuperadas", zap.Int("registros", len(vendas)))
	return vendas, nil
}

// VendasPorFabricante devolve o agregado por fabricante no período.
func (g *Gateway) VendasPorFabricante(ctx context.Context, dataInicio, dataFim string) ([]models.VendaPorFabricante, error) {
	var vendas []models.VendaPorFabricante
	err := g.db.WithContext(ctx).
		Raw("SELECT * FROM sp_get_vendas_por_fabricante(?, ?)", dataInicio, dataFim).
		Scan(&vendas).Error
	if err != nil {
		return nil, fmt.Errorf("vendas por fabricante: %w", err)
	}
	g.logger.Info("vendas por fabricante recuperadas", zap.Int("registros", len(vendas)))
	return vendas, nil
}

// DetalheFabricante devolve a análise completa de um fabricante. Fabricante
// sem movimento no período resulta em (nil, nil).
func (g *Gateway) DetalheFabricante(ctx context.Context, dataInicio, dataFim, nomeFabricante string) (*models.DetalheFabricante, error) {
	var detalhes []models.DetalheFabricante
	err := g.db.WithContext(ctx).
		Raw("SELECT * FROM sp_get_detalhe_fabricante(?, ?, ?)", dataInicio, dataFim, nomeFabricante).
		Scan(&detalhes).Error
	if err != nil {
		return nil, fmt.Errorf("detalhe do fabricante %q: %w", nomeFabricante, err)
	}
	if len(detalhes) == 0 {
		return nil, nil
	}
	g.logger.Info("detalhe de fabricante recuperado", zap.String("fabricante", nomeFabricante))
	return &detalhes[0], nil
}

// RankingProdutos devolve os produtos mais vendidos no período, limitado.
func (g *Gateway) RankingProdutos(ctx context.Context, dataInicio, dataFim string, limite int) ([]models.RankingProduto, error) {
	if limite <= 0 {
		limite = 10
	}
	var produtos []models.RankingProduto
	err := g.db.WithContext(ctx).
		Raw("SELECT * FROM sp_get_ranking_produtos(?, ?, ?)", dataInicio, dataFim, limite).
		Scan(&produtos).Error
	if err != nil {
		return nil, fmt.Errorf("ranking de produtos: %w", err)
	}
	g.logger.Info("ranking de produtos recuperado", zap.Int("registros", len(produtos)))
	return produtos, nil
}

// TicketMedio devolve o resumo geral do ticket médio. Período sem vendas
// devolve o resumo zerado.
func (g *Gateway) TicketMedio(ctx context.Context, dataInicio, dataFim string) (*models.TicketMedio, error) {
	var resumos []models.TicketMedio
	err := g.db.WithContext(ctx).
		Raw("SELECT * FROM sp_get_ticket_medio(?, ?)", dataInicio, dataFim).
		Scan(&resumos).Error
	if err != nil {
		return nil, fmt.Errorf("ticket médio: %w", err)
	}
	if len(resumos) == 0 {
		return &models.TicketMedio{}, nil
	}
	return &resumos[0], nil
}
