package reports

import (
	"bytes"
	"encoding/base64"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"
)

// Renderer desenha os gráficos de barras das séries de vendas e devolve a
// imagem como PNG em base64, pronta para o envio de foto dos canais. Quando
// desabilitado por configuração, GerarGraficoBarras devolve vazio e o
// chamador cai no formato texto.
type Renderer struct {
	habilitado bool
	largura    int
	altura     int
	logger     *zap.Logger
}

// NewRenderer cria o renderizador de gráficos.
func NewRenderer(habilitado bool, largura, altura int, logger *zap.Logger) *Renderer {
	if largura <= 0 {
		largura = 800
	}
	if altura <= 0 {
		altura = 400
	}
	return &Renderer{
		habilitado: habilitado,
		largura:    largura,
		altura:     altura,
		logger:     logger,
	}
}

// Habilitado informa se a geração de gráficos está ligada.
func (r *Renderer) Habilitado() bool {
	return r.habilitado
}

// GerarGraficoBarras desenha a série como gráfico de barras de total de
// vendas e devolve o PNG em base64.
func (r *Renderer) GerarGraficoBarras(titulo string, pontos []SeriePonto) (string, error) {
	if !r.habilitado {
		return "", nil
	}
	if len(pontos) == 0 {
		return "", fmt.Errorf("série vazia para o gráfico %q", titulo)
	}

	barras := make([]chart.Value, 0, len(pontos))
	for _, p := range pontos {
		barras = append(barras, chart.Value{
			Label: p.Rotulo,
			Value: p.TotalVendas,
		})
	}

	grafico := chart.BarChart{
		Title:    titulo,
		Width:    r.largura,
		Height:   r.altura,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v any) string {
				f, ok := v.(float64)
				if !ok {
					return ""
				}
				return "R$ " + FormatarMoeda(f)
			},
		},
		Bars: barras,
	}

	var buf bytes.Buffer
	if err := grafico.Render(chart.PNG, &buf); err != nil {
		return "", fmt.Errorf("renderizar gráfico %q: %w", titulo, err)
	}

	r.logger.Info("gráfico gerado",
		zap.String("titulo", titulo),
		zap.Int("pontos", len(pontos)),
		zap.Int("bytes", buf.Len()),
	)
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
