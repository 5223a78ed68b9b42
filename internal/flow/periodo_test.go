package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

// Quarta-feira, 19 de março de 2025.
var quartaFeira = time.Date(2025, time.March, 19, 15, 30, 0, 0, time.UTC)

func TestPeriodoPorCodigo(t *testing.T) {
	casos := []struct {
		nome   string
		codigo string
		inicio string
		fim    string
	}{
		{"hoje", "1", "2025-03-19", "2025-03-19"},
		{"ontem", "2", "2025-03-18", "2025-03-18"},
		{"semana anterior de segunda a domingo", "3", "2025-03-10", "2025-03-16"},
		{"mês atual", "4", "2025-03-01", "2025-03-19"},
		{"mês anterior", "5", "2025-02-01", "2025-02-28"},
	}

	for _, caso := range casos {
		t.Run(caso.nome, func(t *testing.T) {
			p, ok := PeriodoPorCodigo(caso.codigo, quartaFeira)
			require.True(t, ok)
			inicio, fim := p.Datas()
			assert.Equal(t, caso.inicio, inicio)
			assert.Equal(t, caso.fim, fim)
			assert.False(t, p.Fim.Before(p.Inicio))
		})
	}

	_, ok := PeriodoPorCodigo("9", quartaFeira)
	assert.False(t, ok)
	_, ok = PeriodoPorCodigo("abc", quartaFeira)
	assert.False(t, ok)
}

func TestPeriodoPorCodigoNoDomingo(t *testing.T) {
	domingo := time.Date(2025, time.March, 23, 10, 0, 0, 0, time.UTC)

	p, ok := PeriodoPorCodigo("3", domingo)
	require.True(t, ok)
	inicio, fim := p.Datas()
	assert.Equal(t, "2025-03-10", inicio, "semana anterior conta a partir da segunda")
	assert.Equal(t, "2025-03-16", fim)
}

func TestPeriodoPorJanela(t *testing.T) {
	casos := []struct {
		janela string
		inicio string
		fim    string
	}{
		{models.JanelaSemanaAtual, "2025-03-17", "2025-03-19"},
		{models.JanelaSemanaAnterior, "2025-03-10", "2025-03-16"},
		{models.JanelaMesAtual, "2025-03-01", "2025-03-19"},
		{models.JanelaAnoPorSemana, "2025-01-01", "2025-03-19"},
		{models.JanelaAnoPorMes, "2025-01-01", "2025-03-19"},
	}

	for _, caso := range casos {
		t.Run(caso.janela, func(t *testing.T) {
			p, ok := PeriodoPorJanela(caso.janela, quartaFeira)
			require.True(t, ok)
			inicio, fim := p.Datas()
			assert.Equal(t, caso.inicio, inicio)
			assert.Equal(t, caso.fim, fim)
		})
	}

	_, ok := PeriodoPorJanela("trimestre", quartaFeira)
	assert.False(t, ok)
}
