package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClonadoNaoCompartilhaVariantes(t *testing.T) {
	original := &Contexto{
		SubFluxo:   SubFluxoAnaliseSupervisor,
		DataInicio: "2025-03-01",
		DataFim:    "2025-03-19",
		Supervisor: &ContextoSupervisor{
			Lista:               []VendaPorSupervisor{{NomeSupervisor: "Roberto Almeida"}},
			SupervisorEscolhido: "Roberto Almeida",
		},
		Vendedor: &ContextoVendedor{CodigoEscolhido: 205},
		Dia:      &ContextoDia{Janela: JanelaSemanaAtual, Formato: FormatoTexto},
	}

	clone := original.Clonado()
	require.NotSame(t, original, clone)
	require.NotSame(t, original.Supervisor, clone.Supervisor)
	require.NotSame(t, original.Vendedor, clone.Vendedor)
	require.NotSame(t, original.Dia, clone.Dia)

	clone.Supervisor.SupervisorEscolhido = "Fernanda Souza"
	clone.Supervisor.CodigoEscolhido = 2
	clone.Vendedor.CodigoEscolhido = 301
	clone.Dia.Formato = FormatoGrafico

	assert.Equal(t, "Roberto Almeida", original.Supervisor.SupervisorEscolhido)
	assert.Zero(t, original.Supervisor.CodigoEscolhido)
	assert.Equal(t, 205, original.Vendedor.CodigoEscolhido)
	assert.Equal(t, FormatoTexto, original.Dia.Formato)

	// A lista carregada é compartilhada entre as cópias.
	assert.Equal(t, &original.Supervisor.Lista[0], &clone.Supervisor.Lista[0])
}

func TestClonadoDeNil(t *testing.T) {
	var c *Contexto
	clone := c.Clonado()
	require.NotNil(t, clone)
	assert.Empty(t, clone.SubFluxo)
	assert.Nil(t, clone.Supervisor)
}
