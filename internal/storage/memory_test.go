package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

func TestCriarEObter(t *testing.T) {
	m := NewMemoryStore()

	sessao, err := m.Criar(0, models.CanalTelegram, "12345")
	require.NoError(t, err)
	assert.Equal(t, models.EstadoAguardandoCPF, sessao.Estado)
	assert.NotNil(t, sessao.Contexto)

	chave := models.ChaveSessao{Canal: models.CanalTelegram, ChatID: "12345"}
	obtida, err := m.Obter(chave)
	require.NoError(t, err)
	require.NotNil(t, obtida)
	assert.Equal(t, sessao.ID, obtida.ID)

	// Mesmo chatId em outro canal é outra sessão.
	ausente, err := m.Obter(models.ChaveSessao{Canal: models.CanalWhatsApp, ChatID: "12345"})
	require.NoError(t, err)
	assert.Nil(t, ausente)
}

func TestCriarSobrescreveSessaoExistente(t *testing.T) {
	m := NewMemoryStore()

	primeira, err := m.Criar(1, models.CanalWhatsApp, "5592999990000")
	require.NoError(t, err)
	segunda, err := m.Criar(2, models.CanalWhatsApp, "5592999990000")
	require.NoError(t, err)
	assert.NotEqual(t, primeira.ID, segunda.ID)

	obtida, err := m.Obter(segunda.Chave())
	require.NoError(t, err)
	assert.Equal(t, 2, obtida.UsuarioID)
}

func TestAtualizarEstado(t *testing.T) {
	m := NewMemoryStore()

	sessao, err := m.Criar(0, models.CanalTelegram, "1")
	require.NoError(t, err)

	ctx := &models.Contexto{SubFluxo: models.SubFluxoCarregarSupervisores}
	require.NoError(t, m.AtualizarEstado(sessao.ID, models.EstadoProcessando, ctx))

	obtida, err := m.Obter(sessao.Chave())
	require.NoError(t, err)
	assert.Equal(t, models.EstadoProcessando, obtida.Estado)
	assert.Equal(t, models.SubFluxoCarregarSupervisores, obtida.Contexto.SubFluxo)

	assert.Error(t, m.AtualizarEstado(99999, models.EstadoEncerrado, nil))
}

func TestAtualizarCamposParcial(t *testing.T) {
	m := NewMemoryStore()

	sessao, err := m.Criar(0, models.CanalTelegram, "1")
	require.NoError(t, err)

	usuarioID := 7
	token := "token-de-teste"
	require.NoError(t, m.AtualizarCampos(sessao.ID, CamposSessao{
		UsuarioID: &usuarioID,
		Token:     &token,
	}))

	obtida, err := m.Obter(sessao.Chave())
	require.NoError(t, err)
	assert.Equal(t, 7, obtida.UsuarioID)
	assert.Equal(t, "token-de-teste", obtida.Token)
	assert.Equal(t, models.EstadoAguardandoCPF, obtida.Estado, "estado não informado permanece")
}

func TestResetarPreservaVinculo(t *testing.T) {
	m := NewMemoryStore()

	sessao, err := m.Criar(3, models.CanalTelegram, "1")
	require.NoError(t, err)

	token := "token-vivo"
	require.NoError(t, m.AtualizarCampos(sessao.ID, CamposSessao{Token: &token}))
	require.NoError(t, m.AtualizarEstado(sessao.ID, models.EstadoMenuComercial, &models.Contexto{SubFluxo: "x"}))

	require.NoError(t, m.Resetar(sessao.Chave()))

	obtida, err := m.Obter(sessao.Chave())
	require.NoError(t, err)
	assert.Equal(t, models.EstadoAguardandoCPF, obtida.Estado)
	assert.Empty(t, obtida.Contexto.SubFluxo)
	assert.Equal(t, "token-vivo", obtida.Token)
	assert.Equal(t, 3, obtida.UsuarioID)

	assert.Error(t, m.Resetar(models.ChaveSessao{Canal: models.CanalTelegram, ChatID: "nao-existe"}))
}

func TestResetarOciosas(t *testing.T) {
	m := NewMemoryStore()

	ativa, err := m.Criar(1, models.CanalTelegram, "ativa")
	require.NoError(t, err)
	require.NoError(t, m.AtualizarEstado(ativa.ID, models.EstadoMenuComercial, nil))

	ociosa, err := m.Criar(2, models.CanalTelegram, "ociosa")
	require.NoError(t, err)
	require.NoError(t, m.AtualizarEstado(ociosa.ID, models.EstadoAguardandoPeriodo, nil))

	login, err := m.Criar(3, models.CanalTelegram, "login")
	require.NoError(t, err)

	// Marca só a ociosa e a de login como antigas.
	antigo := time.Now().Add(-48 * time.Hour)
	m.mu.Lock()
	m.atividade[ociosa.Chave()] = antigo
	m.atividade[login.Chave()] = antigo
	m.mu.Unlock()

	total, err := m.ResetarOciosas(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, total, "sessão já no gate de login não conta")

	obtida, err := m.Obter(ociosa.Chave())
	require.NoError(t, err)
	assert.Equal(t, models.EstadoAguardandoCPF, obtida.Estado)

	obtida, err = m.Obter(ativa.Chave())
	require.NoError(t, err)
	assert.Equal(t, models.EstadoMenuComercial, obtida.Estado, "sessão ativa não é tocada")
}
