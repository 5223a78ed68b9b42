package storage

import (
	"time"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

// CamposSessao descreve uma atualização parcial: apenas os campos não-nil são
// aplicados, os demais permanecem intocados.
type CamposSessao struct {
	UsuarioID *int
	Token     *string
	Estado    *models.Estado
	Contexto  *models.Contexto
}

// Store é o contrato do armazenamento de sessões. A identidade da sessão (id)
// é estável enquanto durar o par (canal, chatId); a camada de canal sempre
// consulta pela chave composta.
type Store interface {
	// Criar aloca uma sessão nova para a chave, estado inicial
	// AGUARDANDO_CPF, contexto vazio, token vazio. Sobrescreve qualquer
	// sessão pré-existente na mesma chave.
	Criar(usuarioID int, canal models.Canal, chatID string) (*models.Sessao, error)

	// Obter devolve a sessão da chave, ou nil se não existir.
	Obter(chave models.ChaveSessao) (*models.Sessao, error)

	// AtualizarEstado substitui estado e contexto por inteiro.
	AtualizarEstado(sessaoID int64, estado models.Estado, contexto *models.Contexto) error

	// AtualizarCampos aplica uma atualização parcial.
	AtualizarCampos(sessaoID int64, campos CamposSessao) error

	// Resetar força o estado de volta a AGUARDANDO_CPF e limpa o contexto,
	// preservando a sessão, seu token e o vínculo com o usuário.
	Resetar(chave models.ChaveSessao) error

	// ResetarOciosas reseta sessões sem atividade desde o instante dado e
	// devolve quantas foram afetadas.
	ResetarOciosas(desde time.Time) (int, error)
}
