package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

// MemoryStore guarda as sessões em memória, protegidas por RWMutex. É o
// armazenamento padrão para testes e para execução sem banco; tudo se perde
// no restart do processo.
type MemoryStore struct {
	mu        sync.RWMutex
	sessoes   map[models.ChaveSessao]*models.Sessao
	atividade map[models.ChaveSessao]time.Time
	ultimoID  int64
}

// NewMemoryStore cria o armazenamento em memória.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessoes:   make(map[models.ChaveSessao]*models.Sessao),
		atividade: make(map[models.ChaveSessao]time.Time),
	}
}

func (m *MemoryStore) Criar(usuarioID int, canal models.Canal, chatID string) (*models.Sessao, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Ids monotônicos mesmo quando duas sessões nascem no mesmo milissegundo.
	id := time.Now().UnixMilli()
	if id <= m.ultimoID {
		id = m.ultimoID + 1
	}
	m.ultimoID = id

	sessao := &models.Sessao{
		ID:        id,
		UsuarioID: usuarioID,
		Canal:     canal,
		ChatID:    chatID,
		Estado:    models.EstadoAguardandoCPF,
		Contexto:  models.NovoContexto(),
	}

	chave := sessao.Chave()
	m.sessoes[chave] = sessao
	m.atividade[chave] = time.Now()
	return sessao, nil
}

func (m *MemoryStore) Obter(chave models.ChaveSessao) (*models.Sessao, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessao, ok := m.sessoes[chave]
	if !ok {
		return nil, nil
	}
	copia := *sessao
	return &copia, nil
}

func (m *MemoryStore) AtualizarEstado(sessaoID int64, estado models.Estado, contexto *models.Contexto) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	chave, sessao := m.buscarPorID(sessaoID)
	if sessao == nil {
		return fmt.Errorf("sessão %d não encontrada", sessaoID)
	}

	sessao.Estado = estado
	if contexto == nil {
		contexto = models.NovoContexto()
	}
	sessao.Contexto = contexto
	m.atividade[chave] = time.Now()
	return nil
}

func (m *MemoryStore) AtualizarCampos(sessaoID int64, campos CamposSessao) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	chave, sessao := m.buscarPorID(sessaoID)
	if sessao == nil {
		return fmt.Errorf("sessão %d não encontrada", sessaoID)
	}

	if campos.UsuarioID != nil {
		sessao.UsuarioID = *campos.UsuarioID
	}
	if campos.Token != nil {
		sessao.Token = *campos.Token
	}
	if campos.Estado != nil {
		sessao.Estado = *campos.Estado
	}
	if campos.Contexto != nil {
		sessao.Contexto = campos.Contexto
	}
	m.atividade[chave] = time.Now()
	return nil
}

func (m *MemoryStore) Resetar(chave models.ChaveSessao) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessao, ok := m.sessoes[chave]
	if !ok {
		return fmt.Errorf("sessão não encontrada: %s", chave)
	}

	sessao.Estado = models.EstadoAguardandoCPF
	sessao.Contexto = models.NovoContexto()
	m.atividade[chave] = time.Now()
	return nil
}

func (m *MemoryStore) ResetarOciosas(desde time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for chave, ultimo := range m.atividade {
		if ultimo.After(desde) {
			continue
		}
		sessao, ok := m.sessoes[chave]
		if !ok || sessao.Estado == models.EstadoAguardandoCPF {
			continue
		}
		sessao.Estado = models.EstadoAguardandoCPF
		sessao.Contexto = models.NovoContexto()
		total++
	}
	return total, nil
}

// buscarPorID percorre o mapa; o volume de sessões simultâneas é pequeno o
// bastante para dispensar um índice secundário.
func (m *MemoryStore) buscarPorID(sessaoID int64) (models.ChaveSessao, *models.Sessao) {
	for chave, sessao := range m.sessoes {
		if sessao.ID == sessaoID {
			return chave, sessao
		}
	}
	return models.ChaveSessao{}, nil
}
