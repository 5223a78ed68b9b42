package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

// SessaoRegistro é a linha persistida de uma sessão. O contexto vai como JSON
// para acompanhar o formato livre por sub-fluxo.
type SessaoRegistro struct {
	gorm.Model
	SessaoID  int64  `gorm:"uniqueIndex"`
	UsuarioID int
	Canal     string `gorm:"index:idx_sessao_chave,unique"`
	ChatID    string `gorm:"index:idx_sessao_chave,unique"`
	Estado    string
	Contexto  string
	Token     string
}

// DatabaseStore persiste sessões via gorm, sobrevivendo a restarts do
// processo.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore cria o armazenamento em banco.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) Criar(usuarioID int, canal models.Canal, chatID string) (*models.Sessao, error) {
	sessao := &models.Sessao{
		ID:        time.Now().UnixMilli(),
		UsuarioID: usuarioID,
		Canal:     canal,
		ChatID:    chatID,
		Estado:    models.EstadoAguardandoCPF,
		Contexto:  models.NovoContexto(),
	}

	registro, err := registroDeSessao(sessao)
	if err != nil {
		return nil, err
	}

	// Sobrescreve qualquer sessão pré-existente na mesma chave.
	err = d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("canal = ? AND chat_id = ?", canal, chatID).
			Delete(&SessaoRegistro{}).Error; err != nil {
			return err
		}
		return tx.Create(registro).Error
	})
	if err != nil {
		return nil, fmt.Errorf("criar sessão: %w", err)
	}
	return sessao, nil
}

func (d *DatabaseStore) Obter(chave models.ChaveSessao) (*models.Sessao, error) {
	var registro SessaoRegistro
	err := d.db.Where("canal = ? AND chat_id = ?", chave.Canal, chave.ChatID).
		First(&registro).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("obter sessão: %w", err)
	}
	return sessaoDeRegistro(&registro)
}

func (d *DatabaseStore) AtualizarEstado(sessaoID int64, estado models.Estado, contexto *models.Contexto) error {
	if contexto == nil {
		contexto = models.NovoContexto()
	}
	ctxJSON, err := json.Marshal(contexto)
	if err != nil {
		return fmt.Errorf("serializar contexto: %w", err)
	}

	res := d.db.Model(&SessaoRegistro{}).
		Where("sessao_id = ?", sessaoID).
		Updates(map[string]any{"estado": string(estado), "contexto": string(ctxJSON)})
	if res.Error != nil {
		return fmt.Errorf("atualizar estado: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sessão %d não encontrada", sessaoID)
	}
	return nil
}

func (d *DatabaseStore) AtualizarCampos(sessaoID int64, campos CamposSessao) error {
	valores := make(map[string]any)
	if campos.UsuarioID != nil {
		valores["usuario_id"] = *campos.UsuarioID
	}
	if campos.Token != nil {
		valores["token"] = *campos.Token
	}
	if campos.Estado != nil {
		valores["estado"] = string(*campos.Estado)
	}
	if campos.Contexto != nil {
		ctxJSON, err := json.Marshal(campos.Contexto)
		if err != nil {
			return fmt.Errorf("serializar contexto: %w", err)
		}
		valores["contexto"] = string(ctxJSON)
	}
	if len(valores) == 0 {
		return nil
	}

	res := d.db.Model(&SessaoRegistro{}).Where("sessao_id = ?", sessaoID).Updates(valores)
	if res.Error != nil {
		return fmt.Errorf("atualizar campos: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sessão %d não encontrada", sessaoID)
	}
	return nil
}

func (d *DatabaseStore) Resetar(chave models.ChaveSessao) error {
	res := d.db.Model(&SessaoRegistro{}).
		Where("canal = ? AND chat_id = ?", chave.Canal, chave.ChatID).
		Updates(map[string]any{
			"estado":   string(models.EstadoAguardandoCPF),
			"contexto": "{}",
		})
	if res.Error != nil {
		return fmt.Errorf("resetar sessão: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sessão não encontrada: %s", chave)
	}
	return nil
}

func (d *DatabaseStore) ResetarOciosas(desde time.Time) (int, error) {
	res := d.db.Model(&SessaoRegistro{}).
		Where("updated_at <= ? AND estado <> ?", desde, string(models.EstadoAguardandoCPF)).
		Updates(map[string]any{
			"estado":   string(models.EstadoAguardandoCPF),
			"contexto": "{}",
		})
	if res.Error != nil {
		return 0, fmt.Errorf("resetar sessões ociosas: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

func registroDeSessao(s *models.Sessao) (*SessaoRegistro, error) {
	ctxJSON, err := json.Marshal(s.Contexto)
	if err != nil {
		return nil, fmt.Errorf("serializar contexto: %w", err)
	}
	return &SessaoRegistro{
		SessaoID:  s.ID,
		UsuarioID: s.UsuarioID,
		Canal:     string(s.Canal),
		ChatID:    s.ChatID,
		Estado:    string(s.Estado),
		Contexto:  string(ctxJSON),
		Token:     s.Token,
	}, nil
}

func sessaoDeRegistro(r *SessaoRegistro) (*models.Sessao, error) {
	contexto := models.NovoContexto()
	if r.Contexto != "" {
		if err := json.Unmarshal([]byte(r.Contexto), contexto); err != nil {
			return nil, fmt.Errorf("decodificar contexto: %w", err)
		}
	}
	return &models.Sessao{
		ID:        r.SessaoID,
		UsuarioID: r.UsuarioID,
		Canal:     models.Canal(r.Canal),
		ChatID:    r.ChatID,
		Estado:    models.Estado(r.Estado),
		Contexto:  contexto,
		Token:     r.Token,
	}, nil
}
