package models

// Role identifica o perfil de acesso de um usuário.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDiretoria  Role = "diretoria"
	RoleComercial  Role = "comercial"
	RoleFinanceiro Role = "financeiro"
)

// Usuario representa um usuário cadastrado no diretório local de credenciais.
// O diretório é estático: não há criação, alteração ou remoção em runtime.
type Usuario struct {
	ID         int      `json:"id"`
	CPF        string   `json:"cpf"`
	Nome       string   `json:"nome"`
	Email      string   `json:"email,omitempty"`
	Telefone   string   `json:"telefone"`
	EquipeID   int      `json:"equipeId"`
	NomeEquipe string   `json:"nomeEquipe"`
	Roles      []Role   `json:"roles"`
	Ativo      bool     `json:"ativo"`
}

// TemRole informa se o usuário possui a role indicada.
func (u *Usuario) TemRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// RolesComoStrings devolve as roles como []string para claims e para o motor
// de fluxo, que tratam roles de forma opaca.
func (u *Usuario) RolesComoStrings() []string {
	out := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		out[i] = string(r)
	}
	return out
}
