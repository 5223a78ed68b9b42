package auth

import "github.com/bonnavitta/chatbot-vendas/internal/models"

// Diretório local de credenciais. Fonte de verdade estática, carregada em
// processo; usada apenas para lookup de login e seleção de menu por role.
// AVISO: dados sensíveis em código, manter apenas enquanto MVP.
var usuariosCadastrados = []models.Usuario{
	{
		ID:         1,
		CPF:        "77803450253",
		Telefone:   "92994375522",
		Nome:       "Paulo Sarraff",
		Email:      "sarraffjr@gmail.com",
		EquipeID:   1,
		NomeEquipe: "Loja",
		Roles:      []models.Role{models.RoleAdmin},
		Ativo:      true,
	},
	{
		ID:         2,
		CPF:        "98765432100",
		Telefone:   "11912345678",
		Nome:       "Maria Santos",
		Email:      "maria@empresa.com",
		EquipeID:   2,
		NomeEquipe: "Food Service",
		Roles:      []models.Role{models.RoleComercial},
		Ativo:      true,
	},
	{
		ID:         3,
		CPF:        "55555555500",
		Telefone:   "11999999999",
		Nome:       "Pedro Oliveira",
		Email:      "pedro@empresa.com",
		EquipeID:   3,
		NomeEquipe: "Varejo",
		Roles:      []models.Role{models.RoleDiretoria},
		Ativo:      true,
	},
	{
		ID:         4,
		CPF:        "12345678909",
		Telefone:   "11988887777",
		Nome:       "Ana Costa",
		Email:      "ana@empresa.com",
		EquipeID:   4,
		NomeEquipe: "Redes",
		Roles:      []models.Role{models.RoleFinanceiro},
		Ativo:      true,
	},
	{
		ID:         5,
		CPF:        "22233344455",
		Telefone:   "11977776666",
		Nome:       "Carlos Lima",
		Email:      "carlos@empresa.com",
		EquipeID:   5,
		NomeEquipe: "Telemarketing",
		Roles:      []models.Role{models.RoleComercial},
		Ativo:      false,
	},
}

// UsuariosCadastrados devolve o diretório completo.
func UsuariosCadastrados() []models.Usuario {
	return usuariosCadastrados
}

// BuscarPorCPF devolve o usuário ativo com o CPF informado (já normalizado),
// ou nil se não houver.
func BuscarPorCPF(cpf string) *models.Usuario {
	for i := range usuariosCadastrados {
		u := &usuariosCadastrados[i]
		if u.CPF == cpf && u.Ativo {
			return u
		}
	}
	return nil
}

// BuscarPorID devolve o usuário ativo com o id informado, ou nil.
func BuscarPorID(id int) *models.Usuario {
	for i := range usuariosCadastrados {
		u := &usuariosCadastrados[i]
		if u.ID == id && u.Ativo {
			return u
		}
	}
	return nil
}
