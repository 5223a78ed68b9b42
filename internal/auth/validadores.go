package auth

import "strings"

// LimparDigitos remove tudo que não for dígito.
func LimparDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidarCPF valida o formato básico: 11 dígitos e não todos iguais.
func ValidarCPF(cpf string) bool {
	limpo := LimparDigitos(cpf)
	if len(limpo) != 11 {
		return false
	}
	for i := 1; i < len(limpo); i++ {
		if limpo[i] != limpo[0] {
			return true
		}
	}
	return false
}

// ValidarTelefone valida o formato básico: 10 ou 11 dígitos.
func ValidarTelefone(telefone string) bool {
	limpo := LimparDigitos(telefone)
	return len(limpo) >= 10 && len(limpo) <= 11
}

// FormatarCPF exibe o CPF como 000.000.000-00.
func FormatarCPF(cpf string) string {
	limpo := LimparDigitos(cpf)
	if len(limpo) != 11 {
		return limpo
	}
	return limpo[:3] + "." + limpo[3:6] + "." + limpo[6:9] + "-" + limpo[9:]
}

// FormatarTelefone exibe o telefone como (00) 00000-0000 ou (00) 0000-0000.
func FormatarTelefone(telefone string) string {
	limpo := LimparDigitos(telefone)
	switch len(limpo) {
	case 11:
		return "(" + limpo[:2] + ") " + limpo[2:7] + "-" + limpo[7:]
	case 10:
		return "(" + limpo[:2] + ") " + limpo[2:6] + "-" + limpo[6:]
	}
	return limpo
}
