package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/bonnavitta/chatbot-vendas/internal/models"
)

// Claims são as claims customizadas dos tokens de sessão.
type Claims struct {
	UsuarioID int      `json:"id"`
	CPF       string   `json:"cpf"`
	Nome      string   `json:"nome"`
	EquipeID  int      `json:"equipeId"`
	Roles     []string `json:"roles"`
	jwt.RegisteredClaims
}

// Service valida credenciais contra o diretório local e emite/verifica tokens
// de sessão. Falhas de lookup são sinalizadas com retorno explícito, nunca
// com panic; o chamador decide a mensagem para o usuário.
type Service struct {
	secret     []byte
	expiration time.Duration
	logger     *zap.Logger
}

// NewService cria o serviço de autenticação.
func NewService(secret string, expiration time.Duration, logger *zap.Logger) *Service {
	return &Service{
		secret:     []byte(secret),
		expiration: expiration,
		logger:     logger,
	}
}

// ValidarUsuario normaliza CPF e telefone e procura o par exato no diretório.
// Usuário inexistente ou inativo resulta em (nil, nil).
func (s *Service) ValidarUsuario(cpf, telefone string) (*models.Usuario, error) {
	cpfLimpo := LimparDigitos(cpf)
	telefoneLimpo := LimparDigitos(telefone)

	s.logger.Info("tentativa de login",
		zap.String("cpf", cpfLimpo),
		zap.String("telefone", telefoneLimpo),
	)

	for i := range usuariosCadastrados {
		u := &usuariosCadastrados[i]
		if u.CPF != cpfLimpo || u.Telefone != telefoneLimpo {
			continue
		}
		if !u.Ativo {
			s.logger.Warn("usuário inativo", zap.String("nome", u.Nome))
			return nil, nil
		}
		s.logger.Info("usuário autenticado",
			zap.String("nome", u.Nome),
			zap.String("cpf", u.CPF),
		)
		copia := *u
		return &copia, nil
	}

	s.logger.Warn("credenciais inválidas", zap.String("cpf", cpfLimpo))
	return nil, nil
}

// GerarToken emite um JWT HS256 com expiração fixa configurada.
func (s *Service) GerarToken(u *models.Usuario) (string, error) {
	now := time.Now()
	claims := Claims{
		UsuarioID: u.ID,
		CPF:       u.CPF,
		Nome:      u.Nome,
		EquipeID:  u.EquipeID,
		Roles:     u.RolesComoStrings(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			Issuer:    "chatbot-vendas",
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("assinar token: %w", err)
	}
	return token, nil
}

// VerificarToken verifica assinatura e expiração. Token inválido ou expirado
// é falha leve: (nil, false).
func (s *Service) VerificarToken(tokenString string) (*Claims, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		s.logger.Warn("token inválido ou expirado")
		return nil, false
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, false
	}
	return claims, true
}

// Login valida as credenciais e emite o token.
func (s *Service) Login(cpf, telefone string) *models.LoginResponse {
	usuario, err := s.ValidarUsuario(cpf, telefone)
	if err != nil || usuario == nil {
		return &models.LoginResponse{
			Success:  false,
			Mensagem: "CPF ou telefone inválidos. Tente novamente.",
		}
	}

	token, err := s.GerarToken(usuario)
	if err != nil {
		s.logger.Error("erro ao gerar token", zap.Error(err))
		return &models.LoginResponse{
			Success:  false,
			Mensagem: "Erro ao processar login. Tente novamente.",
		}
	}

	return &models.LoginResponse{
		Success:  true,
		Token:    token,
		Usuario:  usuario,
		Mensagem: fmt.Sprintf("Bem-vindo, %s!", usuario.Nome),
	}
}

// Autorizar é verdadeiro quando a interseção entre as roles do usuário e as
// permitidas não é vazia.
func Autorizar(rolesUsuario, rolesPermitidas []string) bool {
	for _, have := range rolesUsuario {
		for _, want := range rolesPermitidas {
			if have == want {
				return true
			}
		}
	}
	return false
}

// AutorizarAcessoEquipe decide o acesso a dados de uma equipe: admin e
// diretoria são irrestritos; as demais roles reconhecidas só acessam a
// própria equipe; roles desconhecidas são negadas.
func AutorizarAcessoEquipe(rolesUsuario []string, equipeUsuario, equipeSolicitada int) bool {
	if equipeSolicitada == 0 {
		return false
	}
	for _, r := range rolesUsuario {
		switch models.Role(r) {
		case models.RoleAdmin, models.RoleDiretoria:
			return true
		case models.RoleComercial, models.RoleFinanceiro:
			if equipeUsuario == equipeSolicitada {
				return true
			}
		}
	}
	return false
}
