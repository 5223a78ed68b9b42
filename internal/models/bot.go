package models

// OpcaoMenu é uma opção apresentada ao usuário. O id é o texto literal que o
// usuário digita (ou o callback do teclado inline) para escolhê-la.
type OpcaoMenu struct {
	ID    string `json:"id"`
	Texto string `json:"texto"`
	Emoji string `json:"emoji,omitempty"`
}

// Rotulo devolve a opção formatada para exibição em texto puro.
func (o OpcaoMenu) Rotulo() string {
	if o.Emoji != "" {
		return o.Emoji + " " + o.ID + " - " + o.Texto
	}
	return o.ID + " - " + o.Texto
}

// TextoComOpcoes devolve a resposta com as opções do menu anexadas linha a
// linha, para canais sem teclado interativo.
func (m MensagemBotResponse) TextoComOpcoes() string {
	if len(m.Opcoes) == 0 {
		return m.Resposta
	}
	texto := m.Resposta
	for _, o := range m.Opcoes {
		texto += "\n" + o.Rotulo()
	}
	return texto
}

// LoginRequest é o corpo de POST /api/auth/login.
type LoginRequest struct {
	CPF      string `json:"cpf"`
	Telefone string `json:"telefone"`
}

// LoginResponse é a resposta do login.
type LoginResponse struct {
	Success  bool     `json:"success"`
	Token    string   `json:"token,omitempty"`
	Usuario  *Usuario `json:"usuario,omitempty"`
	Mensagem string   `json:"mensagem"`
}

// MensagemBotRequest é o corpo de POST /api/bot/message.
type MensagemBotRequest struct {
	UsuarioID int    `json:"usuarioId"`
	Canal     string `json:"canal"`
	ChatID    string `json:"chatId"`
	Mensagem  string `json:"mensagem"`
}

// MensagemBotResponse é a resposta de um turno da conversa.
type MensagemBotResponse struct {
	Resposta      string      `json:"resposta"`
	Opcoes        []OpcaoMenu `json:"opcoes,omitempty"`
	Grafico       string      `json:"grafico,omitempty"`
	ProximoEstado Estado      `json:"proximoEstado"`
}
