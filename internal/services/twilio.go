package services

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// TwilioWhatsAppService é o provedor alternativo de WhatsApp, via API de
// mensagens da Twilio. Útil quando não há conta na Cloud API da Meta.
type TwilioWhatsAppService struct {
	client *twilio.RestClient
	from   string // formato "whatsapp:+14155238886"
	logger *zap.Logger
}

// NewTwilioWhatsAppService cria o provedor Twilio.
func NewTwilioWhatsAppService(accountSID, authToken, from string, logger *zap.Logger) (*TwilioWhatsAppService, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("credenciais da twilio ausentes no ambiente")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioWhatsAppService{
		client: client,
		from:   from,
		logger: logger,
	}, nil
}

// EnviarMensagem envia texto simples para o número informado.
func (s *TwilioWhatsAppService) EnviarMensagem(_ context.Context, numeroDestino, texto string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(fmt.Sprintf("whatsapp:%s", numeroDestino))
	params.SetBody(texto)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio enviar mensagem: %w", err)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	s.logger.Info("mensagem enviada via twilio",
		zap.String("para", numeroDestino),
		zap.String("sid", sid),
	)
	return nil
}

// EnviarImagem não é suportado neste provedor: a API da Twilio só aceita
// mídia por URL pública. O chamador cai no formato texto.
func (s *TwilioWhatsAppService) EnviarImagem(_ context.Context, numeroDestino, _, _ string) error {
	return fmt.Errorf("envio de imagem não suportado pelo provedor twilio (destino %s)", numeroDestino)
}
