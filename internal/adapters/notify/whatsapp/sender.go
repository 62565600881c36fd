// Package whatsapp envía mensajes de texto por la WhatsApp Cloud API.
package whatsapp

import (
	"context"
	"fmt"
	"strings"

	"vet-clinic-api/internal/platform/httpclient"
	"vet-clinic-api/internal/ports/notify"

	"github.com/nyaruka/phonenumbers"
)

type Options struct {
	PhoneNumberID string
	DefaultRegion string // región para números sin prefijo internacional, p. ej. "PE"
}

type Sender struct {
	client  *httpclient.Client
	phoneID string
	region  string
}

func New(client *httpclient.Client, opts Options) (*Sender, error) {
	if client == nil {
		return nil, fmt.Errorf("whatsapp: nil http client")
	}
	if strings.TrimSpace(opts.PhoneNumberID) == "" {
		return nil, fmt.Errorf("whatsapp: phone number id is required")
	}
	return &Sender{
		client:  client,
		phoneID: strings.TrimSpace(opts.PhoneNumberID),
		region:  strings.ToUpper(strings.TrimSpace(opts.DefaultRegion)),
	}, nil
}

type textBody struct {
	Body string `json:"body"`
}

type messageRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	RecipientType    string   `json:"recipient_type"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type messageResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

func (s *Sender) Send(ctx context.Context, msg notify.Message) error {
	to, err := NormalizePhone(msg.To, s.region)
	if err != nil {
		return err
	}

	req := messageRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               strings.TrimPrefix(to, "+"),
		Type:             "text",
		Text:             textBody{Body: msg.Body},
	}
	var resp messageResponse
	if err := s.client.PostJSON(ctx, "/"+s.phoneID+"/messages", req, &resp); err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	if len(resp.Messages) == 0 {
		return fmt.Errorf("whatsapp send: empty response")
	}
	return nil
}

// NormalizePhone lleva un teléfono a E.164 (+51987654321).
func NormalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty phone", notify.ErrInvalidRecipient)
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", notify.ErrInvalidRecipient, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %s is not a valid number", notify.ErrInvalidRecipient, raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
