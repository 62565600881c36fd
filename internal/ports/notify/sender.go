package notify

import (
	"context"
	"errors"
)

var (
	// ErrDisabled: el canal no está configurado.
	ErrDisabled = errors.New("notification channel disabled")

	// ErrInvalidRecipient: el destino no se puede usar (correo o teléfono inválido).
	ErrInvalidRecipient = errors.New("invalid recipient")
)

type Message struct {
	To      string
	Subject string // los canales sin asunto lo ignoran
	Body    string
}

// Sender entrega un mensaje por un canal (correo, WhatsApp).
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
