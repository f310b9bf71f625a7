// Package push define el mensaje multicast y el puerto hacia el proveedor de notificaciones.
package push

import "context"

// Códigos que el proveedor devuelve para tokens que ya no sirven.
const (
	ErrCodeInvalidToken  = "invalid-registration-token"
	ErrCodeNotRegistered = "registration-token-not-registered"
)

type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Data struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	URL  string `json:"url"`
}

// Message es el payload multicast: {notification, data, tokens}.
type Message struct {
	Notification Notification `json:"notification"`
	Data         Data         `json:"data"`
	Tokens       []string     `json:"tokens"`
}

// SendResult es el resultado por token, en el mismo orden que Message.Tokens.
type SendResult struct {
	Token     string
	Success   bool
	ErrorCode string
	Error     string
}

// InvalidToken indica si el proveedor rechazó el token como inválido o no registrado.
func (r SendResult) InvalidToken() bool {
	return !r.Success && (r.ErrorCode == ErrCodeInvalidToken || r.ErrorCode == ErrCodeNotRegistered)
}

type BatchResult struct {
	SuccessCount int
	FailureCount int
	Results      []SendResult
}

type Sender interface {
	SendMulticast(ctx context.Context, msg Message) (BatchResult, error)
}
