package subscriptions

import "time"

// Subscription registra un token de push de un dispositivo.
type Subscription struct {
	ID string

	UserID   string
	Role     string
	Token    string // único
	Platform string // web, android, ios

	CreatedAt time.Time
	UpdatedAt time.Time
}
