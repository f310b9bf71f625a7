package notices

import "time"

// AudienceAll hace visible el aviso para todos los roles.
const AudienceAll = "all"

type Notice struct {
	ID string

	Title   string
	Content string

	AuthorID   string
	AuthorName string

	// Audience: nombres de rol o "all".
	Audience []string
	Pinned   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VisibleTo indica si un rol ve el aviso. Admin ve todo.
func (n Notice) VisibleTo(role string) bool {
	if role == "admin" {
		return true
	}
	for _, a := range n.Audience {
		if a == AudienceAll || a == role {
			return true
		}
	}
	return false
}
