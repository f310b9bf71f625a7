package capabilities

import "context"

type Capability string

const (
	DogsWrite      Capability = "dogs:write"
	PartnersWrite  Capability = "partners:write"
	UsersManage    Capability = "users:manage"
	NoticesWrite   Capability = "notices:write"
	ReportsRead    Capability = "reports:read"
	BoardingReview Capability = "boarding:review"
)

// All en orden estable para respuestas (GET /me).
var All = []Capability{
	DogsWrite,
	PartnersWrite,
	UsersManage,
	NoticesWrite,
	ReportsRead,
	BoardingReview,
}

type CapabilityCheck struct {
	UserID     string
	Role       string
	Capability Capability
}

type CapabilitiesResolver interface {
	HasFeature(ctx context.Context, in CapabilityCheck) (bool, error)
}
