// Package roles resuelve capabilities a partir del rol del usuario (matriz estática).
package roles

import (
	"context"
	"errors"
	"strings"

	"guidedog-records/internal/domain/users"
	"guidedog-records/internal/ports/capabilities"
)

var ErrCapabilityRequired = errors.New("roles: capability required")

// DefaultMatrix: qué roles tienen cada capability. admin siempre pasa.
var DefaultMatrix = map[capabilities.Capability][]users.Role{
	capabilities.DogsWrite:      {users.RoleTrainer},
	capabilities.PartnersWrite:  {users.RoleTrainer},
	capabilities.UsersManage:    {},
	capabilities.NoticesWrite:   {},
	capabilities.ReportsRead:    {users.RoleTrainer, users.RoleVeterinarian},
	capabilities.BoardingReview: {},
}

type Resolver struct {
	matrix   map[capabilities.Capability]map[users.Role]bool
	allowAll bool
}

type Options struct {
	// Matrix reemplaza DefaultMatrix si no es nil.
	Matrix map[capabilities.Capability][]users.Role
	// AllowAll devuelve true para cualquier usuario (solo dev).
	AllowAll bool
}

func NewResolver(opts Options) *Resolver {
	src := opts.Matrix
	if src == nil {
		src = DefaultMatrix
	}
	m := make(map[capabilities.Capability]map[users.Role]bool, len(src))
	for c, roles := range src {
		set := make(map[users.Role]bool, len(roles))
		for _, r := range roles {
			set[r] = true
		}
		m[c] = set
	}
	return &Resolver{matrix: m, allowAll: opts.AllowAll}
}

func (r *Resolver) HasFeature(_ context.Context, in capabilities.CapabilityCheck) (bool, error) {
	if strings.TrimSpace(string(in.Capability)) == "" {
		return false, ErrCapabilityRequired
	}
	if r.allowAll {
		return true, nil
	}

	role := users.Role(strings.TrimSpace(in.Role))
	if role == users.RoleAdmin {
		return true, nil
	}
	return r.matrix[in.Capability][role], nil
}
