package subscriptions

import (
	"errors"
	"net/http"
	"time"

	"guidedog-records/internal/middleware"
	"guidedog-records/internal/platform/httpx"
	"guidedog-records/internal/platform/validation"
	"guidedog-records/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, resolver capabilities.CapabilitiesResolver) {
	canManage := middleware.RequireCapability(resolver, capabilities.UsersManage)

	r.Route("/push-subscriptions", func(sr chi.Router) {
		sr.Post("/", registerHandler(svc))
		sr.Delete("/{token}", deleteHandler(svc))
		sr.With(canManage).Get("/", listHandler(svc))
	})
}

type registerRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"omitempty,oneof=web android ios"`
}

type subscriptionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// registerHandler godoc
// @Summary Registrar token de push del dispositivo
// @Description Upsert por token para el usuario autenticado. El rol se toma del token de sesión.
// @Tags push
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Token del dispositivo"
// @Success 200 {object} subscriptionResponse
// @Failure 400 {string} string "validación"
// @Router /push-subscriptions [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req registerRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		sub, err := svc.Register(r.Context(), RegisterInput{
			UserID:   claims.UserID,
			Role:     claims.Role,
			Token:    req.Token,
			Platform: req.Platform,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponse(sub))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		owner := claims.UserID
		if claims.Role == "admin" {
			owner = ""
		}
		if err := svc.DeleteByToken(r.Context(), chi.URLParam(r, "token"), owner); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]subscriptionResponse, 0, len(items))
		for _, x := range items {
			out = append(out, toResponse(x))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "subscription not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toResponse(s Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Role:      s.Role,
		Token:     s.Token,
		Platform:  s.Platform,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
