package partners

import (
	"errors"
	"net/http"
	"time"

	"guidedog-records/internal/domain/dogs"
	"guidedog-records/internal/middleware"
	"guidedog-records/internal/platform/httpx"
	"guidedog-records/internal/platform/validation"
	"guidedog-records/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, resolver capabilities.CapabilitiesResolver) {
	canWrite := middleware.RequireCapability(resolver, capabilities.PartnersWrite)

	r.Route("/partners", func(pr chi.Router) {
		pr.Get("/", listPartnersHandler(svc))
		pr.Get("/{partnerID}", getPartnerHandler(svc))

		pr.With(canWrite).Post("/", savePartnerHandler(svc))
		pr.With(canWrite).Put("/{partnerID}", savePartnerHandler(svc))
		pr.With(canWrite).Delete("/{partnerID}", deletePartnerHandler(svc))
	})

	// Historial de cuidadores de un perro
	r.Get("/dogs/{dogID}/partners", listPartnersHandler(svc))
}

type savePartnerRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	Address   string `json:"address"`
	Category  string `json:"category" validate:"required,oneof=guide_dog puppy_in_training retired breeding_parent"`
	DogID     string `json:"dog_id"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes"`
}

type partnerResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Email     string        `json:"email"`
	Address   string        `json:"address"`
	Category  dogs.Category `json:"category"`
	DogID     string        `json:"dog_id,omitempty"`
	StartDate string        `json:"start_date,omitempty"`
	EndDate   string        `json:"end_date,omitempty"`
	Notes     string        `json:"notes"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func savePartnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req savePartnerRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		id := req.ID
		status := http.StatusCreated
		if pathID := chi.URLParam(r, "partnerID"); pathID != "" {
			id = pathID
			status = http.StatusOK
		}

		p, err := svc.Save(r.Context(), SaveInput{
			ID:        id,
			Name:      req.Name,
			Phone:     req.Phone,
			Email:     req.Email,
			Address:   req.Address,
			Category:  dogs.Category(req.Category),
			DogID:     req.DogID,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Notes:     req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, status, toPartnerResponse(p))
	}
}

func listPartnersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := ListFilter{
			Category: dogs.Category(r.URL.Query().Get("category")),
			DogID:    r.URL.Query().Get("dog_id"),
		}
		if dogID := chi.URLParam(r, "dogID"); dogID != "" {
			f.DogID = dogID
		}
		if f.Category != "" && !f.Category.Valid() {
			http.Error(w, "unknown category", http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]partnerResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPartnerResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getPartnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "partnerID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPartnerResponse(p))
	}
}

func deletePartnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "partnerID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "partner not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPartnerResponse(p Partner) partnerResponse {
	return partnerResponse{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		Address:   p.Address,
		Category:  p.Category,
		DogID:     p.DogID,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
