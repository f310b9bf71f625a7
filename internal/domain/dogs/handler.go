package dogs

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
	canWrite := middleware.RequireCapability(resolver, capabilities.DogsWrite)

	r.Route("/dogs", func(dr chi.Router) {
		dr.Get("/", listDogsHandler(svc))
		dr.Get("/{dogID}", getDogHandler(svc))

		dr.With(canWrite).Post("/", saveDogHandler(svc))
		dr.With(canWrite).Put("/{dogID}", saveDogHandler(svc))
		dr.With(canWrite).Delete("/{dogID}", deleteDogHandler(svc))
	})
}

type caregiverDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

type saveDogRequest struct {
	ID        string       `json:"id"`
	Name      string       `json:"name" validate:"required"`
	Category  string       `json:"category" validate:"required,oneof=guide_dog puppy_in_training retired breeding_parent"`
	Breed     string       `json:"breed"`
	Sex       string       `json:"sex" validate:"omitempty,oneof=male female unknown"`
	BirthDate string       `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Microchip string       `json:"microchip"`
	Caregiver caregiverDTO `json:"caregiver"`
	Notes     string       `json:"notes"`
}

type dogResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Category  Category     `json:"category"`
	Breed     string       `json:"breed"`
	Sex       Sex          `json:"sex"`
	BirthDate string       `json:"birth_date,omitempty"`
	Microchip string       `json:"microchip,omitempty"`
	Caregiver caregiverDTO `json:"caregiver"`
	Notes     string       `json:"notes"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// saveDogHandler atiende POST (alta o upsert con id en el body) y PUT /{dogID}.
func saveDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveDogRequest
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
		if pathID := chi.URLParam(r, "dogID"); pathID != "" {
			id = pathID
			status = http.StatusOK
		}

		d, err := svc.Save(r.Context(), SaveInput{
			ID:        id,
			Name:      req.Name,
			Category:  Category(req.Category),
			Breed:     req.Breed,
			Sex:       Sex(req.Sex),
			BirthDate: req.BirthDate,
			Microchip: req.Microchip,
			Caregiver: Caregiver(req.Caregiver),
			Notes:     req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		httpx.WriteJSON(w, status, toDogResponse(d))
	}
}

func listDogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := Category(r.URL.Query().Get("category"))
		if category != "" && !category.Valid() {
			http.Error(w, "unknown category", http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), category)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]dogResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDogResponse(d))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toDogResponse(d))
	}
}

func deleteDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "dogID")); err != nil {
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
		http.Error(w, "dog not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toDogResponse(d Dog) dogResponse {
	return dogResponse{
		ID:        d.ID,
		Name:      d.Name,
		Category:  d.Category,
		Breed:     d.Breed,
		Sex:       d.Sex,
		BirthDate: d.BirthDate,
		Microchip: d.Microchip,
		Caregiver: caregiverDTO(d.Caregiver),
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
