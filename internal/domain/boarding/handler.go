package boarding

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
	canReview := middleware.RequireCapability(resolver, capabilities.BoardingReview)

	r.Route("/boarding-forms", func(br chi.Router) {
		br.Post("/", saveFormHandler(svc))
		br.Get("/", listFormsHandler(svc))
		br.Get("/{formID}", getFormHandler(svc))
		br.Put("/{formID}", saveFormHandler(svc))
		br.Delete("/{formID}", deleteFormHandler(svc))

		br.With(canReview).Post("/{formID}/review", reviewFormHandler(svc))
	})
}

type saveFormRequest struct {
	ID        string `json:"id"`
	DogID     string `json:"dog_id"`
	DogName   string `json:"dog_name"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"`
}

type reviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected" enums:"approved,rejected"`
	Note   string `json:"note"`
}

type formResponse struct {
	ID            string    `json:"id"`
	DogID         string    `json:"dog_id,omitempty"`
	DogName       string    `json:"dog_name"`
	RequesterID   string    `json:"requester_id"`
	RequesterName string    `json:"requester_name"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Reason        string    `json:"reason"`
	Status        Status    `json:"status"`
	ReviewerID    string    `json:"reviewer_id,omitempty"`
	ReviewNote    string    `json:"review_note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func saveFormHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req saveFormRequest
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
		if pathID := chi.URLParam(r, "formID"); pathID != "" {
			id = pathID
			status = http.StatusOK
		}

		f, err := svc.Save(r.Context(), SaveInput{
			ID:            id,
			DogID:         req.DogID,
			DogName:       req.DogName,
			RequesterID:   claims.UserID,
			RequesterName: claims.Name,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			Reason:        req.Reason,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, status, toFormResponse(f))
	}
}

// reviewFormHandler godoc
// @Summary Aprobar o rechazar solicitud de hospedaje
// @Tags boarding
// @Accept json
// @Produce json
// @Param formID path string true "ID de la solicitud"
// @Param payload body reviewRequest true "Decisión"
// @Success 200 {object} formResponse
// @Failure 400 {string} string "validación"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "boarding form not found"
// @Failure 409 {string} string "invalid state"
// @Router /boarding-forms/{formID}/review [post]
func reviewFormHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req reviewRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f, err := svc.Review(r.Context(), chi.URLParam(r, "formID"), Status(req.Status), claims.UserID, req.Note)
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toFormResponse(f))
	}
}

func listFormsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := ListFilter{
			DogID:       r.URL.Query().Get("dog_id"),
			RequesterID: r.URL.Query().Get("requester_id"),
			Status:      Status(r.URL.Query().Get("status")),
		}
		if f.Status != "" && !f.Status.Valid() {
			http.Error(w, "unknown status", http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]formResponse, 0, len(items))
		for _, x := range items {
			out = append(out, toFormResponse(x))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getFormHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := svc.GetByID(r.Context(), chi.URLParam(r, "formID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toFormResponse(f))
	}
}

func deleteFormHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "formID")); err != nil {
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
	case errors.Is(err, ErrBadState):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "boarding form not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toFormResponse(f Form) formResponse {
	return formResponse{
		ID:            f.ID,
		DogID:         f.DogID,
		DogName:       f.DogName,
		RequesterID:   f.RequesterID,
		RequesterName: f.RequesterName,
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		Reason:        f.Reason,
		Status:        f.Status,
		ReviewerID:    f.ReviewerID,
		ReviewNote:    f.ReviewNote,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}
