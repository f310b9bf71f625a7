package medication

import (
	"errors"
	"net/http"
	"time"

	"guidedog-records/internal/middleware"
	"guidedog-records/internal/platform/httpx"
	"guidedog-records/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medication-checks", func(mr chi.Router) {
		mr.Post("/", saveCheckHandler(svc))
		mr.Get("/", listChecksHandler(svc))
		mr.Get("/{checkID}", getCheckHandler(svc))
		mr.Put("/{checkID}", saveCheckHandler(svc))
		mr.Delete("/{checkID}", deleteCheckHandler(svc))
	})
}

type saveCheckRequest struct {
	ID        string `json:"id"`
	DogID     string `json:"dog_id"`
	DogName   string `json:"dog_name"`
	Type      string `json:"type" validate:"required,oneof=heartworm external_parasite internal_parasite" enums:"heartworm,external_parasite,internal_parasite"`
	CheckDate string `json:"check_date" validate:"required,datetime=2006-01-02"`
	Note      string `json:"note"`
}

type checkResponse struct {
	ID         string    `json:"id"`
	DogID      string    `json:"dog_id,omitempty"`
	DogName    string    `json:"dog_name"`
	ReporterID string    `json:"reporter_id"`
	Type       Type      `json:"type"`
	CheckDate  string    `json:"check_date"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// saveCheckHandler godoc
// @Summary Registrar chequeo de medicación
// @Tags medication
// @Accept json
// @Produce json
// @Param payload body saveCheckRequest true "Chequeo; check_date en formato YYYY-MM-DD"
// @Success 201 {object} checkResponse
// @Failure 400 {string} string "validación"
// @Router /medication-checks [post]
func saveCheckHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req saveCheckRequest
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
		if pathID := chi.URLParam(r, "checkID"); pathID != "" {
			id = pathID
			status = http.StatusOK
		}

		c, err := svc.Save(r.Context(), SaveInput{
			ID:         id,
			DogID:      req.DogID,
			DogName:    req.DogName,
			ReporterID: claims.UserID,
			Type:       Type(req.Type),
			CheckDate:  req.CheckDate,
			Note:       req.Note,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, status, toCheckResponse(c))
	}
}

func listChecksHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, okYear := httpx.QueryInt(r, "year", 0)
		month, okMonth := httpx.QueryInt(r, "month", 0)
		if !okYear || !okMonth || month < 0 || month > 12 {
			http.Error(w, "year/month must be integers (month 1-12)", http.StatusBadRequest)
			return
		}
		f := ListFilter{
			DogID: r.URL.Query().Get("dog_id"),
			Type:  Type(r.URL.Query().Get("type")),
			Year:  year,
			Month: month,
		}
		if f.Type != "" && !f.Type.Valid() {
			http.Error(w, "unknown type", http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]checkResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCheckResponse(c))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getCheckHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "checkID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toCheckResponse(c))
	}
}

func deleteCheckHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "checkID")); err != nil {
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
		http.Error(w, "medication check not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toCheckResponse(c Check) checkResponse {
	return checkResponse{
		ID:         c.ID,
		DogID:      c.DogID,
		DogName:    c.DogName,
		ReporterID: c.ReporterID,
		Type:       c.Type,
		CheckDate:  c.CheckDate,
		Note:       c.Note,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
